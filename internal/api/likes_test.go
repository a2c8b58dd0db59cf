package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

func TestPostLike_DuplicateKeepsOneRow(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	post := ts.seedPost(t, "likable", ada.ID)

	body := map[string]any{"userId": ada.ID, "postId": post.ID}

	rec := ts.do(t, http.MethodPost, "/api/likes", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/likes", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int
	require.NoError(t, ts.db.Get(&count, `SELECT COUNT(*) FROM likes`))
	assert.Equal(t, 1, count)
}

func TestPostLike_UnknownTargets(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	post := ts.seedPost(t, "likable", ada.ID)

	rec := ts.do(t, http.MethodPost, "/api/likes", map[string]any{
		"userId": 999, "postId": post.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/likes", map[string]any{
		"userId": ada.ID, "postId": 999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLike_CountsOnPostDetail(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	alan := ts.seedUser(t, "Alan", "Turing", "alan@example.com")
	post := ts.seedPost(t, "popular", ada.ID)

	for _, usr := range []social.User{ada, alan} {
		rec := ts.do(t, http.MethodPost, "/api/likes", map[string]any{
			"userId": usr.ID, "postId": post.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/api/posts/"+itoa(post.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[social.PostDetail](t, rec)
	assert.Equal(t, 2, got.LikeCount)
}

func TestDeleteLike(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	post := ts.seedPost(t, "fleeting", ada.ID)

	body := map[string]any{"userId": ada.ID, "postId": post.ID}

	rec := ts.do(t, http.MethodPost, "/api/likes", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/likes", body)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/likes", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetLike_JoinsUserAndPost(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	post := ts.seedPost(t, "joined up", ada.ID)

	rec := ts.do(t, http.MethodPost, "/api/likes", map[string]any{
		"userId": ada.ID, "postId": post.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[social.Like](t, rec)

	rec = ts.do(t, http.MethodGet, "/api/likes/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[social.LikeDetail](t, rec)
	assert.Equal(t, "Ada", got.User.FirstName)
	assert.Equal(t, "joined up", got.Post.Content)
}
