package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

func TestGetFeed_RequiresUserID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/feed", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/feed?userId=bananas", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFeed_EmptyWithoutFollows(t *testing.T) {
	ts := newTestServer(t)
	usr := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")

	// Someone else's posts exist, but the user follows nobody.
	other := ts.seedUser(t, "Grace", "Hopper", "grace@example.com")
	ts.seedPost(t, "hello", other.ID)

	rec := ts.do(t, http.MethodGet, "/api/feed?userId="+itoa(usr.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Posts  []any `json:"posts"`
		Total  int   `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}](t, rec)

	assert.Empty(t, got.Posts)
	assert.Zero(t, got.Total)
	assert.Equal(t, 10, got.Limit)
	assert.Zero(t, got.Offset)
}

func TestGetFeed_FollowedAuthorsNewestFirst(t *testing.T) {
	var (
		ts     = newTestServer(t)
		ctx    = context.Background()
		reader = ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
		grace  = ts.seedUser(t, "Grace", "Hopper", "grace@example.com")
		alan   = ts.seedUser(t, "Alan", "Turing", "alan@example.com")
		other  = ts.seedUser(t, "Edsger", "Dijkstra", "edsger@example.com")
	)

	_, err := ts.repo.CreateFollow(ctx, reader.ID, grace.ID)
	require.NoError(t, err)
	_, err = ts.repo.CreateFollow(ctx, reader.ID, alan.ID)
	require.NoError(t, err)

	// The tagged post goes through the endpoint so the hashtag sync runs.
	rec := ts.do(t, http.MethodPost, "/api/posts", map[string]any{
		"content": "compilers #plankalkul", "authorId": grace.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	oldPost := decode[social.Post](t, rec)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ts.setCreated(t, "posts", oldPost.ID, base)
	newPost := ts.seedPost(t, "machines can think", alan.ID)
	ts.setCreated(t, "posts", newPost.ID, base.Add(time.Hour))

	// Not followed, must not show up.
	ts.seedPost(t, "goto considered harmful", other.ID)

	// One like on the newer post.
	_, err = ts.repo.CreateLike(ctx, grace.ID, newPost.ID)
	require.NoError(t, err)

	rec = ts.do(t, http.MethodGet, "/api/feed?userId="+itoa(reader.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Posts []struct {
			ID        int64          `json:"id"`
			Content   string         `json:"content"`
			Author    map[string]any `json:"author"`
			LikeCount int            `json:"likeCount"`
			Hashtags  []struct {
				Name string `json:"name"`
			} `json:"hashtags"`
		} `json:"posts"`
		Total int `json:"total"`
	}](t, rec)

	require.Len(t, got.Posts, 2)
	assert.Equal(t, 2, got.Total)

	assert.Equal(t, newPost.ID, got.Posts[0].ID)
	assert.Equal(t, 1, got.Posts[0].LikeCount)
	assert.Equal(t, oldPost.ID, got.Posts[1].ID)
	assert.Equal(t, 0, got.Posts[1].LikeCount)

	// Author identity is whitelisted: no email leaks into the feed.
	assert.Equal(t, "Alan", got.Posts[0].Author["firstName"])
	assert.NotContains(t, got.Posts[0].Author, "email")

	require.Len(t, got.Posts[1].Hashtags, 1)
	assert.Equal(t, "plankalkul", got.Posts[1].Hashtags[0].Name)
}

func TestGetFeed_TotalCountsBeyondPage(t *testing.T) {
	var (
		ts     = newTestServer(t)
		ctx    = context.Background()
		reader = ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
		grace  = ts.seedUser(t, "Grace", "Hopper", "grace@example.com")
	)

	_, err := ts.repo.CreateFollow(ctx, reader.ID, grace.ID)
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := ts.seedPost(t, "post", grace.ID)
		ts.setCreated(t, "posts", post.ID, base.Add(time.Duration(i)*time.Minute))
	}

	rec := ts.do(t, http.MethodGet, "/api/feed?userId="+itoa(reader.ID)+"&limit=2&offset=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Posts []any `json:"posts"`
		Total int   `json:"total"`
	}](t, rec)

	assert.Len(t, got.Posts, 2)
	assert.Equal(t, 3, got.Total)
}
