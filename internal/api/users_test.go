package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

func TestUserCRUD(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users", map[string]any{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[social.User](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ada", created.FirstName)

	rec = ts.do(t, http.MethodGet, "/api/users/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[social.User](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)

	rec = ts.do(t, http.MethodPut, "/api/users/"+itoa(created.ID), map[string]any{
		"lastName": "King",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[social.User](t, rec)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "King", got.LastName)

	rec = ts.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]social.User](t, rec)
	assert.Len(t, list, 1)

	rec = ts.do(t, http.MethodDelete, "/api/users/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/users/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostUser_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users", map[string]any{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decode[apperrs.Error](t, rec)
	fields := make([]string, 0, len(got.Details))
	for _, d := range got.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email"}, fields)
}

func TestPostUser_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")

	rec := ts.do(t, http.MethodPost, "/api/users", map[string]any{
		"firstName": "Other", "lastName": "Ada", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutUser_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")
	alan := ts.seedUser(t, "Alan", "Turing", "alan@example.com")

	rec := ts.do(t, http.MethodPut, "/api/users/"+itoa(alan.ID), map[string]any{
		"email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutUser_RequiresAField(t *testing.T) {
	ts := newTestServer(t)
	ada := ts.seedUser(t, "Ada", "Lovelace", "ada@example.com")

	rec := ts.do(t, http.MethodPut, "/api/users/"+itoa(ada.ID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUser_NotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := ts.do(t, method, "/api/users/999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	rec := ts.do(t, http.MethodPut, "/api/users/999", map[string]any{"firstName": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoot(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running successfully")
}
