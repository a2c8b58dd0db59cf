package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/nigelnh/be-intern-assignment/internal/migrations"
	"github.com/nigelnh/be-intern-assignment/internal/sqlite"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

// testServer runs the real router over a migrated scratch database.
type testServer struct {
	*Server

	db   *sqlx.DB
	repo sqlite.Repo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api-test.db")
	dbx, err := sqlx.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })

	require.NoError(t, migrations.Run(dbx))

	repo := sqlite.New(dbx)
	return &testServer{
		Server: NewServer(ServerConfig{Port: 0, CorsOrigin: "*"}, repo),
		db:     dbx,
		repo:   repo,
	}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		byts, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(byts)
	}

	var (
		req = httptest.NewRequest(method, target, rdr)
		rec = httptest.NewRecorder()
	)
	ts.Server.Handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func (ts *testServer) seedUser(t *testing.T, first, last, email string) social.User {
	t.Helper()

	usr, err := ts.repo.CreateUser(context.Background(), first, last, email)
	require.NoError(t, err)
	return usr
}

func (ts *testServer) seedPost(t *testing.T, content string, authorID int64) social.Post {
	t.Helper()

	post, err := ts.repo.CreatePost(context.Background(), content, authorID)
	require.NoError(t, err)
	return post
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// setCreated pins a row's created_at so ordering tests are deterministic.
func (ts *testServer) setCreated(t *testing.T, table string, id int64, at time.Time) {
	t.Helper()

	_, err := ts.db.Exec(`UPDATE `+table+` SET created_at = ? WHERE id = ?`, at, id)
	require.NoError(t, err)
}
