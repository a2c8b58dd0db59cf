package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo overrides just the calls a test cares about; anything else
// panics through the embedded nil interface.
type fakeRepo struct {
	Repository

	followingIDs   func(ctx context.Context, followerID int64) ([]int64, error)
	postsByAuthors func(ctx context.Context, authorIDs []int64, limit, offset int) ([]PostDetail, int, error)
}

func (f *fakeRepo) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	return f.followingIDs(ctx, followerID)
}

func (f *fakeRepo) PostsByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]PostDetail, int, error) {
	return f.postsByAuthors(ctx, authorIDs, limit, offset)
}

func TestFeed_NoFollowsSkipsPostQuery(t *testing.T) {
	repo := &fakeRepo{
		followingIDs: func(context.Context, int64) ([]int64, error) {
			return nil, nil
		},
		postsByAuthors: func(context.Context, []int64, int, int) ([]PostDetail, int, error) {
			t.Fatal("post query issued for a user with no follows")
			return nil, 0, nil
		},
	}

	page, err := NewFeedService(repo).Feed(context.Background(), 1, 10, 0)
	require.NoError(t, err)

	assert.Empty(t, page.Posts)
	assert.Zero(t, page.Total)
}

func TestFeed_QueriesFollowedAuthorsOnly(t *testing.T) {
	var gotAuthors []int64
	repo := &fakeRepo{
		followingIDs: func(_ context.Context, followerID int64) ([]int64, error) {
			assert.EqualValues(t, 7, followerID)
			return []int64{2, 3}, nil
		},
		postsByAuthors: func(_ context.Context, authorIDs []int64, limit, offset int) ([]PostDetail, int, error) {
			gotAuthors = authorIDs
			assert.Equal(t, 10, limit)
			assert.Equal(t, 5, offset)
			return []PostDetail{{ID: 42}}, 12, nil
		},
	}

	page, err := NewFeedService(repo).Feed(context.Background(), 7, 10, 5)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, gotAuthors)
	require.Len(t, page.Posts, 1)
	assert.EqualValues(t, 42, page.Posts[0].ID)
	assert.Equal(t, 12, page.Total)
}
