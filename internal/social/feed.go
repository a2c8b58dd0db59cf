package social

import (
	"context"
	"fmt"
)

// FeedService assembles a user's reverse-chronological feed from the posts
// of everyone they follow.
type FeedService struct {
	repo Repository
}

func NewFeedService(repo Repository) *FeedService {
	return &FeedService{repo: repo}
}

type FeedPage struct {
	Posts []PostDetail
	Total int
}

// Feed returns the page of posts authored by users the given user follows,
// newest first, along with the total count before pagination.
//
// A user following nobody gets an empty page without the post table ever
// being queried.
func (s *FeedService) Feed(ctx context.Context, userID int64, limit, offset int) (FeedPage, error) {
	followingIDs, err := s.repo.FollowingIDs(ctx, userID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("error fetching following ids: %w", err)
	}

	if len(followingIDs) == 0 {
		return FeedPage{Posts: []PostDetail{}, Total: 0}, nil
	}

	posts, total, err := s.repo.PostsByAuthors(ctx, followingIDs, limit, offset)
	if err != nil {
		return FeedPage{}, fmt.Errorf("error fetching feed posts: %w", err)
	}

	return FeedPage{Posts: posts, Total: total}, nil
}
