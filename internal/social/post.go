package social

import (
	"context"
	"fmt"
)

// PostService owns post writes and keeps the hashtag associations in step
// with the content.
type PostService struct {
	repo Repository
}

func NewPostService(repo Repository) *PostService {
	return &PostService{repo: repo}
}

// Create persists the post, then resolves and attaches any hashtags found
// in the content. The two steps are not transactional: a failure between
// them can leave hashtag rows without the association.
func (s *PostService) Create(ctx context.Context, content string, authorID int64) (Post, error) {
	post, err := s.repo.CreatePost(ctx, content, authorID)
	if err != nil {
		return Post{}, err
	}

	if err := s.syncHashtags(ctx, post.ID, content); err != nil {
		return Post{}, err
	}

	return post, nil
}

// Update replaces the post's content and overwrites its hashtag set from
// the new content. Content with no tokens clears every association.
func (s *PostService) Update(ctx context.Context, id int64, content string) (PostDetail, error) {
	if err := s.repo.UpdatePostContent(ctx, id, content); err != nil {
		return PostDetail{}, err
	}

	if err := s.syncHashtags(ctx, id, content); err != nil {
		return PostDetail{}, err
	}

	return s.repo.Post(ctx, id)
}

func (s *PostService) syncHashtags(ctx context.Context, postID int64, content string) error {
	names := ExtractHashtags(content)
	if len(names) == 0 {
		// Overwrite policy: no tokens means no associations.
		return s.repo.SetPostHashtags(ctx, postID, nil)
	}

	tags, err := s.repo.EnsureHashtags(ctx, names)
	if err != nil {
		return fmt.Errorf("error resolving hashtags: %w", err)
	}

	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}

	return s.repo.SetPostHashtags(ctx, postID, ids)
}
