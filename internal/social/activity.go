package social

import (
	"context"
	"fmt"
	"sort"
	"time"
)

type ActivityKind string

const (
	ActivityKindPost   ActivityKind = "post"
	ActivityKindLike   ActivityKind = "like"
	ActivityKindFollow ActivityKind = "follow"
)

// ValidActivityKind reports whether s names one of the three kinds.
func ValidActivityKind(s string) bool {
	switch ActivityKind(s) {
	case ActivityKindPost, ActivityKindLike, ActivityKindFollow:
		return true
	}
	return false
}

type (
	// ActivityItem is a closed sum over the three things a user does:
	// writing posts, liking posts and following users. Only the variants
	// in this package implement it.
	ActivityItem interface {
		Kind() ActivityKind
		OccurredAt() time.Time

		activityItem()
	}

	PostActivity struct {
		ID        int64     `db:"id"`
		Content   string    `db:"content"`
		CreatedAt time.Time `db:"created_at"`
	}

	LikeActivity struct {
		ID          int64     `db:"id"`
		PostID      int64     `db:"post_id"`
		PostContent string    `db:"post_content"`
		CreatedAt   time.Time `db:"created_at"`
	}

	FollowActivity struct {
		ID            int64     `db:"id"`
		FollowingID   int64     `db:"following_id"`
		FollowingName string    `db:"following_name"`
		CreatedAt     time.Time `db:"created_at"`
	}
)

func (PostActivity) Kind() ActivityKind { return ActivityKindPost }
func (PostActivity) activityItem()      {}

func (a PostActivity) OccurredAt() time.Time { return a.CreatedAt }

func (LikeActivity) Kind() ActivityKind { return ActivityKindLike }
func (LikeActivity) activityItem()      {}

func (a LikeActivity) OccurredAt() time.Time { return a.CreatedAt }

func (FollowActivity) Kind() ActivityKind { return ActivityKindFollow }
func (FollowActivity) activityItem()      {}

func (a FollowActivity) OccurredAt() time.Time { return a.CreatedAt }

// ActivityQuery narrows a user's activity stream. Kind empty means all
// three kinds. Start/End follow the window rules below.
type ActivityQuery struct {
	Kind   ActivityKind
	Limit  int
	Offset int
	Start  *time.Time
	End    *time.Time
}

type ActivityPage struct {
	Items []ActivityItem
	Total int
}

// ActivityService merges a user's posts, likes and follow actions into one
// chronological stream.
type ActivityService struct {
	repo Repository
}

func NewActivityService(repo Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// window resolves the optional date bounds: both given means the closed
// range, only a start runs to now, only an end runs from the zero epoch,
// neither means no filter.
func (q ActivityQuery) window(now time.Time) Window {
	switch {
	case q.Start != nil && q.End != nil:
		return Window{Start: *q.Start, End: *q.End}
	case q.Start != nil:
		return Window{Start: *q.Start, End: now}
	case q.End != nil:
		return Window{Start: time.Unix(0, 0).UTC(), End: *q.End}
	default:
		return Window{}
	}
}

// UserActivity returns one page of the user's activity stream.
//
// Pagination is asymmetric on purpose. With a kind filter the single query
// applies offset/limit itself and its own total is the overall total.
// Without one, each kind fetches its `limit` most recent rows from offset
// zero, the three sets are merged newest-first and the page is sliced out
// of that merged sequence; total is the sum of the per-kind totals. Older
// activity can therefore be under-represented at deep offsets, since no
// branch ever contributes more than `limit` rows. That boundary behavior
// is part of the contract, not a defect to fix here.
func (s *ActivityService) UserActivity(ctx context.Context, userID int64, q ActivityQuery) (ActivityPage, error) {
	// 404 semantics: the user has to exist before their stream does.
	if _, err := s.repo.User(ctx, userID); err != nil {
		return ActivityPage{}, err
	}

	var (
		w        = q.window(time.Now().UTC())
		filtered = q.Kind != ""
		items    []ActivityItem
		total    int
	)

	// With a kind filter the query paginates; without one every branch
	// starts at offset zero and the merged sequence is sliced below.
	offset := q.Offset
	if !filtered {
		offset = 0
	}

	if !filtered || q.Kind == ActivityKindPost {
		posts, count, err := s.repo.PostActivities(ctx, userID, w, q.Limit, offset)
		if err != nil {
			return ActivityPage{}, fmt.Errorf("error fetching post activity: %w", err)
		}
		for _, a := range posts {
			items = append(items, a)
		}
		total += count
	}

	if !filtered || q.Kind == ActivityKindLike {
		likes, count, err := s.repo.LikeActivities(ctx, userID, w, q.Limit, offset)
		if err != nil {
			return ActivityPage{}, fmt.Errorf("error fetching like activity: %w", err)
		}
		for _, a := range likes {
			items = append(items, a)
		}
		total += count
	}

	if !filtered || q.Kind == ActivityKindFollow {
		follows, count, err := s.repo.FollowActivities(ctx, userID, w, q.Limit, offset)
		if err != nil {
			return ActivityPage{}, fmt.Errorf("error fetching follow activity: %w", err)
		}
		for _, a := range follows {
			items = append(items, a)
		}
		total += count
	}

	// Stable keeps each kind's own newest-first order on equal timestamps.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt().After(items[j].OccurredAt())
	})

	if !filtered {
		items = slicePage(items, q.Offset, q.Limit)
	}

	if items == nil {
		items = []ActivityItem{}
	}

	return ActivityPage{Items: items, Total: total}, nil
}

func slicePage(items []ActivityItem, offset, limit int) []ActivityItem {
	if offset >= len(items) {
		return []ActivityItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
