package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type activityResp struct {
	Activities []any `json:"activities"`
	Total      int   `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

type postActivityResp struct {
	Type      string    `json:"type"`
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type likeActivityResp struct {
	Type        string    `json:"type"`
	ID          int64     `json:"id"`
	PostID      int64     `json:"postId"`
	PostContent string    `json:"postContent"`
	CreatedAt   time.Time `json:"createdAt"`
}

type followActivityResp struct {
	Type          string    `json:"type"`
	ID            int64     `json:"id"`
	FollowingID   int64     `json:"followingId"`
	FollowingName string    `json:"followingName"`
	CreatedAt     time.Time `json:"createdAt"`
}

func apiActivity(item social.ActivityItem) any {
	switch a := item.(type) {
	case social.PostActivity:
		return postActivityResp{
			Type:      string(a.Kind()),
			ID:        a.ID,
			Content:   a.Content,
			CreatedAt: a.CreatedAt,
		}
	case social.LikeActivity:
		return likeActivityResp{
			Type:        string(a.Kind()),
			ID:          a.ID,
			PostID:      a.PostID,
			PostContent: a.PostContent,
			CreatedAt:   a.CreatedAt,
		}
	case social.FollowActivity:
		return followActivityResp{
			Type:          string(a.Kind()),
			ID:            a.ID,
			FollowingID:   a.FollowingID,
			FollowingName: a.FollowingName,
			CreatedAt:     a.CreatedAt,
		}
	default:
		panic(fmt.Sprintf("unhandled activity variant %T", item))
	}
}

// parseActivityDate accepts RFC 3339 timestamps or bare dates.
func parseActivityDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, apperrs.E("validation failed",
		apperrs.Detail{Field: field, Error: "must be an RFC 3339 timestamp or YYYY-MM-DD date"},
		http.StatusBadRequest,
	)
}

func (s Server) getUserActivity(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	limit, offset := parsePaginationParams(r, defaultPageLimit, maxPageLimit)

	query := r.URL.Query()
	kind := query.Get("type")
	if kind != "" && !social.ValidActivityKind(kind) {
		return apperrs.E("validation failed",
			apperrs.Detail{Field: "type", Error: "must be one of post, like, follow"},
			http.StatusBadRequest,
		)
	}

	start, err := parseActivityDate("startDate", query.Get("startDate"))
	if err != nil {
		return err
	}
	end, err := parseActivityDate("endDate", query.Get("endDate"))
	if err != nil {
		return err
	}

	page, err := s.activity.UserActivity(r.Context(), id, social.ActivityQuery{
		Kind:   social.ActivityKind(kind),
		Limit:  limit,
		Offset: offset,
		Start:  start,
		End:    end,
	})
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	activities := make([]any, 0, len(page.Items))
	for _, item := range page.Items {
		activities = append(activities, apiActivity(item))
	}

	return serverutil.WriteJSON(w, http.StatusOK, activityResp{
		Activities: activities,
		Total:      page.Total,
		Limit:      limit,
		Offset:     offset,
	})
}
