package api

import (
	"net/http"
	"strconv"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type feedResp struct {
	Posts  []social.PostDetail `json:"posts"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func (s Server) getFeed(w http.ResponseWriter, r *http.Request) error {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		return apperrs.E("User ID is required", http.StatusBadRequest)
	}

	limit, offset := parsePaginationParams(r, defaultPageLimit, maxPageLimit)

	page, err := s.feed.Feed(r.Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, feedResp{
		Posts:  page.Posts,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}
