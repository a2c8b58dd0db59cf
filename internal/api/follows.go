package api

import (
	"errors"
	"net/http"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type followEdgeReq struct {
	FollowerID  *int64 `json:"followerId"`
	FollowingID *int64 `json:"followingId"`
}

func (req followEdgeReq) Validate() error {
	var details []apperrs.Detail
	if req.FollowerID == nil {
		details = append(details, apperrs.Detail{Field: "followerId", Error: "Follower ID is required"})
	}
	if req.FollowingID == nil {
		details = append(details, apperrs.Detail{Field: "followingId", Error: "Following ID is required"})
	}
	if len(details) > 0 {
		return apperrs.E("validation failed", details, http.StatusBadRequest)
	}

	return nil
}

type followersResp struct {
	Followers []social.FollowerInfo `json:"followers"`
	Total     int                   `json:"total"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

func (s Server) getFollows(w http.ResponseWriter, r *http.Request) error {
	follows, err := s.repo.Follows(r.Context())
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, follows)
}

func (s Server) getFollow(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	follow, err := s.repo.Follow(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Follow relationship not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, follow)
}

func (s Server) postFollow(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := serverutil.DecodeValid[followEdgeReq](r.Body)
	if err != nil {
		return err
	}

	// Both endpoints have to exist before the edge can.
	if _, err := s.repo.User(ctx, *body.FollowerID); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Follower user not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}
	if _, err := s.repo.User(ctx, *body.FollowingID); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Following user not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}

	follow, err := s.repo.CreateFollow(ctx, *body.FollowerID, *body.FollowingID)
	if errors.Is(err, social.ErrConflict) {
		return apperrs.E("Follow relationship already exists", http.StatusBadRequest)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, follow)
}

func (s Server) deleteFollow(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[followEdgeReq](r.Body)
	if err != nil {
		return err
	}

	err = s.repo.DeleteFollow(r.Context(), *body.FollowerID, *body.FollowingID)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Follow relationship not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s Server) getUserFollowers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	if _, err := s.repo.User(ctx, id); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}

	limit, offset := parsePaginationParams(r, defaultPageLimit, maxPageLimit)

	followers, total, err := s.repo.Followers(ctx, id, limit, offset)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, followersResp{
		Followers: followers,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	})
}
