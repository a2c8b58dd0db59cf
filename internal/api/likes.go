package api

import (
	"errors"
	"net/http"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type likeEdgeReq struct {
	UserID *int64 `json:"userId"`
	PostID *int64 `json:"postId"`
}

func (req likeEdgeReq) Validate() error {
	var details []apperrs.Detail
	if req.UserID == nil {
		details = append(details, apperrs.Detail{Field: "userId", Error: "User ID is required"})
	}
	if req.PostID == nil {
		details = append(details, apperrs.Detail{Field: "postId", Error: "Post ID is required"})
	}
	if len(details) > 0 {
		return apperrs.E("validation failed", details, http.StatusBadRequest)
	}

	return nil
}

func (s Server) getLikes(w http.ResponseWriter, r *http.Request) error {
	likes, err := s.repo.Likes(r.Context())
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, likes)
}

func (s Server) getLike(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	like, err := s.repo.Like(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Like not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, like)
}

func (s Server) postLike(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := serverutil.DecodeValid[likeEdgeReq](r.Body)
	if err != nil {
		return err
	}

	if _, err := s.repo.User(ctx, *body.UserID); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}
	if _, err := s.repo.Post(ctx, *body.PostID); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Post not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}

	like, err := s.repo.CreateLike(ctx, *body.UserID, *body.PostID)
	if errors.Is(err, social.ErrConflict) {
		return apperrs.E("User already liked this post", http.StatusBadRequest)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, like)
}

func (s Server) deleteLike(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[likeEdgeReq](r.Body)
	if err != nil {
		return err
	}

	err = s.repo.DeleteLike(r.Context(), *body.UserID, *body.PostID)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Like not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
