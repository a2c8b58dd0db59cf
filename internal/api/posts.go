package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

const maxPostContentLength = 5000

type postListResp struct {
	Posts  []social.PostDetail `json:"posts"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

type createPostReq struct {
	Content  string `json:"content"`
	AuthorID *int64 `json:"authorId"`
}

func (req createPostReq) Validate() error {
	var details []apperrs.Detail
	if req.Content == "" {
		details = append(details, apperrs.Detail{Field: "content", Error: "Post content is required"})
	} else if len(req.Content) > maxPostContentLength {
		details = append(details, apperrs.Detail{Field: "content", Error: "Post content cannot exceed 5000 characters"})
	}
	if req.AuthorID == nil {
		details = append(details, apperrs.Detail{Field: "authorId", Error: "Author ID is required"})
	}
	if len(details) > 0 {
		return apperrs.E("validation failed", details, http.StatusBadRequest)
	}

	return nil
}

type updatePostReq struct {
	Content *string `json:"content"`
}

func (req updatePostReq) Validate() error {
	if req.Content == nil {
		return apperrs.E("At least one field must be provided for update", http.StatusBadRequest)
	}
	if *req.Content == "" {
		return apperrs.E("validation failed",
			apperrs.Detail{Field: "content", Error: "Post content must be at least 1 character long"},
			http.StatusBadRequest,
		)
	}
	if len(*req.Content) > maxPostContentLength {
		return apperrs.E("validation failed",
			apperrs.Detail{Field: "content", Error: "Post content cannot exceed 5000 characters"},
			http.StatusBadRequest,
		)
	}

	return nil
}

func (s Server) getPosts(w http.ResponseWriter, r *http.Request) error {
	limit, offset := parsePaginationParams(r, defaultPageLimit, maxPageLimit)

	posts, total, err := s.repo.Posts(r.Context(), limit, offset)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, postListResp{
		Posts:  posts,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (s Server) getPost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	post, err := s.repo.Post(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Post not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, post)
}

func (s Server) postPost(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := serverutil.DecodeValid[createPostReq](r.Body)
	if err != nil {
		return err
	}

	if _, err := s.repo.User(ctx, *body.AuthorID); errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Author not found", http.StatusNotFound)
	} else if err != nil {
		return err
	}

	post, err := s.posts.Create(ctx, body.Content, *body.AuthorID)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, post)
}

func (s Server) putPost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	body, err := serverutil.DecodeValid[updatePostReq](r.Body)
	if err != nil {
		return err
	}

	post, err := s.posts.Update(r.Context(), id, *body.Content)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Post not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, post)
}

func (s Server) deletePost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	err = s.repo.DeletePost(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("Post not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Unknown tags are an empty page, not a 404.
func (s Server) getPostsByHashtag(w http.ResponseWriter, r *http.Request) error {
	tag := mux.Vars(r)["tag"]
	limit, offset := parsePaginationParams(r, defaultPageLimit, maxPageLimit)

	posts, total, err := s.repo.PostsByHashtag(r.Context(), tag, limit, offset)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, postListResp{
		Posts:  posts,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
