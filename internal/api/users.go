package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

// pathID pulls the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrs.E("ID must be a number", http.StatusBadRequest)
	}

	return id, nil
}

type createUserReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (req createUserReq) Validate() error {
	var details []apperrs.Detail
	if req.FirstName == "" {
		details = append(details, apperrs.Detail{Field: "firstName", Error: "First name is required"})
	}
	if req.LastName == "" {
		details = append(details, apperrs.Detail{Field: "lastName", Error: "Last name is required"})
	}
	if req.Email == "" {
		details = append(details, apperrs.Detail{Field: "email", Error: "Email is required"})
	} else if !strings.Contains(req.Email, "@") {
		details = append(details, apperrs.Detail{Field: "email", Error: "Email must be a valid email address"})
	}
	if len(details) > 0 {
		return apperrs.E("validation failed", details, http.StatusBadRequest)
	}

	return nil
}

type updateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

func (req updateUserReq) Validate() error {
	if req.FirstName == nil && req.LastName == nil && req.Email == nil {
		return apperrs.E("At least one field must be provided for update", http.StatusBadRequest)
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return apperrs.E("validation failed",
			apperrs.Detail{Field: "email", Error: "Email must be a valid email address"},
			http.StatusBadRequest,
		)
	}

	return nil
}

func (s Server) getUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := s.repo.Users(r.Context())
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, users)
}

func (s Server) getUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	usr, err := s.repo.User(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, usr)
}

func (s Server) postUser(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[createUserReq](r.Body)
	if err != nil {
		return err
	}

	usr, err := s.repo.CreateUser(r.Context(), body.FirstName, body.LastName, body.Email)
	if errors.Is(err, social.ErrConflict) {
		return apperrs.E("Email already in use", http.StatusBadRequest)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, usr)
}

func (s Server) putUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	body, err := serverutil.DecodeValid[updateUserReq](r.Body)
	if err != nil {
		return err
	}

	usr, err := s.repo.UpdateUser(r.Context(), id, social.UpdateUserArgs{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
	})
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	}
	if errors.Is(err, social.ErrConflict) {
		return apperrs.E("Email already in use", http.StatusBadRequest)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, usr)
}

func (s Server) deleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	err = s.repo.DeleteUser(r.Context(), id)
	if errors.Is(err, social.ErrNotFound) {
		return apperrs.E("User not found", http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
