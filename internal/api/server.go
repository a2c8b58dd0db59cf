// Package api exposes the social platform over HTTP JSON.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nigelnh/be-intern-assignment/internal/serverutil"
	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type (
	// Server handles every route of the platform: user, post, like and
	// follow management plus the feed and activity views.
	Server struct {
		*http.Server

		repo     social.Repository
		feed     *social.FeedService
		activity *social.ActivityService
		posts    *social.PostService
	}

	ServerConfig struct {
		Port       int
		CorsOrigin string
	}
)

func NewServer(config ServerConfig, repo social.Repository) *Server {
	r := serverutil.ErrRouter{Router: mux.NewRouter()}

	srvr := Server{
		repo:     repo,
		feed:     social.NewFeedService(repo),
		activity: social.NewActivityService(repo),
		posts:    social.NewPostService(repo),
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			Handler: handlers.CORS(
				handlers.AllowedOrigins([]string{config.CorsOrigin}),
				handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
				handlers.AllowedHeaders([]string{"content-type"}),
			)(r),
		},
	}

	r.Use(serverutil.RequestIDMiddleware)
	r.Use(serverutil.AccessLogMiddleware) // Log everything

	r.HandleFunc("/", srvr.getRoot).Methods(http.MethodGet)

	// User management
	r.HandleFuncE("/api/users", srvr.getUsers).Methods(http.MethodGet)
	r.HandleFuncE("/api/users", srvr.postUser).Methods(http.MethodPost)
	r.HandleFuncE("/api/users/{id}", srvr.getUser).Methods(http.MethodGet)
	r.HandleFuncE("/api/users/{id}", srvr.putUser).Methods(http.MethodPut)
	r.HandleFuncE("/api/users/{id}", srvr.deleteUser).Methods(http.MethodDelete)

	// Post management and hashtag discovery
	r.HandleFuncE("/api/posts", srvr.getPosts).Methods(http.MethodGet)
	r.HandleFuncE("/api/posts", srvr.postPost).Methods(http.MethodPost)
	r.HandleFuncE("/api/posts/hashtag/{tag}", srvr.getPostsByHashtag).Methods(http.MethodGet)
	r.HandleFuncE("/api/posts/{id}", srvr.getPost).Methods(http.MethodGet)
	r.HandleFuncE("/api/posts/{id}", srvr.putPost).Methods(http.MethodPut)
	r.HandleFuncE("/api/posts/{id}", srvr.deletePost).Methods(http.MethodDelete)

	// Follow edges
	r.HandleFuncE("/api/follows", srvr.getFollows).Methods(http.MethodGet)
	r.HandleFuncE("/api/follows", srvr.postFollow).Methods(http.MethodPost)
	r.HandleFuncE("/api/follows", srvr.deleteFollow).Methods(http.MethodDelete)
	r.HandleFuncE("/api/follows/{id}", srvr.getFollow).Methods(http.MethodGet)

	// Likes
	r.HandleFuncE("/api/likes", srvr.getLikes).Methods(http.MethodGet)
	r.HandleFuncE("/api/likes", srvr.postLike).Methods(http.MethodPost)
	r.HandleFuncE("/api/likes", srvr.deleteLike).Methods(http.MethodDelete)
	r.HandleFuncE("/api/likes/{id}", srvr.getLike).Methods(http.MethodGet)

	// Aggregated views
	r.HandleFuncE("/api/feed", srvr.getFeed).Methods(http.MethodGet)
	r.HandleFuncE("/api/users/{id}/followers", srvr.getUserFollowers).Methods(http.MethodGet)
	r.HandleFuncE("/api/users/{id}/activity", srvr.getUserActivity).Methods(http.MethodGet)

	slog.Debug("configured api server", "port", config.Port)

	return &srvr
}

func (s Server) getRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Welcome to the Social Media Platform API! Server is running successfully.")
}
