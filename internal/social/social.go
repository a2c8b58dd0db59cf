// Package social holds the domain types for the social platform and the
// persistence surface the services are built against.
package social

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConflict = errors.New("resource already exists")
	ErrNotFound = errors.New("resource not found")
)

type (
	// User is a platform member. Referenced by everything else, never
	// mutated by the feed or activity services.
	User struct {
		ID        int64     `db:"id" json:"id"`
		FirstName string    `db:"first_name" json:"firstName"`
		LastName  string    `db:"last_name" json:"lastName"`
		Email     string    `db:"email" json:"email"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
		UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	}

	// Author is the whitelisted projection of a post's author. No email.
	Author struct {
		ID        int64  `db:"author_id" json:"id"`
		FirstName string `db:"author_first_name" json:"firstName"`
		LastName  string `db:"author_last_name" json:"lastName"`
	}

	// UserSummary identifies a user on an edge listing.
	UserSummary struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}

	Post struct {
		ID        int64     `db:"id" json:"id"`
		Content   string    `db:"content" json:"content"`
		AuthorID  int64     `db:"author_id" json:"authorId"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
		UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	}

	// PostDetail is a post with its eager-loaded author identity, like
	// count and hashtag collection.
	PostDetail struct {
		ID        int64     `json:"id"`
		Content   string    `json:"content"`
		Author    Author    `json:"author"`
		LikeCount int       `json:"likeCount"`
		Hashtags  []Hashtag `json:"hashtags"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	// Follow is a directed edge: the follower's feed includes the
	// following user's posts. At most one edge per ordered pair.
	Follow struct {
		ID          int64     `db:"id" json:"id"`
		FollowerID  int64     `db:"follower_id" json:"followerId"`
		FollowingID int64     `db:"following_id" json:"followingId"`
		CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	}

	// FollowDetail carries both endpoints of the edge.
	FollowDetail struct {
		Follow
		Follower  UserSummary `json:"follower"`
		Following UserSummary `json:"following"`
	}

	// FollowerInfo is one entry in a user's followers listing.
	FollowerInfo struct {
		ID         int64     `db:"id" json:"id"`
		FirstName  string    `db:"first_name" json:"firstName"`
		LastName   string    `db:"last_name" json:"lastName"`
		Email      string    `db:"email" json:"email"`
		FollowDate time.Time `db:"follow_date" json:"followDate"`
	}

	// Like is an edge from a user to a post. At most one per pair.
	Like struct {
		ID        int64     `db:"id" json:"id"`
		UserID    int64     `db:"user_id" json:"userId"`
		PostID    int64     `db:"post_id" json:"postId"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
	}

	LikeDetail struct {
		Like
		User UserSummary `json:"user"`
		Post Post        `json:"post"`
	}

	Hashtag struct {
		ID        int64     `db:"id" json:"id"`
		Name      string    `db:"name" json:"name"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
		UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	}

	// Holds the optional fields for updating a user.
	UpdateUserArgs struct {
		FirstName *string
		LastName  *string
		Email     *string
	}

	// Window is a closed [Start, End] filter over created_at. The zero
	// value means no date filtering.
	Window struct {
		Start time.Time
		End   time.Time
	}

	UserRepo interface {
		Users(ctx context.Context) ([]User, error)
		User(ctx context.Context, id int64) (User, error)
		CreateUser(ctx context.Context, firstName, lastName, email string) (User, error)
		UpdateUser(ctx context.Context, id int64, args UpdateUserArgs) (User, error)
		DeleteUser(ctx context.Context, id int64) error
	}

	PostRepo interface {
		Posts(ctx context.Context, limit, offset int) ([]PostDetail, int, error)
		Post(ctx context.Context, id int64) (PostDetail, error)
		CreatePost(ctx context.Context, content string, authorID int64) (Post, error)
		UpdatePostContent(ctx context.Context, id int64, content string) error
		DeletePost(ctx context.Context, id int64) error
		// PostsByAuthors returns posts whose author is in the given set,
		// newest first, plus the pre-pagination total.
		PostsByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]PostDetail, int, error)
		PostsByHashtag(ctx context.Context, name string, limit, offset int) ([]PostDetail, int, error)
	}

	FollowRepo interface {
		Follows(ctx context.Context) ([]FollowDetail, error)
		Follow(ctx context.Context, id int64) (FollowDetail, error)
		// CreateFollow inserts the edge and reports ErrConflict when it
		// already exists. No existence pre-read.
		CreateFollow(ctx context.Context, followerID, followingID int64) (Follow, error)
		DeleteFollow(ctx context.Context, followerID, followingID int64) error
		FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
		Followers(ctx context.Context, userID int64, limit, offset int) ([]FollowerInfo, int, error)
	}

	LikeRepo interface {
		Likes(ctx context.Context) ([]LikeDetail, error)
		Like(ctx context.Context, id int64) (LikeDetail, error)
		CreateLike(ctx context.Context, userID, postID int64) (Like, error)
		DeleteLike(ctx context.Context, userID, postID int64) error
	}

	HashtagRepo interface {
		// EnsureHashtags resolves names to hashtag rows, creating the
		// missing ones. Safe against a concurrent writer creating the
		// same name.
		EnsureHashtags(ctx context.Context, names []string) ([]Hashtag, error)
		SetPostHashtags(ctx context.Context, postID int64, hashtagIDs []int64) error
	}

	ActivityRepo interface {
		PostActivities(ctx context.Context, userID int64, w Window, limit, offset int) ([]PostActivity, int, error)
		LikeActivities(ctx context.Context, userID int64, w Window, limit, offset int) ([]LikeActivity, int, error)
		FollowActivities(ctx context.Context, userID int64, w Window, limit, offset int) ([]FollowActivity, int, error)
	}

	// Repository is the full persistence surface. One sqlite
	// implementation lives in internal/sqlite.
	Repository interface {
		UserRepo
		PostRepo
		FollowRepo
		LikeRepo
		HashtagRepo
		ActivityRepo
	}
)

// Bounded reports whether the window actually filters anything.
func (w Window) Bounded() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}
