package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type likeRow struct {
	social.Like
	UserFirstName string    `db:"user_first_name"`
	UserLastName  string    `db:"user_last_name"`
	UserEmail     string    `db:"user_email"`
	PostContent   string    `db:"post_content"`
	PostAuthorID  int64     `db:"post_author_id"`
	PostCreatedAt time.Time `db:"post_created_at"`
	PostUpdatedAt time.Time `db:"post_updated_at"`
}

const likeDetailQuery = `SELECT
	l.id,
	l.user_id,
	l.post_id,
	l.created_at,
	u.first_name AS user_first_name,
	u.last_name AS user_last_name,
	u.email AS user_email,
	p.content AS post_content,
	p.author_id AS post_author_id,
	p.created_at AS post_created_at,
	p.updated_at AS post_updated_at
FROM
	likes l
	INNER JOIN users u ON u.id = l.user_id
	INNER JOIN posts p ON p.id = l.post_id`

func (row likeRow) detail() social.LikeDetail {
	return social.LikeDetail{
		Like: row.Like,
		User: social.UserSummary{
			ID:        row.UserID,
			FirstName: row.UserFirstName,
			LastName:  row.UserLastName,
			Email:     row.UserEmail,
		},
		Post: social.Post{
			ID:        row.PostID,
			Content:   row.PostContent,
			AuthorID:  row.PostAuthorID,
			CreatedAt: row.PostCreatedAt,
			UpdatedAt: row.PostUpdatedAt,
		},
	}
}

func (r Repo) Likes(ctx context.Context) ([]social.LikeDetail, error) {
	q := likeDetailQuery + ` ORDER BY l.id;`

	var rows []likeRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("error selecting likes: %s", err)
	}

	likes := make([]social.LikeDetail, 0, len(rows))
	for _, row := range rows {
		likes = append(likes, row.detail())
	}

	return likes, nil
}

func (r Repo) Like(ctx context.Context, id int64) (social.LikeDetail, error) {
	q := likeDetailQuery + ` WHERE l.id = ?;`

	var row likeRow
	err := r.db.GetContext(ctx, &row, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return social.LikeDetail{}, social.ErrNotFound
	}
	if err != nil {
		return social.LikeDetail{}, fmt.Errorf("error fetching like: %s", err)
	}

	return row.detail(), nil
}

// CreateLike inserts the edge outright; the unique index turns the second
// writer of a duplicate into a conflict.
func (r Repo) CreateLike(ctx context.Context, userID, postID int64) (social.Like, error) {
	const q = `INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?);`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, userID, postID, now)
	if isUniqueViolation(err) {
		return social.Like{}, fmt.Errorf("user already liked this post: %w", social.ErrConflict)
	}
	if err != nil {
		return social.Like{}, fmt.Errorf("error inserting like: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return social.Like{}, fmt.Errorf("error reading inserted like id: %s", err)
	}

	return social.Like{
		ID:        id,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: now,
	}, nil
}

func (r Repo) DeleteLike(ctx context.Context, userID, postID int64) error {
	const q = `DELETE FROM likes WHERE user_id = ? AND post_id = ?;`

	res, err := r.db.ExecContext(ctx, q, userID, postID)
	if err != nil {
		return fmt.Errorf("error deleting like: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.ErrNotFound
	}

	return nil
}
