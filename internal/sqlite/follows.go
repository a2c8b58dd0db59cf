package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

type followRow struct {
	social.Follow
	FollowerFirstName  string `db:"follower_first_name"`
	FollowerLastName   string `db:"follower_last_name"`
	FollowerEmail      string `db:"follower_email"`
	FollowingFirstName string `db:"following_first_name"`
	FollowingLastName  string `db:"following_last_name"`
	FollowingEmail     string `db:"following_email"`
}

const followDetailQuery = `SELECT
	f.id,
	f.follower_id,
	f.following_id,
	f.created_at,
	fr.first_name AS follower_first_name,
	fr.last_name AS follower_last_name,
	fr.email AS follower_email,
	fg.first_name AS following_first_name,
	fg.last_name AS following_last_name,
	fg.email AS following_email
FROM
	follows f
	INNER JOIN users fr ON fr.id = f.follower_id
	INNER JOIN users fg ON fg.id = f.following_id`

func (row followRow) detail() social.FollowDetail {
	return social.FollowDetail{
		Follow: row.Follow,
		Follower: social.UserSummary{
			ID:        row.FollowerID,
			FirstName: row.FollowerFirstName,
			LastName:  row.FollowerLastName,
			Email:     row.FollowerEmail,
		},
		Following: social.UserSummary{
			ID:        row.FollowingID,
			FirstName: row.FollowingFirstName,
			LastName:  row.FollowingLastName,
			Email:     row.FollowingEmail,
		},
	}
}

func (r Repo) Follows(ctx context.Context) ([]social.FollowDetail, error) {
	q := followDetailQuery + ` ORDER BY f.id;`

	var rows []followRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("error selecting follows: %s", err)
	}

	follows := make([]social.FollowDetail, 0, len(rows))
	for _, row := range rows {
		follows = append(follows, row.detail())
	}

	return follows, nil
}

func (r Repo) Follow(ctx context.Context, id int64) (social.FollowDetail, error) {
	q := followDetailQuery + ` WHERE f.id = ?;`

	var row followRow
	err := r.db.GetContext(ctx, &row, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return social.FollowDetail{}, social.ErrNotFound
	}
	if err != nil {
		return social.FollowDetail{}, fmt.Errorf("error fetching follow: %s", err)
	}

	return row.detail(), nil
}

// CreateFollow inserts the edge outright and leans on the unique index to
// reject a duplicate, so there is no read-then-write race window.
func (r Repo) CreateFollow(ctx context.Context, followerID, followingID int64) (social.Follow, error) {
	const q = `INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, ?);`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, followerID, followingID, now)
	if isUniqueViolation(err) {
		return social.Follow{}, fmt.Errorf("follow relationship already exists: %w", social.ErrConflict)
	}
	if err != nil {
		return social.Follow{}, fmt.Errorf("error inserting follow: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return social.Follow{}, fmt.Errorf("error reading inserted follow id: %s", err)
	}

	return social.Follow{
		ID:          id,
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
	}, nil
}

func (r Repo) DeleteFollow(ctx context.Context, followerID, followingID int64) error {
	const q = `DELETE FROM follows WHERE follower_id = ? AND following_id = ?;`

	res, err := r.db.ExecContext(ctx, q, followerID, followingID)
	if err != nil {
		return fmt.Errorf("error deleting follow: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.ErrNotFound
	}

	return nil
}

func (r Repo) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	const q = `SELECT following_id FROM follows WHERE follower_id = ?;`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, q, followerID); err != nil {
		return nil, fmt.Errorf("error selecting following ids: %s", err)
	}

	return ids, nil
}

func (r Repo) Followers(ctx context.Context, userID int64, limit, offset int) ([]social.FollowerInfo, int, error) {
	const countQ = `SELECT COUNT(*) FROM follows WHERE following_id = ?;`

	var total int
	if err := r.db.GetContext(ctx, &total, countQ, userID); err != nil {
		return nil, 0, fmt.Errorf("error counting followers: %s", err)
	}

	const q = `SELECT
		u.id,
		u.first_name,
		u.last_name,
		u.email,
		f.created_at AS follow_date
	FROM
		follows f
		INNER JOIN users u ON u.id = f.follower_id
	WHERE
		f.following_id = ?
	ORDER BY f.created_at DESC
	LIMIT ? OFFSET ?;`

	followers := []social.FollowerInfo{}
	if err := r.db.SelectContext(ctx, &followers, q, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("error selecting followers: %s", err)
	}

	return followers, total, nil
}
