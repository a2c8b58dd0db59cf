package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

// windowed applies the closed created_at range when one was supplied.
func windowed(q sq.SelectBuilder, column string, w social.Window) sq.SelectBuilder {
	if !w.Bounded() {
		return q
	}
	return q.Where(column+" BETWEEN ? AND ?", w.Start, w.End)
}

// activityPage runs the count and page queries shared by the three kinds.
func activityPage[T any](ctx context.Context, r Repo, base, countQ sq.SelectBuilder, limit, offset int) ([]T, int, error) {
	query, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error constructing sql: %s", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting activity rows: %s", err)
	}

	query, args, err = base.Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error constructing sql: %s", err)
	}
	var rows []T
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error selecting activity rows: %s", err)
	}

	return rows, total, nil
}

func (r Repo) PostActivities(ctx context.Context, userID int64, w social.Window, limit, offset int) ([]social.PostActivity, int, error) {
	base := windowed(
		sq.Select("id", "content", "created_at").
			From("posts").
			Where(sq.Eq{"author_id": userID}),
		"created_at", w,
	).OrderBy("created_at DESC")
	countQ := windowed(
		sq.Select("COUNT(*)").From("posts").Where(sq.Eq{"author_id": userID}),
		"created_at", w,
	)

	return activityPage[social.PostActivity](ctx, r, base, countQ, limit, offset)
}

func (r Repo) LikeActivities(ctx context.Context, userID int64, w social.Window, limit, offset int) ([]social.LikeActivity, int, error) {
	base := windowed(
		sq.Select("l.id", "l.post_id", "p.content AS post_content", "l.created_at").
			From("likes l").
			Join("posts p ON p.id = l.post_id").
			Where(sq.Eq{"l.user_id": userID}),
		"l.created_at", w,
	).OrderBy("l.created_at DESC")
	countQ := windowed(
		sq.Select("COUNT(*)").From("likes l").Where(sq.Eq{"l.user_id": userID}),
		"l.created_at", w,
	)

	return activityPage[social.LikeActivity](ctx, r, base, countQ, limit, offset)
}

func (r Repo) FollowActivities(ctx context.Context, userID int64, w social.Window, limit, offset int) ([]social.FollowActivity, int, error) {
	base := windowed(
		sq.Select(
			"f.id",
			"f.following_id",
			"u.first_name || ' ' || u.last_name AS following_name",
			"f.created_at",
		).
			From("follows f").
			Join("users u ON u.id = f.following_id").
			Where(sq.Eq{"f.follower_id": userID}),
		"f.created_at", w,
	).OrderBy("f.created_at DESC")
	countQ := windowed(
		sq.Select("COUNT(*)").From("follows f").Where(sq.Eq{"f.follower_id": userID}),
		"f.created_at", w,
	)

	return activityPage[social.FollowActivity](ctx, r, base, countQ, limit, offset)
}
