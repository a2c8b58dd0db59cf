package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

// postRow is the flat shape a post detail query scans into before the
// hashtag collections get attached.
type postRow struct {
	social.Post
	AuthorFirstName string `db:"author_first_name"`
	AuthorLastName  string `db:"author_last_name"`
	LikeCount       int    `db:"like_count"`
}

func postDetailQuery() sq.SelectBuilder {
	return sq.Select(
		"p.id",
		"p.content",
		"p.author_id",
		"p.created_at",
		"p.updated_at",
		"u.first_name AS author_first_name",
		"u.last_name AS author_last_name",
		"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id")
}

// postDetailPage runs the detail query and its pre-pagination count for the
// given predicate, newest posts first.
func (r Repo) postDetailPage(ctx context.Context, pred any, limit, offset int) ([]social.PostDetail, int, error) {
	q := postDetailQuery().
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	countQ := sq.Select("COUNT(*)").From("posts p")
	if pred != nil {
		q = q.Where(pred)
		countQ = countQ.Where(pred)
	}

	query, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error constructing sql: %s", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %s", err)
	}

	query, args, err = q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error constructing sql: %s", err)
	}
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error selecting posts: %s", err)
	}

	details, err := r.assemblePostDetails(ctx, rows)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

// assemblePostDetails attaches each row's hashtag collection and maps to
// the domain shape.
func (r Repo) assemblePostDetails(ctx context.Context, rows []postRow) ([]social.PostDetail, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	tagsByPost, err := r.postHashtags(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]social.PostDetail, 0, len(rows))
	for _, row := range rows {
		tags := tagsByPost[row.ID]
		if tags == nil {
			tags = []social.Hashtag{}
		}
		details = append(details, social.PostDetail{
			ID:      row.ID,
			Content: row.Content,
			Author: social.Author{
				ID:        row.AuthorID,
				FirstName: row.AuthorFirstName,
				LastName:  row.AuthorLastName,
			},
			LikeCount: row.LikeCount,
			Hashtags:  tags,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return details, nil
}

func (r Repo) postHashtags(ctx context.Context, postIDs []int64) (map[int64][]social.Hashtag, error) {
	if len(postIDs) == 0 {
		return map[int64][]social.Hashtag{}, nil
	}

	query, args, err := sq.Select("ph.post_id", "h.id", "h.name", "h.created_at", "h.updated_at").
		From("post_hashtags ph").
		Join("hashtags h ON h.id = ph.hashtag_id").
		Where(sq.Eq{"ph.post_id": postIDs}).
		OrderBy("h.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	var rows []struct {
		PostID int64 `db:"post_id"`
		social.Hashtag
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error selecting post hashtags: %s", err)
	}

	byPost := make(map[int64][]social.Hashtag)
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], row.Hashtag)
	}

	return byPost, nil
}

func (r Repo) Posts(ctx context.Context, limit, offset int) ([]social.PostDetail, int, error) {
	return r.postDetailPage(ctx, nil, limit, offset)
}

func (r Repo) Post(ctx context.Context, id int64) (social.PostDetail, error) {
	query, args, err := postDetailQuery().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return social.PostDetail{}, fmt.Errorf("error constructing sql: %s", err)
	}

	var row postRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return social.PostDetail{}, social.ErrNotFound
	}
	if err != nil {
		return social.PostDetail{}, fmt.Errorf("error fetching post: %s", err)
	}

	details, err := r.assemblePostDetails(ctx, []postRow{row})
	if err != nil {
		return social.PostDetail{}, err
	}

	return details[0], nil
}

func (r Repo) CreatePost(ctx context.Context, content string, authorID int64) (social.Post, error) {
	const q = `INSERT INTO posts (content, author_id, created_at, updated_at)
	VALUES (?, ?, ?, ?);`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, content, authorID, now, now)
	if err != nil {
		return social.Post{}, fmt.Errorf("error inserting post: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return social.Post{}, fmt.Errorf("error reading inserted post id: %s", err)
	}

	return social.Post{
		ID:        id,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r Repo) UpdatePostContent(ctx context.Context, id int64, content string) error {
	const q = `UPDATE posts SET content = ?, updated_at = ? WHERE id = ?;`

	res, err := r.db.ExecContext(ctx, q, content, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("error updating post: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.ErrNotFound
	}

	return nil
}

func (r Repo) DeletePost(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = ?;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.ErrNotFound
	}

	return nil
}

func (r Repo) PostsByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]social.PostDetail, int, error) {
	if len(authorIDs) == 0 {
		return []social.PostDetail{}, 0, nil
	}

	return r.postDetailPage(ctx, sq.Eq{"p.author_id": authorIDs}, limit, offset)
}

func (r Repo) PostsByHashtag(ctx context.Context, name string, limit, offset int) ([]social.PostDetail, int, error) {
	// Names are stored lowercased, so folding the tag makes the lookup
	// case-insensitive.
	tag, err := r.hashtagByName(ctx, strings.ToLower(name))
	if errors.Is(err, social.ErrNotFound) {
		return []social.PostDetail{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	pred := sq.Expr(
		"EXISTS (SELECT 1 FROM post_hashtags ph WHERE ph.post_id = p.id AND ph.hashtag_id = ?)",
		tag.ID,
	)

	return r.postDetailPage(ctx, pred, limit, offset)
}
