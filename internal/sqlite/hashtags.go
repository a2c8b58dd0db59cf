package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

func (r Repo) hashtagByName(ctx context.Context, name string) (social.Hashtag, error) {
	if tag, ok := r.tags.Get(name); ok {
		return tag, nil
	}

	const q = `SELECT * FROM hashtags WHERE name = ?;`

	var tag social.Hashtag
	err := r.db.GetContext(ctx, &tag, q, name)
	if errors.Is(err, sql.ErrNoRows) {
		return social.Hashtag{}, social.ErrNotFound
	}
	if err != nil {
		return social.Hashtag{}, fmt.Errorf("error fetching hashtag: %s", err)
	}

	r.tags.Add(name, tag)
	return tag, nil
}

// EnsureHashtags resolves the given names to hashtag rows, creating any
// that are missing. The conflict-tolerant insert makes a concurrent
// creator of the same name harmless: whoever loses still reads the row in
// the select that follows.
func (r Repo) EnsureHashtags(ctx context.Context, names []string) ([]social.Hashtag, error) {
	if len(names) == 0 {
		return []social.Hashtag{}, nil
	}

	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}

	const insertQ = `INSERT INTO hashtags (name, created_at, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (name) DO NOTHING;`

	now := time.Now().UTC()
	for _, name := range distinct {
		if _, err := r.db.ExecContext(ctx, insertQ, name, now, now); err != nil {
			return nil, fmt.Errorf("error inserting hashtag: %s", err)
		}
	}

	query, args, err := sq.Select("*").From("hashtags").Where(sq.Eq{"name": distinct}).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	var tags []social.Hashtag
	if err := r.db.SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("error selecting hashtags: %s", err)
	}

	for _, tag := range tags {
		r.tags.Add(tag.Name, tag)
	}

	return tags, nil
}

// SetPostHashtags overwrites the post's hashtag set. A nil or empty id
// list clears every association.
func (r Repo) SetPostHashtags(ctx context.Context, postID int64, hashtagIDs []int64) error {
	const deleteQ = `DELETE FROM post_hashtags WHERE post_id = ?;`

	if _, err := r.db.ExecContext(ctx, deleteQ, postID); err != nil {
		return fmt.Errorf("error clearing post hashtags: %s", err)
	}

	const insertQ = `INSERT INTO post_hashtags (post_id, hashtag_id)
	VALUES (?, ?)
	ON CONFLICT DO NOTHING;`

	for _, tagID := range hashtagIDs {
		if _, err := r.db.ExecContext(ctx, insertQ, postID, tagID); err != nil {
			return fmt.Errorf("error inserting post hashtag: %s", err)
		}
	}

	return nil
}
