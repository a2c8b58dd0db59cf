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

func (r Repo) Users(ctx context.Context) ([]social.User, error) {
	const q = `SELECT * FROM users ORDER BY id;`

	users := []social.User{}
	if err := r.db.SelectContext(ctx, &users, q); err != nil {
		return nil, fmt.Errorf("error selecting users: %s", err)
	}

	return users, nil
}

func (r Repo) User(ctx context.Context, id int64) (social.User, error) {
	const q = `SELECT * FROM users WHERE id = ?;`

	var usr social.User
	err := r.db.GetContext(ctx, &usr, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return social.User{}, social.ErrNotFound
	}
	if err != nil {
		return social.User{}, fmt.Errorf("error fetching user: %s", err)
	}

	return usr, nil
}

func (r Repo) CreateUser(ctx context.Context, firstName, lastName, email string) (social.User, error) {
	const q = `INSERT INTO users (first_name, last_name, email, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?);`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, firstName, lastName, email, now, now)
	if isUniqueViolation(err) {
		return social.User{}, fmt.Errorf("email already in use: %w", social.ErrConflict)
	}
	if err != nil {
		return social.User{}, fmt.Errorf("error inserting user: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return social.User{}, fmt.Errorf("error reading inserted user id: %s", err)
	}

	return r.User(ctx, id)
}

func (r Repo) UpdateUser(ctx context.Context, id int64, args social.UpdateUserArgs) (social.User, error) {
	q := sq.Update("users").Set("updated_at", time.Now().UTC())
	if args.FirstName != nil {
		q = q.Set("first_name", *args.FirstName)
	}
	if args.LastName != nil {
		q = q.Set("last_name", *args.LastName)
	}
	if args.Email != nil {
		q = q.Set("email", *args.Email)
	}
	q = q.Where(sq.Eq{"id": id})

	query, qArgs, err := q.ToSql()
	if err != nil {
		return social.User{}, fmt.Errorf("error constructing sql: %s", err)
	}

	res, err := r.db.ExecContext(ctx, query, qArgs...)
	if isUniqueViolation(err) {
		return social.User{}, fmt.Errorf("email already in use: %w", social.ErrConflict)
	}
	if err != nil {
		return social.User{}, fmt.Errorf("error updating user: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.User{}, social.ErrNotFound
	}

	return r.User(ctx, id)
}

func (r Repo) DeleteUser(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = ?;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %s", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return social.ErrNotFound
	}

	return nil
}
