// Package sqlite implements the social repository over a sqlite database.
package sqlite

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"github.com/nigelnh/be-intern-assignment/internal/social"
)

// Ensure Repo implements the Repository interface
var _ social.Repository = (*Repo)(nil)

// Hashtag rows never change once written, so resolved names are safe to
// keep around.
const hashtagCacheSize = 512

type Repo struct {
	db   *sqlx.DB
	tags *lru.Cache[string, social.Hashtag]
}

func New(db *sqlx.DB) Repo {
	// Only errors on a non-positive size.
	tags, _ := lru.New[string, social.Hashtag](hashtagCacheSize)

	return Repo{db: db, tags: tags}
}

// SQLITE_CONSTRAINT_UNIQUE: the second writer of a duplicate unique row.
const codeConstraintUnique = 2067

func isUniqueViolation(err error) bool {
	sqliteErr := &sqlite.Error{}
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == codeConstraintUnique
}
