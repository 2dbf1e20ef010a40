// Package orm is a small fluent wrapper over GORM with an optional
// read-through cache, used by the repositories.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/tindahan/pkg/cache"
	"github.com/shashiranjanraj/tindahan/pkg/database"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	return q.db.Count(count).Error
}

// Cache runs the query through the Redis read-cache: a hit fills dest
// without touching the database, a miss queries and back-fills the cache.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.Get(dest)
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
