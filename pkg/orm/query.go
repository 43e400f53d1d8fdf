// Package orm is a thin chainable wrapper over the shared *gorm.DB.
// Repositories use it so they never touch gorm directly, and Transaction
// gives services the single atomic unit every mutating operation requires
// (order + lines created together, payment uniqueness checked and inserted
// in one transaction).
package orm

import (
	"errors"
	"time"

	"github.com/smartbytes/canteen/pkg/database"
	"gorm.io/gorm"
)

// Cacher is implemented by pkg/cache; wired at boot to avoid an import cycle.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is set by internal/server at boot.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// DB returns a Query rooted at the shared connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap adapts an existing *gorm.DB (e.g. a transaction handle) into a Query.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
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

func (q *Query) Preload(column string) *Query {
	return &Query{db: q.db.Preload(column)}
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

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// Unscoped disables soft-delete filtering; deletes through it are permanent.
func (q *Query) Unscoped() *Query {
	return &Query{db: q.db.Unscoped()}
}

// Transaction runs fn inside a database transaction. The Query passed to fn
// is bound to the transaction handle; any error rolls the whole unit back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(Wrap(tx))
	})
}

// Transaction runs fn inside a transaction on the shared connection.
func Transaction(fn func(tx *Query) error) error {
	return DB().Transaction(fn)
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Cache is a cache-through read: on miss the query result is stored under
// key for ttl. Falls back to a plain read when no cache store is wired.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}
