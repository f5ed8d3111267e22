// Package collection stores named collections of records behind a single
// append/list/find/update contract. Two backends exist: a JSON file per
// collection and a GORM table per collection.
package collection

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("collection: record not found")
	ErrConflict = errors.New("collection: record already exists")
)

// Record is implemented by every stored type. Field exposes the values that
// a Match can filter on; field names equal the backing column names.
type Record interface {
	RecordID() string
	Field(name string) (string, bool)
}

// Match is an equality predicate over record fields. An empty Match selects
// every record.
type Match map[string]string

// Matches reports whether every condition in m holds for r. Unknown fields
// never match.
func (m Match) Matches(r Record) bool {
	for field, want := range m {
		got, ok := r.Field(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Collection is the storage contract shared by all backends.
type Collection[T Record] interface {
	// Append adds one record and persists the collection.
	Append(ctx context.Context, rec T) error

	// AppendUnique appends rec unless a record matching unique already
	// exists, in which case it returns ErrConflict. The check and the write
	// are atomic.
	AppendUnique(ctx context.Context, rec T, unique Match) error

	// List returns the records matching m in insertion order.
	List(ctx context.Context, m Match) ([]T, error)

	// FindOne returns the first record matching m or ErrNotFound.
	FindOne(ctx context.Context, m Match) (T, error)

	// Update loads the record with the given id, applies mutate and persists
	// the result. It returns ErrNotFound when no record has that id.
	Update(ctx context.Context, id string, mutate func(*T) error) error
}
