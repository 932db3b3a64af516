package mystore

import (
	"context"
)

type ctxTransactionKey struct{}

// Filter narrows a Query to entities whose Field compares to Value.
// The in-memory store only supports equality.
type Filter struct {
	Field   string
	Compare string
	Value   any
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	// RunInTransaction makes Put/Get/Delete calls made with the passed context part of one transaction
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
	// Query returns matching entities; prefix orderByField with '-' for descending order
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New returns a Cloud Datastore backed store for the given project, an in-memory one when projectID is empty.
// Each entity type T gets its own kind.
func New[T any](c context.Context, projectID string) (Store[T], func(), error) {
	if projectID != "" {
		return newGcloudStore[T](c, projectID)
	}

	return NewInMemoryStore[T](c)
}
