package locksweeper

import (
	"context"
	"time"
)

const JobName = "lockSweep"

type LockedRow struct {
	ID         string
	LockedBy   string
	LockedDate time.Time
}

// Lockable is a table whose rows carry an advisory lock
//
//go:generate mockgen -source=model.go -package locksweeper -destination lockable_mock.go Lockable
type Lockable interface {
	Name() string
	FindLocked(c context.Context) ([]LockedRow, error)
	// ReleaseLock must not release a lock taken after lockedBefore
	ReleaseLock(c context.Context, id string, lockedBefore time.Time) (bool, error)
}
