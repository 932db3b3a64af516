package application

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -package application -destination store_mock.go Store
type Store interface {
	Get(c context.Context, id int64) (Application, bool, error)
	GetByIDs(c context.Context, ids []int64) ([]Application, error)
	// Save and SaveAll never touch the lock columns of an existing row and fail with a conflict
	// when the row is locked by someone other than username
	Save(c context.Context, app Application, username string) error
	SaveAll(c context.Context, apps []Application, username string) error
	// Lock succeeds when the application is unlocked or already locked by username
	Lock(c context.Context, id int64, username string, lockedAt time.Time) (Application, error)
	// Unlock reports false when the application is not locked by username
	Unlock(c context.Context, id int64, username string) (bool, error)
	FindLocked(c context.Context) ([]Application, error)
	// ForceUnlock only clears a lock taken at or before lockedBefore and reports whether it did
	ForceUnlock(c context.Context, id int64, lockedBefore time.Time) (bool, error)
}
