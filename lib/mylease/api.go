package mylease

import (
	"context"
	"time"
)

// Lease provides cluster-wide mutual exclusion for named jobs.
// A held lease expires at the latest after maxHold and is kept at least minHold after its acquisition.
//
//go:generate mockgen -source=api.go -package mylease -destination lease_mock.go Lease
type Lease interface {
	TryAcquire(c context.Context, name string, maxHold time.Duration) (bool, error)
	Release(c context.Context, name string, minHold time.Duration) error
}
