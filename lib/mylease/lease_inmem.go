package mylease

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/userarea/lib/mytime"
)

type holder struct {
	lockedAt  time.Time
	lockUntil time.Time
}

// InMemoryLease serializes jobs within a single process
type InMemoryLease struct {
	sync.Mutex
	nower  mytime.Nower
	leases map[string]holder
}

func NewInMemoryLease(nower mytime.Nower) *InMemoryLease {
	return &InMemoryLease{
		nower:  nower,
		leases: map[string]holder{},
	}
}

func (l *InMemoryLease) TryAcquire(c context.Context, name string, maxHold time.Duration) (bool, error) {
	l.Lock()
	defer l.Unlock()

	now := l.nower.Now()
	if h, found := l.leases[name]; found && h.lockUntil.After(now) {
		return false, nil
	}
	l.leases[name] = holder{lockedAt: now, lockUntil: now.Add(maxHold)}
	return true, nil
}

func (l *InMemoryLease) Release(c context.Context, name string, minHold time.Duration) error {
	l.Lock()
	defer l.Unlock()

	h, found := l.leases[name]
	if !found {
		return nil
	}
	until := h.lockedAt.Add(minHold)
	if now := l.nower.Now(); now.After(until) {
		until = now
	}
	h.lockUntil = until
	l.leases[name] = h
	return nil
}
