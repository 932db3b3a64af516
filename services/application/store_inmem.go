package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MarcGrol/userarea/lib/myerrors"
)

type InMemoryStore struct {
	mu   sync.Mutex
	apps map[int64]Application
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		apps: map[int64]Application{},
	}
}

func (s *InMemoryStore) Get(c context.Context, id int64) (Application, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.apps[id]
	return a, found, nil
}

func (s *InMemoryStore) GetByIDs(c context.Context, ids []int64) ([]Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []Application{}
	for _, id := range ids {
		if a, found := s.apps[id]; found {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *InMemoryStore) Save(c context.Context, a Application, username string) error {
	return s.SaveAll(c, []Application{a}, username)
}

func (s *InMemoryStore) SaveAll(c context.Context, apps []Application, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range apps {
		existing, found := s.apps[a.ID]
		if found && existing.IsLocked() && !existing.IsLockedBy(username) {
			return lockConflict(existing)
		}
	}
	for _, a := range apps {
		if existing, found := s.apps[a.ID]; found {
			a.LockedBy = existing.LockedBy
			a.LockedDate = existing.LockedDate
		}
		s.apps[a.ID] = a
	}
	return nil
}

func (s *InMemoryStore) Lock(c context.Context, id int64, username string, lockedAt time.Time) (Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.apps[id]
	if !found {
		return Application{}, myerrors.NewNotFoundError(fmt.Errorf("application %d not found", id))
	}
	if a.IsLocked() && !a.IsLockedBy(username) {
		return Application{}, lockConflict(a)
	}
	a.LockedBy = &username
	a.LockedDate = &lockedAt
	s.apps[id] = a
	return a, nil
}

func (s *InMemoryStore) Unlock(c context.Context, id int64, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.apps[id]
	if !found || !a.IsLockedBy(username) {
		return false, nil
	}
	a.LockedBy = nil
	a.LockedDate = nil
	s.apps[id] = a
	return true, nil
}

func (s *InMemoryStore) FindLocked(c context.Context) ([]Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []Application{}
	for _, a := range s.apps {
		if a.IsLocked() {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *InMemoryStore) ForceUnlock(c context.Context, id int64, lockedBefore time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, found := s.apps[id]
	if !found || !a.IsLocked() {
		return false, nil
	}
	if a.LockedDate != nil && a.LockedDate.After(lockedBefore) {
		return false, nil
	}
	a.LockedBy = nil
	a.LockedDate = nil
	s.apps[id] = a
	return true, nil
}
