package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mytime"
	"github.com/MarcGrol/userarea/services/locksweeper"
)

const TableName = "application"

type Service struct {
	store  Store
	nower  mytime.Nower
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store Store, nower mytime.Nower, logger mylog.Logger) *Service {
	return &Service{
		store:  store,
		nower:  nower,
		logger: logger,
	}
}

func (s *Service) GetByID(c context.Context, id int64) (Application, error) {
	a, found, err := s.store.Get(c, id)
	if err != nil {
		return Application{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Application{}, myerrors.NewNotFoundError(fmt.Errorf("application %d not found", id))
	}
	return a, nil
}

// GetByIDAndLock fails with a conflict when another user holds the lock
func (s *Service) GetByIDAndLock(c context.Context, id int64, username string) (Application, error) {
	a, err := s.store.Lock(c, id, username, s.nower.Now())
	if err != nil {
		if myerrors.IsConflict(err) || myerrors.IsNotFound(err) {
			return Application{}, err
		}
		return Application{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Application %s locked by %s", a.Number, username)

	return a, nil
}

func (s *Service) GetApplicationsByIDs(c context.Context, ids []int64) ([]Application, error) {
	apps, err := s.store.GetByIDs(c, ids)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return apps, nil
}

// Save stores a on behalf of username; an application locked by another user is a conflict
func (s *Service) Save(c context.Context, a Application, username string) error {
	err := s.store.Save(c, a, username)
	if err != nil {
		if myerrors.IsConflict(err) {
			return err
		}
		return myerrors.NewInternalError(err)
	}
	return nil
}

// SaveAll stores all or nothing
func (s *Service) SaveAll(c context.Context, apps []Application, username string) error {
	if len(apps) == 0 {
		return nil
	}
	err := s.store.SaveAll(c, apps, username)
	if err != nil {
		if myerrors.IsConflict(err) {
			return err
		}
		return myerrors.NewInternalError(err)
	}
	return nil
}

// UpdateAndReleaseApplicationsLock clears the lock of every application held by username;
// applications locked by someone else are left alone
func (s *Service) UpdateAndReleaseApplicationsLock(c context.Context, apps []Application, username string) ([]Application, error) {
	result := make([]Application, 0, len(apps))
	for _, a := range apps {
		released, err := s.store.Unlock(c, a.ID, username)
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		if !released {
			s.logger.Log(c, username, mylog.SeverityWarn, "Application %s not locked by %s: lock left as is", a.Number, username)
			result = append(result, a)
			continue
		}

		a.LockedBy = nil
		a.LockedDate = nil
		result = append(result, a)

		s.logger.Log(c, username, mylog.SeverityInfo, "Application %s released by %s", a.Number, username)
	}
	return result, nil
}

func (s *Service) Name() string {
	return TableName
}

func (s *Service) FindLocked(c context.Context) ([]locksweeper.LockedRow, error) {
	apps, err := s.store.FindLocked(c)
	if err != nil {
		return nil, err
	}

	rows := make([]locksweeper.LockedRow, 0, len(apps))
	for _, a := range apps {
		row := locksweeper.LockedRow{
			ID: strconv.FormatInt(a.ID, 10),
		}
		if a.LockedBy != nil {
			row.LockedBy = *a.LockedBy
		}
		if a.LockedDate != nil {
			row.LockedDate = *a.LockedDate
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReleaseLock leaves a lock that was refreshed after lockedBefore in place
func (s *Service) ReleaseLock(c context.Context, id string, lockedBefore time.Time) (bool, error) {
	appID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, myerrors.NewInvalidInputError(fmt.Errorf("invalid application id '%s': %s", id, err))
	}
	return s.store.ForceUnlock(c, appID, lockedBefore)
}
