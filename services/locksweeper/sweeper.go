package locksweeper

import (
	"context"
	"slices"
	"time"

	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
	"github.com/MarcGrol/userarea/lib/mytime"
)

// Sweeper force-releases locks that are held longer than the timeout
type Sweeper struct {
	lockables []Lockable
	timeout   time.Duration
	nower     mytime.Nower
	metrics   *mymetrics.Metrics
	logger    mylog.Logger
}

// New only sweeps the lockables whose name is in tables
func New(tables []string, timeout time.Duration, nower mytime.Nower, metrics *mymetrics.Metrics, logger mylog.Logger, lockables ...Lockable) *Sweeper {
	enabled := []Lockable{}
	for _, l := range lockables {
		if slices.Contains(tables, l.Name()) {
			enabled = append(enabled, l)
		}
	}
	for _, table := range tables {
		if !slices.ContainsFunc(lockables, func(l Lockable) bool { return l.Name() == table }) {
			logger.Log(context.Background(), JobName, mylog.SeverityWarn, "No lockable registered for table %s", table)
		}
	}

	return &Sweeper{
		lockables: enabled,
		timeout:   timeout,
		nower:     nower,
		metrics:   metrics,
		logger:    logger,
	}
}

// Sweep returns the number of released locks; failures are logged and skipped
func (s *Sweeper) Sweep(c context.Context) int {
	released := 0
	for _, lockable := range s.lockables {
		released += s.sweepTable(c, lockable)
	}
	return released
}

func (s *Sweeper) sweepTable(c context.Context, lockable Lockable) int {
	rows, err := lockable.FindLocked(c)
	if err != nil {
		s.logger.Log(c, JobName, mylog.SeverityError, "Error finding locked rows of %s: %s", lockable.Name(), err)
		return 0
	}

	now := s.nower.Now()
	cutoff := now.Add(-s.timeout)
	released := 0
	for _, row := range rows {
		// a lock without date can never expire by itself
		if !row.LockedDate.IsZero() && now.Sub(row.LockedDate) < s.timeout {
			continue
		}

		done, err := lockable.ReleaseLock(c, row.ID, cutoff)
		if err != nil {
			s.logger.Log(c, JobName, mylog.SeverityError, "Error releasing lock of %s %s: %s", lockable.Name(), row.ID, err)
			continue
		}
		if !done {
			s.logger.Log(c, JobName, mylog.SeverityInfo, "Lock of %s %s was refreshed or released meanwhile", lockable.Name(), row.ID)
			continue
		}

		released++
		s.metrics.SweepLocksReleased.WithLabelValues(lockable.Name()).Inc()
		s.logger.Log(c, JobName, mylog.SeverityInfo, "Released lock of %s %s held by %s since %s",
			lockable.Name(), row.ID, row.LockedBy, row.LockedDate.Format(time.RFC3339))
	}
	return released
}

// Run adapts Sweep to a scheduler job
func (s *Sweeper) Run(c context.Context) error {
	s.Sweep(c)
	return nil
}
