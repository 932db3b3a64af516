package myscheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MarcGrol/userarea/lib/mylease"
	"github.com/MarcGrol/userarea/lib/mylog"
)

type Job func(c context.Context) error

// Scheduler runs cron jobs; each run is guarded by a lease so at most one instance executes it
type Scheduler struct {
	cron    *cron.Cron
	lease   mylease.Lease
	minHold time.Duration
	maxHold time.Duration
	logger  mylog.Logger
}

func New(lease mylease.Lease, minHold time.Duration, maxHold time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		lease:   lease,
		minHold: minHold,
		maxHold: maxHold,
		logger:  mylog.New("scheduler"),
	}
}

func (s *Scheduler) Register(c context.Context, name string, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		_, err := s.RunLocked(c, name, job)
		if err != nil {
			s.logger.Log(c, name, mylog.SeverityError, "Error running job %s: %s", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling job %s with spec '%s': %s", name, spec, err)
	}
	s.logger.Log(c, name, mylog.SeverityInfo, "Scheduled job %s with spec '%s'", name, spec)
	return nil
}

// RunLocked executes job when the lease can be acquired and reports whether it ran
func (s *Scheduler) RunLocked(c context.Context, name string, job Job) (bool, error) {
	acquired, err := s.lease.TryAcquire(c, name, s.maxHold)
	if err != nil {
		return false, err
	}
	if !acquired {
		s.logger.Log(c, name, mylog.SeverityDebug, "Job %s is running elsewhere: skip", name)
		return false, nil
	}
	defer func() {
		err := s.lease.Release(c, name, s.minHold)
		if err != nil {
			s.logger.Log(c, name, mylog.SeverityWarn, "Error releasing lease of job %s: %s", name, err)
		}
	}()

	return true, job(c)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to complete
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
