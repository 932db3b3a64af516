package myasync

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/MarcGrol/userarea/lib/mylog"
)

type Executor interface {
	Go(c context.Context, name string, task func(c context.Context))
}

// BoundedExecutor runs fire-and-forget tasks with at most maxConcurrent in flight
type BoundedExecutor struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger mylog.Logger
}

func New(maxConcurrent int64) *BoundedExecutor {
	return &BoundedExecutor{
		sem:    semaphore.NewWeighted(maxConcurrent),
		logger: mylog.New("async"),
	}
}

// Go does not block the caller; the task gets a context that survives cancellation of c
func (e *BoundedExecutor) Go(c context.Context, name string, task func(c context.Context)) {
	taskCtx := context.WithoutCancel(c)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		err := e.sem.Acquire(taskCtx, 1)
		if err != nil {
			e.logger.Log(taskCtx, name, mylog.SeverityError, "Error acquiring slot for task %s: %s", name, err)
			return
		}
		defer e.sem.Release(1)

		defer func() {
			if r := recover(); r != nil {
				e.logger.Log(taskCtx, name, mylog.SeverityError, "Task %s panicked: %v", name, r)
			}
		}()

		task(taskCtx)
	}()
}

// Wait blocks until all submitted tasks have finished
func (e *BoundedExecutor) Wait() {
	e.wg.Wait()
}

// InlineExecutor runs tasks synchronously
type InlineExecutor struct{}

func (InlineExecutor) Go(c context.Context, name string, task func(c context.Context)) {
	task(context.WithoutCancel(c))
}
