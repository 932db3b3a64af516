package myqueue

import (
	"context"
	"sync"
)

// FakeTaskQueue remembers tasks; optionally hands them to a dispatcher right away
type FakeTaskQueue struct {
	sync.Mutex
	tasks    []Task
	dispatch func(c context.Context, task Task)
}

func NewFakeQueue() *FakeTaskQueue {
	return &FakeTaskQueue{}
}

func (q *FakeTaskQueue) OnEnqueue(dispatch func(c context.Context, task Task)) {
	q.Lock()
	defer q.Unlock()

	q.dispatch = dispatch
}

func (q *FakeTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	q.tasks = append(q.tasks, task)
	dispatch := q.dispatch
	q.Unlock()

	if dispatch != nil {
		dispatch(c, task)
	}
	return nil
}

func (q *FakeTaskQueue) Tasks() []Task {
	q.Lock()
	defer q.Unlock()

	return append([]Task{}, q.tasks...)
}
