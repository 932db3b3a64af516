package myqueue

import (
	"context"
	"time"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

type Config struct {
	ProjectID  string
	LocationID string
	QueueName  string
	Delay      time.Duration
}

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}

// New returns a Cloud Tasks backed queue when a project is configured, an in-process one otherwise
func New(c context.Context, cfg Config) (TaskQueuer, func(), error) {
	if cfg.ProjectID == "" {
		return NewFakeQueue(), func() {}, nil
	}
	return newGcloudQueue(c, cfg)
}
