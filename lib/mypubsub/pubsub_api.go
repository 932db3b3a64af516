package mypubsub

import "context"

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
	Subscribe(c context.Context, topic string, urlToPostTo string) error
}

// New returns a Cloud Pub/Sub backed implementation when a project is given, an in-process one otherwise
func New(c context.Context, projectID string) (PubSub, func(), error) {
	if projectID == "" {
		return NewFakePubSub(), func() {}, nil
	}
	return newGcloudPubSub(c, projectID)
}
