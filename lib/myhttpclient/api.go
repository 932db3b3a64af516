package myhttpclient

import (
	"context"
	"time"
)

type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	RetryCount     int
	RetryWaitTime  time.Duration
}

//go:generate mockgen -source=api.go -package myhttpclient -destination sender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

func New(cfg Config) HTTPSender {
	return newJSONHTTPClient(cfg)
}
