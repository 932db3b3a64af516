package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type ctxTraceKey struct{}

type ctxUserKey struct{}

// ContextFromHTTPRequest derives from the request context so values set by middleware survive.
// The trace comes from the Cloud Trace header, or from X-Request-Id outside of Google Cloud.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	return WithTrace(r.Context(), traceOf(r))
}

func traceOf(r *http.Request) string {
	traceParts := strings.Split(r.Header.Get("X-Cloud-Trace-Context"), "/")
	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		return fmt.Sprintf("projects/%s/traces/%s", os.Getenv("GOOGLE_CLOUD_PROJECT"), traceParts[0])
	}
	return r.Header.Get("X-Request-Id")
}

func WithTrace(c context.Context, trace string) context.Context {
	return context.WithValue(c, ctxTraceKey{}, trace)
}

func TraceFromContext(c context.Context) string {
	trace, ok := c.Value(ctxTraceKey{}).(string)
	if !ok {
		return ""
	}
	return trace
}

// WithUser records the authenticated username so log lines can be attributed
func WithUser(c context.Context, username string) context.Context {
	return context.WithValue(c, ctxUserKey{}, username)
}

func UserFromContext(c context.Context) string {
	username, _ := c.Value(ctxUserKey{}).(string)
	return username
}
