package mylog

import (
	"context"
	"strings"
	"sync/atomic"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var severityRank = map[Severity]int32{
	SeverityDebug: 0,
	SeverityInfo:  1,
	SeverityWarn:  2,
	SeverityError: 3,
}

// New creates a logger for the named component; the implementation is chosen at init-time
var New func(name string) Logger

type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}

var minimumRank atomic.Int32

// SetMinimumSeverity drops every entry below the given severity, for all loggers.
// Unknown values are ignored.
func SetMinimumSeverity(severity string) bool {
	rank, found := severityRank[Severity(strings.ToUpper(severity))]
	if !found {
		return false
	}
	minimumRank.Store(rank)
	return true
}

func enabled(severity Severity) bool {
	rank, found := severityRank[severity]
	return !found || rank >= minimumRank.Load()
}
