// Package telemetry wraps the structured logger the restart engine reports
// swallowed inner-failures, stop events, and found-optimum events through.
//
// The teacher repo reported training progress with ad hoc fmt.Printf calls
// from a handful of show_* helpers; this package replaces that with leveled,
// structured fields so those same events (a worker's progress, a run
// terminating) are queryable rather than just printed.
package telemetry

import (
	"sync"

	"github.com/sourcegraph/log"
)

// Logger is the structured logger type the restart engine accepts.
type Logger = log.Logger

var initLogSink = sync.OnceFunc(func() {
	log.Init(log.Resource{Name: "multistart"})
})

// New returns a named logger for the given component, e.g. "restart.pool".
// It lazily initializes the global sourcegraph/log sink on first use.
func New(component string) Logger {
	initLogSink()
	return log.Scoped(component, "multistart restart engine")
}

// Nop returns a logger that discards everything, the construction default
// for engine types so the library stays silent unless wired to a real sink.
func Nop() Logger {
	return log.NoOp()
}
