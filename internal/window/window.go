// Package window reports which application owns the foreground window.
package window

import (
	"context"
	"path/filepath"
	"strings"
)

// Observation is a single look at the foreground window.
type Observation struct {
	Process string
	Title   string
}

// Observer inspects the foreground window. It returns false when there is
// no eligible window or it could not be inspected; that is never an error.
type Observer interface {
	Active(ctx context.Context) (Observation, bool)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(ctx context.Context) (Observation, bool)

// Active calls f.
func (f ObserverFunc) Active(ctx context.Context) (Observation, bool) {
	return f(ctx)
}

// Logger is the subset of logrus used by observers.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// New returns the observer for the current platform. log may be nil.
func New(log Logger) Observer {
	if log == nil {
		log = nopLogger{}
	}
	return newPlatformObserver(log)
}

// BrowserSet matches process names case-insensitively.
type BrowserSet map[string]struct{}

// NewBrowserSet builds a BrowserSet from process names.
func NewBrowserSet(names []string) BrowserSet {
	set := make(BrowserSet, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return set
}

// Contains reports whether process is a listed browser. A full executable
// path is reduced to its base name first.
func (b BrowserSet) Contains(process string) bool {
	if process == "" {
		return false
	}
	if _, ok := b[strings.ToLower(process)]; ok {
		return true
	}
	_, ok := b[strings.ToLower(filepath.Base(process))]
	return ok
}
