// Package fms supplies the raw field message to the robot. During a real
// match the driver station delivers it; in development it comes from a
// watched drop file or the environment.
package fms

import (
	"os"
	"strings"
	"sync"
)

// Source yields the current raw field message. An empty message is the
// expected "no signal yet" state, distinct from malformed content.
type Source interface {
	// Message returns the latest raw field message, which may be empty.
	Message() string

	// Attached reports whether a field management system is present at all.
	// Practice runs without one are normal.
	Attached() bool
}

// Static is a fixed-message source, used by tests and for forcing a plate
// layout during practice.
type Static struct {
	Raw     string
	Present bool
}

var _ Source = (*Static)(nil)

func (s *Static) Message() string { return s.Raw }
func (s *Static) Attached() bool  { return s.Present }

// Env reads the message from an environment variable once at startup.
type Env struct {
	value string
}

var _ Source = (*Env)(nil)

// NewEnv snapshots the named environment variable.
func NewEnv(name string) *Env {
	return &Env{value: strings.TrimSpace(os.Getenv(name))}
}

func (e *Env) Message() string { return e.value }
func (e *Env) Attached() bool  { return e.value != "" }

// latest is the shared guarded cell used by sources updated from another
// goroutine (the file watcher).
type latest struct {
	mu       sync.RWMutex
	raw      string
	attached bool
}

func (l *latest) set(raw string, attached bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.raw = raw
	l.attached = attached
}

func (l *latest) get() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.raw, l.attached
}
