// Package view holds the per-page state a poller reconciles into and the
// renderer reads from.
package view

import (
	"log/slog"
	"sync"
	"time"

	"MonitorBoard/internal/query"
)

// ErrorPolicy decides what a failed request does to displayed items.
type ErrorPolicy int

const (
	// ReplaceOnError clears the items and surfaces the error. List and
	// search pages use it.
	ReplaceOnError ErrorPolicy = iota
	// KeepOnError keeps the last good items and hides the failure. Summary
	// tiles refreshed in the background use it.
	KeepOnError
)

func (p ErrorPolicy) String() string {
	if p == KeepOnError {
		return "keep"
	}
	return "replace"
}

// Status is the rendering state derived from a snapshot.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// Snapshot is a point-in-time copy of a page's state.
type Snapshot[T any] struct {
	Items     []T
	Loading   bool
	Err       error
	LastQuery query.FilterSet
	UpdatedAt time.Time
}

// Status derives what the page should show. Zero rows is a state of its own,
// not an error.
func (s Snapshot[T]) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Err != nil:
		return StatusError
	case len(s.Items) == 0:
		return StatusEmpty
	default:
		return StatusReady
	}
}

// State is one page's view state. After Close every mutation is a no-op.
type State[T any] struct {
	mu        sync.Mutex
	policy    ErrorPolicy
	items     []T
	pending   int
	err       error
	lastQuery query.FilterSet
	updatedAt time.Time
	closed    bool

	Now    func() time.Time
	Logger *slog.Logger
}

// New creates a state seeded with the page's default filters.
func New[T any](policy ErrorPolicy, defaults query.FilterSet, logger *slog.Logger) *State[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &State[T]{
		policy:    policy,
		items:     []T{},
		lastQuery: defaults,
		Now:       time.Now,
		Logger:    logger,
	}
}

// Policy returns the state's error policy.
func (s *State[T]) Policy() ErrorPolicy { return s.policy }

// Begin records a dispatched request for f and clears the previous error.
// It reports false once closed.
func (s *State[T]) Begin(f query.FilterSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.lastQuery = f
	s.err = nil
	s.pending++
	return true
}

// Succeed applies a resolved request. The last response to arrive wins.
func (s *State[T]) Succeed(items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.err = nil
	s.updatedAt = s.Now()
	s.settle()
	return true
}

// Fail applies a failed request according to the policy.
func (s *State[T]) Fail(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.settle()
	switch s.policy {
	case KeepOnError:
		s.Logger.Warn("background refresh failed, keeping last value", "error", err)
	default:
		s.err = err
		s.items = []T{}
	}
	return true
}

func (s *State[T]) settle() {
	if s.pending > 0 {
		s.pending--
	}
}

// LastQuery returns the filters of the most recent request.
func (s *State[T]) LastQuery() query.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// Close discards the state; late responses no longer mutate it.
func (s *State[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether Close has been called.
func (s *State[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot copies the current state for rendering.
func (s *State[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T]{
		Items:     items,
		Loading:   s.pending > 0,
		Err:       s.err,
		LastQuery: s.lastQuery,
		UpdatedAt: s.updatedAt,
	}
}
