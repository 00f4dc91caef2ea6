package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEvents is the default cap for the in-memory backend.
const DefaultMaxEvents = 10000

// MemoryLogger is an in-memory implementation of Logger. Events are kept
// newest first and capped to prevent unbounded growth. Thread-safe.
type MemoryLogger struct {
	mu        sync.RWMutex
	events    []*Event
	maxEvents int
}

// MemoryLoggerOption configures a MemoryLogger.
type MemoryLoggerOption func(*MemoryLogger)

// WithMaxEvents sets the maximum number of events to retain.
func WithMaxEvents(max int) MemoryLoggerOption {
	return func(m *MemoryLogger) {
		if max > 0 {
			m.maxEvents = max
		}
	}
}

// NewMemoryLogger creates a new in-memory audit logger.
func NewMemoryLogger(opts ...MemoryLoggerOption) *MemoryLogger {
	m := &MemoryLogger{
		events:    make([]*Event, 0),
		maxEvents: DefaultMaxEvents,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Log records an event.
func (m *MemoryLogger) Log(ctx context.Context, event *Event) error {
	if event == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	// Copy so callers cannot mutate stored events.
	eventCopy := *event

	// Prepend, newest first.
	m.events = append([]*Event{&eventCopy}, m.events...)

	if len(m.events) > m.maxEvents {
		m.events = m.events[:m.maxEvents]
	}

	return nil
}

// List retrieves events with optional filtering and pagination.
func (m *MemoryLogger) List(ctx context.Context, opts ListOptions) ([]*Event, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []*Event
	for _, e := range m.events {
		if !matchesFilters(e, opts) {
			continue
		}
		filtered = append(filtered, e)
	}

	total := len(filtered)

	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Limit > 1000 {
		opts.Limit = 1000
	}

	start := opts.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + opts.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	page := filtered[start:end]
	copies := make([]*Event, len(page))
	for i, e := range page {
		c := *e
		copies[i] = &c
	}

	return copies, total, nil
}

// Ping always succeeds for the in-memory backend.
func (m *MemoryLogger) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory backend.
func (m *MemoryLogger) Close() error { return nil }

// matchesFilters checks whether an event matches the filter options.
func matchesFilters(e *Event, opts ListOptions) bool {
	if opts.Outcome != "" && e.Outcome != opts.Outcome {
		return false
	}
	if opts.Address != "" && e.Address != opts.Address {
		return false
	}
	if opts.Since != nil && e.Timestamp.Before(*opts.Since) {
		return false
	}
	if opts.Until != nil && e.Timestamp.After(*opts.Until) {
		return false
	}
	return true
}
