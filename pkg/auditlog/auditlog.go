// Package auditlog keeps a bounded, in-memory record of recent CLI activity.
package auditlog

import (
	"sync"
	"time"
)

const (
	DefaultCapacity  = 500
	DefaultRetention = 7 * 24 * time.Hour
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event is one recorded action
type Event struct {
	Time    time.Time
	Level   Level
	Action  string
	Message string
	Fields  map[string]string
}

// Log is a ring buffer of events. Events are dropped when the buffer is full
// (oldest first) or once they are older than the retention window.
// It is safe for concurrent use.
type Log struct {
	mu        sync.Mutex
	events    []Event
	start     int
	count     int
	retention time.Duration
}

// New creates a log. Non-positive values fall back to the defaults.
func New(capacity int, retention time.Duration) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Log{
		events:    make([]Event, capacity),
		retention: retention,
	}
}

// Record appends an event, overwriting the oldest one when full
func (l *Log) Record(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	capacity := len(l.events)
	if l.count < capacity {
		l.events[(l.start+l.count)%capacity] = event
		l.count++
		return
	}

	l.events[l.start] = event
	l.start = (l.start + 1) % capacity
}

// Recent evicts events older than the retention window at now and returns the rest, oldest first
func (l *Log) Recent(now time.Time) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.retention)
	capacity := len(l.events)
	for l.count > 0 && l.events[l.start].Time.Before(cutoff) {
		l.events[l.start] = Event{}
		l.start = (l.start + 1) % capacity
		l.count--
	}

	events := make([]Event, l.count)
	for i := range events {
		events[i] = l.events[(l.start+i)%capacity]
	}
	return events
}

// Len returns the number of events held, including any that have expired but not yet been evicted
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
