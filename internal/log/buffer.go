package log

import (
	"sync"
	"time"
)

// LogEntry is one buffered log line with its structured fields.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LogBuffer keeps the most recent entries in a fixed-size ring for the
// diagnostics endpoints.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	full    bool
}

// NewLogBuffer creates a buffer holding up to size entries.
func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

// AddEntry appends an entry, evicting the oldest once the buffer is full.
func (b *LogBuffer) AddEntry(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next++
	if b.next == len(b.entries) {
		b.next = 0
		b.full = true
	}
}

// GetEntries returns the buffered entries oldest-first.
func (b *LogBuffer) GetEntries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.full {
		out := make([]LogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}

	out := make([]LogEntry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	out = append(out, b.entries[:b.next]...)
	return out
}
