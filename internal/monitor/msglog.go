package monitor

import (
	"sync"
	"time"
)

// MessageLogEntry records one delivered alert for the dashboard.
type MessageLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	City      string    `json:"city"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
}

// MessageLog is a bounded, newest-first ring of sent messages. The HTTP
// server reads it from another goroutine, so access is locked.
type MessageLog struct {
	mu      sync.RWMutex
	entries []MessageLogEntry
	max     int
}

func NewMessageLog(max int) *MessageLog {
	if max <= 0 {
		max = 100
	}
	return &MessageLog{max: max}
}

func (l *MessageLog) Add(entry MessageLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]MessageLogEntry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

func (l *MessageLog) Recent(n int) []MessageLogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]MessageLogEntry, n)
	copy(out, l.entries[:n])
	return out
}

func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
