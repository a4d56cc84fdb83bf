package dedup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/monitorchuva/monitorchuva/internal/civil"
	"github.com/monitorchuva/monitorchuva/internal/logger"
)

// Store is a file-backed map of alert key to the last civil day the key
// was notified. It is safe for concurrent use within one process (the
// cycle goroutine writes while HTTP handlers read), but not for
// concurrent writers from multiple processes; one active scheduler
// instance at a time is assumed.
type Store struct {
	path          string
	retentionDays int

	mu       sync.RWMutex
	entries  map[string]Entry
	loaded   bool
	fileTime time.Time
}

type Entry struct {
	LastSeenDay civil.Date `json:"lastSeenDay"`
}

// storeFile is the persisted shape. "sent" keeps the file recognizable
// next to the historical alerts-cache.json layout.
type storeFile struct {
	Sent map[string]Entry `json:"sent"`
}

func NewStore(path string, retentionDays int) *Store {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &Store{
		path:          path,
		retentionDays: retentionDays,
		entries:       make(map[string]Entry),
	}
}

// WasNotified reports whether key has already been notified today. It
// never fails: a corrupt or unreadable backing file is treated as an
// empty store so a possible duplicate send is preferred over silently
// dropping all future alerts.
func (s *Store) WasNotified(key string, today civil.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	entry, ok := s.entries[key]
	if !ok {
		return false
	}
	return entry.LastSeenDay == today
}

// MarkNotified records that key was notified today and persists the
// store durably before returning. Entries whose last seen day is older
// than the retention window are swept out before writing.
func (s *Store) MarkNotified(key string, today civil.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	s.entries[key] = Entry{LastSeenDay: today}
	s.sweep(today)
	return s.persist()
}

// Len returns the number of live entries, loading the store if needed.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return len(s.entries)
}

// Entries returns a copy of the current state for inspection endpoints.
func (s *Store) Entries() map[string]Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *Store) sweep(today civil.Date) {
	for key, entry := range s.entries {
		if today.DaysSince(entry.LastSeenDay) > s.retentionDays {
			delete(s.entries, key)
		}
	}
}

// ensureLoaded reads the backing file on first use and re-reads it when
// the file changed on disk (or was deleted) since the last load. The
// caller must hold mu: even read paths can end up reassigning entries.
func (s *Store) ensureLoaded() {
	info, statErr := os.Stat(s.path)
	if s.loaded {
		if statErr == nil && info.ModTime().Equal(s.fileTime) {
			return
		}
		if statErr != nil && s.fileTime.IsZero() {
			return
		}
	}

	s.entries = make(map[string]Entry)
	s.loaded = true
	s.fileTime = time.Time{}
	if statErr != nil {
		return
	}
	s.fileTime = info.ModTime()

	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Warn("Dedup store unreadable, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		logger.Warn("Dedup store corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	if f.Sent != nil {
		s.entries = f.Sent
	}
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create dedup store directory: %w", err)
	}
	data, err := json.MarshalIndent(storeFile{Sent: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dedup store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write dedup store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace dedup store: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.fileTime = info.ModTime()
	}
	return nil
}
