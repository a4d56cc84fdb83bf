package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/monitorchuva/monitorchuva/internal/civil"
)

// DailyLedger records which cities triggered at least one alert on a
// given civil day. Once closed it is never mutated again.
type DailyLedger struct {
	Day    civil.Date `json:"day"`
	Cities []string   `json:"cities"`
	Closed bool       `json:"closed"`
}

func (l DailyLedger) HasCity(city string) bool {
	for _, c := range l.Cities {
		if c == city {
			return true
		}
	}
	return false
}

// Book persists one JSON ledger file per calendar day under dir. Unlike
// the dedup store it fails closed: losing ledger data silently would
// corrupt the daily summary, so every I/O failure is surfaced.
type Book struct {
	dir string
}

func NewBook(dir string) *Book {
	return &Book{dir: dir}
}

// RecordCity adds city to today's ledger, creating an empty open ledger
// if none exists yet. Recording the same city twice is a no-op, and a
// ledger that has already been closed stays untouched.
func (b *Book) RecordCity(city string, today civil.Date) error {
	l, err := b.load(today)
	if err != nil {
		return err
	}
	if l.Closed || l.HasCity(city) {
		return nil
	}
	l.Cities = append(l.Cities, city)
	return b.save(l)
}

// Snapshot returns the ledger for day, or an empty open ledger when the
// day has no file yet.
func (b *Book) Snapshot(day civil.Date) (DailyLedger, error) {
	return b.load(day)
}

// CloseAndRoll marks today's ledger closed, persists it, and pre-creates
// an empty open ledger for tomorrow. Closing an already-closed day is a
// no-op returning the existing snapshot, so a retried summary cannot
// mutate the audit record.
func (b *Book) CloseAndRoll(today civil.Date) (DailyLedger, error) {
	l, err := b.load(today)
	if err != nil {
		return DailyLedger{}, err
	}
	if !l.Closed {
		l.Closed = true
		if err := b.save(l); err != nil {
			return DailyLedger{}, err
		}
	}

	tomorrow := today.AddDays(1)
	next, err := b.load(tomorrow)
	if err != nil {
		return DailyLedger{}, err
	}
	if _, statErr := os.Stat(b.pathFor(tomorrow)); os.IsNotExist(statErr) {
		if err := b.save(next); err != nil {
			return DailyLedger{}, err
		}
	}
	return l, nil
}

func (b *Book) pathFor(day civil.Date) string {
	return filepath.Join(b.dir, day.String()+".json")
}

func (b *Book) load(day civil.Date) (DailyLedger, error) {
	data, err := os.ReadFile(b.pathFor(day))
	if os.IsNotExist(err) {
		return DailyLedger{Day: day, Cities: []string{}}, nil
	}
	if err != nil {
		return DailyLedger{}, fmt.Errorf("failed to read ledger for %s: %w", day, err)
	}
	var l DailyLedger
	if err := json.Unmarshal(data, &l); err != nil {
		return DailyLedger{}, fmt.Errorf("ledger for %s is corrupt: %w", day, err)
	}
	l.Day = day
	if l.Cities == nil {
		l.Cities = []string{}
	}
	return l, nil
}

func (b *Book) save(l DailyLedger) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger for %s: %w", l.Day, err)
	}
	path := b.pathFor(l.Day)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger for %s: %w", l.Day, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace ledger for %s: %w", l.Day, err)
	}
	return nil
}
