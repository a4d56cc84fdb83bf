package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/monitorchuva/monitorchuva/internal/civil"
	"github.com/monitorchuva/monitorchuva/internal/dedup"
	"github.com/monitorchuva/monitorchuva/internal/ledger"
	"github.com/monitorchuva/monitorchuva/internal/weather"
)

var manaus = weather.City{UF: "AM", Name: "Manaus", Lat: -3.11903, Lon: -60.02173}

type fakeProvider struct {
	name       string
	conditions map[string][]weather.Condition
	err        error
	calls      int
}

func (p *fakeProvider) Name() string {
	return p.name
}

func (p *fakeProvider) Conditions(ctx context.Context, city weather.City) ([]weather.Condition, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.conditions[city.Name], nil
}

type fakeFeed struct {
	alerts []weather.RegionalAlert
	err    error
}

func (f *fakeFeed) Name() string {
	return "inmet"
}

func (f *fakeFeed) Alerts(ctx context.Context) ([]weather.RegionalAlert, error) {
	return f.alerts, f.err
}

type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) Send(ctx context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *recordingSender) Name() string {
	return "recording"
}

func newTestMonitor(t *testing.T, providers []weather.Provider, feed AlertFeed, sender *recordingSender) *Monitor {
	t.Helper()
	dir := t.TempDir()
	return New(Options{
		Cities:    []weather.City{manaus},
		Providers: providers,
		Feed:      feed,
		Sender:    sender,
		Store:     dedup.NewStore(filepath.Join(dir, "alerts-cache.json"), 7),
		Book:      ledger.NewBook(dir),
		Clock:     civil.FixedClock{Instant: time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)},
		Location:  time.UTC,
	})
}

func rainProvider() *fakeProvider {
	return &fakeProvider{
		name: "openweather",
		conditions: map[string][]weather.Condition{
			"Manaus": {{Kind: weather.KindRain, Discriminant: "14:00", Summary: "~12.5 mm/h na próxima hora"}},
		},
	}
}

func TestRunCycle_SendsNewAlertOnce(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, nil, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	// Same condition on a later cycle the same day: suppressed.
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("second RunCycle() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages after second cycle, want still 1", len(sender.sent))
	}

	today := m.Today()
	l, err := m.Ledger().Snapshot(today)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(l.Cities) != 1 || l.Cities[0] != "Manaus" {
		t.Errorf("ledger cities = %v, want [Manaus]", l.Cities)
	}
}

func TestRunCycle_SendFailureLeavesItemUnmarked(t *testing.T) {
	sender := &recordingSender{err: errors.New("telegram down")}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, nil, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}

	today := m.Today()
	key := dedup.Key(weather.KindRain, "Manaus", "14:00")
	if m.Store().WasNotified(key, today) {
		t.Error("failed delivery must not be marked as notified")
	}
	l, err := m.Ledger().Snapshot(today)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(l.Cities) != 0 {
		t.Errorf("ledger cities = %v, want empty after failed delivery", l.Cities)
	}

	// Recovery on the next cycle.
	sender.err = nil
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("second RunCycle() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want 1 after retry", len(sender.sent))
	}
	if !m.Store().WasNotified(key, today) {
		t.Error("successful retry should be marked")
	}
}

func TestRunCycle_ProviderErrorSkipsPlace(t *testing.T) {
	failing := &fakeProvider{name: "openweather", err: errors.New("HTTP 500")}
	working := rainProvider()
	working.name = "tomorrow"
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{failing, working}, nil, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want 1 from the healthy provider", len(sender.sent))
	}
}

func TestRunCycle_RegionalAlerts(t *testing.T) {
	feed := &fakeFeed{alerts: []weather.RegionalAlert{{
		ID:       "INMET-1",
		Event:    "Chuvas Intensas",
		Severity: "Perigo",
		Priority: 3,
		Capitals: []string{"Manaus", "Belém"},
	}}}
	sender := &recordingSender{}
	m := newTestMonitor(t, nil, feed, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}

	// The same provider alert id never repeats within the day.
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("second RunCycle() error = %v", err)
	}
	if len(sender.sent) != 2 {
		t.Errorf("sent %d messages after second cycle, want still 2", len(sender.sent))
	}

	l, err := m.Ledger().Snapshot(m.Today())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(l.Cities) != 2 {
		t.Errorf("ledger cities = %v, want 2", l.Cities)
	}
}

func TestRunCycle_FeedErrorDoesNotAbort(t *testing.T) {
	feed := &fakeFeed{err: errors.New("feed down")}
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, feed, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(sender.sent))
	}
}

func TestRunCycle_ContextCanceled(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, nil, sender)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.RunCycle(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("RunCycle() error = %v, want context.Canceled", err)
	}
}

func TestRunDailySummary(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, nil, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	if err := m.RunDailySummary(context.Background()); err != nil {
		t.Fatalf("RunDailySummary() error = %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want alert + summary", len(sender.sent))
	}

	today := m.Today()
	l, err := m.Ledger().Snapshot(today)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !l.Closed {
		t.Error("ledger should be closed after the summary")
	}
	next, err := m.Ledger().Snapshot(today.AddDays(1))
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if next.Closed || len(next.Cities) != 0 {
		t.Errorf("tomorrow's ledger = %+v, want open and empty", next)
	}
}

func TestRunDailySummary_NoAlerts(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, nil, nil, sender)

	if err := m.RunDailySummary(context.Background()); err != nil {
		t.Fatalf("RunDailySummary() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0] != formatDailySummary(mustSnapshot(t, m)) {
		t.Errorf("summary text = %q", sender.sent[0])
	}
}

func mustSnapshot(t *testing.T, m *Monitor) ledger.DailyLedger {
	t.Helper()
	l, err := m.Ledger().Snapshot(m.Today())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	return l
}

func TestRunDailySummary_Idempotent(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, nil, nil, sender)

	if err := m.RunDailySummary(context.Background()); err != nil {
		t.Fatalf("RunDailySummary() error = %v", err)
	}
	if err := m.RunDailySummary(context.Background()); err != nil {
		t.Fatalf("second RunDailySummary() error = %v", err)
	}
	// Both sends report the identical closed snapshot.
	if sender.sent[0] != sender.sent[1] {
		t.Errorf("summaries differ: %q vs %q", sender.sent[0], sender.sent[1])
	}
}

func TestRunDailySummary_SendFailureIsRetriable(t *testing.T) {
	sender := &recordingSender{err: errors.New("telegram down")}
	m := newTestMonitor(t, nil, nil, sender)

	if err := m.RunDailySummary(context.Background()); err == nil {
		t.Fatal("RunDailySummary() should surface the delivery failure")
	}

	sender.err = nil
	if err := m.RunDailySummary(context.Background()); err != nil {
		t.Fatalf("retried RunDailySummary() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(sender.sent))
	}
}

func TestMonitor_Status(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, nil, nil, sender)

	st := m.Status()
	if st.Running || st.CycleCount != 0 {
		t.Errorf("initial status = %+v", st)
	}
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	st = m.Status()
	if st.CycleCount != 1 {
		t.Errorf("CycleCount = %d, want 1", st.CycleCount)
	}
	if st.LastCycleRun.IsZero() {
		t.Error("LastCycleRun should be set")
	}
}

func TestMessageLog_RecordsSentAlerts(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMonitor(t, []weather.Provider{rainProvider()}, nil, sender)

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle() error = %v", err)
	}
	entries := m.Messages.Recent(10)
	if len(entries) != 1 {
		t.Fatalf("message log has %d entries, want 1", len(entries))
	}
	if entries[0].City != "Manaus" {
		t.Errorf("City = %q", entries[0].City)
	}
	if entries[0].Source != "openweather" {
		t.Errorf("Source = %q", entries[0].Source)
	}
}
