package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/monitorchuva/monitorchuva/internal/civil"
	"github.com/monitorchuva/monitorchuva/internal/dedup"
	"github.com/monitorchuva/monitorchuva/internal/ledger"
	"github.com/monitorchuva/monitorchuva/internal/logger"
	"github.com/monitorchuva/monitorchuva/internal/notify"
	"github.com/monitorchuva/monitorchuva/internal/weather"
)

// ErrCycleInProgress is returned when a cycle or summary is requested
// while another run is still active.
var ErrCycleInProgress = errors.New("a run is already in progress")

// AlertFeed is the feed-wide provider shape (INMET warnings).
type AlertFeed interface {
	Name() string
	Alerts(ctx context.Context) ([]weather.RegionalAlert, error)
}

// Monitor drives one polling cycle: query providers city by city,
// deduplicate, deliver, and record. All work is strictly sequential.
type Monitor struct {
	cities    []weather.City
	providers []weather.Provider
	feed      AlertFeed
	sender    notify.Sender
	store     *dedup.Store
	book      *ledger.Book
	clock     civil.Clock
	loc       *time.Location
	delay     time.Duration

	Messages *MessageLog

	mu             sync.Mutex
	running        bool
	lastCycleRun   time.Time
	lastSummaryRun time.Time
	cycleCount     int
	summaryCount   int
}

type Options struct {
	Cities    []weather.City
	Providers []weather.Provider
	Feed      AlertFeed
	Sender    notify.Sender
	Store     *dedup.Store
	Book      *ledger.Book
	Clock     civil.Clock
	Location  *time.Location
	// Delay between consecutive city queries, respecting provider
	// rate limits.
	Delay          time.Duration
	MessageLogSize int
}

func New(opts Options) *Monitor {
	clock := opts.Clock
	if clock == nil {
		clock = civil.SystemClock{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Monitor{
		cities:    opts.Cities,
		providers: opts.Providers,
		feed:      opts.Feed,
		sender:    opts.Sender,
		store:     opts.Store,
		book:      opts.Book,
		clock:     clock,
		loc:       loc,
		delay:     opts.Delay,
		Messages:  NewMessageLog(opts.MessageLogSize),
	}
}

// Status is a point-in-time view for the health endpoint.
type Status struct {
	Running        bool      `json:"running"`
	LastCycleRun   time.Time `json:"lastCycleRun"`
	LastSummaryRun time.Time `json:"lastSummaryRun"`
	CycleCount     int       `json:"cycleCount"`
	SummaryCount   int       `json:"summaryCount"`
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Running:        m.running,
		LastCycleRun:   m.lastCycleRun,
		LastSummaryRun: m.lastSummaryRun,
		CycleCount:     m.cycleCount,
		SummaryCount:   m.summaryCount,
	}
}

func (m *Monitor) Store() *dedup.Store {
	return m.store
}

func (m *Monitor) Ledger() *ledger.Book {
	return m.book
}

func (m *Monitor) Today() civil.Date {
	return civil.DateOf(m.clock.Now(), m.loc)
}

func (m *Monitor) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return false
	}
	m.running = true
	return true
}

func (m *Monitor) end() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// RunCycle executes one full polling cycle. Transient provider errors
// skip the affected place; the cycle itself only aborts when the
// context is canceled.
func (m *Monitor) RunCycle(ctx context.Context) error {
	if !m.begin() {
		return ErrCycleInProgress
	}
	defer m.end()

	today := m.Today()
	logger.Info("Cycle started", zap.String("day", today.String()))

	for _, provider := range m.providers {
		for _, city := range m.cities {
			if err := ctx.Err(); err != nil {
				return err
			}
			conditions, err := provider.Conditions(ctx, city)
			if err != nil {
				providerErrorsTotal.WithLabelValues(provider.Name()).Inc()
				logger.Warn("Provider query failed, skipping place",
					zap.String("provider", provider.Name()),
					zap.String("city", city.Name),
					zap.Error(err))
			}
			for _, cond := range conditions {
				m.handleCandidate(ctx, today, cond.Kind, city.Name, cond.Discriminant,
					formatRainAlert(city, cond), provider.Name(), "Chuva Forte")
			}
			if err := m.pause(ctx); err != nil {
				return err
			}
		}
	}

	if m.feed != nil {
		alerts, err := m.feed.Alerts(ctx)
		if err != nil {
			providerErrorsTotal.WithLabelValues(m.feed.Name()).Inc()
			logger.Warn("Alert feed query failed, skipping",
				zap.String("provider", m.feed.Name()), zap.Error(err))
		}
		for _, alert := range alerts {
			for _, capital := range alert.Capitals {
				if err := ctx.Err(); err != nil {
					return err
				}
				m.handleCandidate(ctx, today, weather.KindINMET, capital, alert.ID,
					formatRegionalAlert(capital, alert), m.feed.Name(), alert.Severity)
			}
		}
	}

	m.mu.Lock()
	m.lastCycleRun = m.clock.Now()
	m.cycleCount++
	count := m.cycleCount
	m.mu.Unlock()

	cyclesTotal.Inc()
	lastCycleTimestamp.Set(float64(m.clock.Now().Unix()))
	logger.Info("Cycle finished", zap.Int("cycle", count))
	return nil
}

// handleCandidate runs the per-item sequence: dedup check, send, mark,
// record, strictly in that order. The item is marked only after delivery
// succeeded, so a failed send is retried on the next cycle.
func (m *Monitor) handleCandidate(ctx context.Context, today civil.Date, kind, city, discriminant, text, source, severity string) {
	key := dedup.Key(kind, city, discriminant)
	if m.store.WasNotified(key, today) {
		duplicatesSuppressedTotal.Inc()
		logger.Debug("Duplicate suppressed", zap.String("key", key))
		return
	}
	if err := m.sender.Send(ctx, text); err != nil {
		sendFailuresTotal.Inc()
		logger.Error("Alert delivery failed, will retry next cycle",
			zap.String("key", key), zap.Error(err))
		return
	}
	alertsSentTotal.WithLabelValues(kind).Inc()
	m.Messages.Add(MessageLogEntry{
		Timestamp: m.clock.Now(),
		Source:    source,
		City:      city,
		Severity:  severity,
		Message:   text,
	})
	if err := m.store.MarkNotified(key, today); err != nil {
		// The alert was delivered; a persist failure only risks one
		// duplicate after a restart.
		logger.Error("Failed to persist dedup entry",
			zap.String("key", key), zap.Error(err))
	}
	if err := m.book.RecordCity(city, today); err != nil {
		logger.Error("Failed to record city in daily ledger",
			zap.String("city", city), zap.Error(err))
	}
}

// RunDailySummary closes today's ledger, sends the summary message and
// pre-creates tomorrow's ledger. Safe to retry: the close is idempotent.
func (m *Monitor) RunDailySummary(ctx context.Context) error {
	if !m.begin() {
		return ErrCycleInProgress
	}
	defer m.end()

	today := m.Today()
	snapshot, err := m.book.CloseAndRoll(today)
	if err != nil {
		return err
	}
	text := formatDailySummary(snapshot)
	if err := m.sender.Send(ctx, text); err != nil {
		sendFailuresTotal.Inc()
		return err
	}

	m.mu.Lock()
	m.lastSummaryRun = m.clock.Now()
	m.summaryCount++
	m.mu.Unlock()

	dailySummariesTotal.Inc()
	logger.Info("Daily summary sent",
		zap.String("day", today.String()),
		zap.Int("cities", len(snapshot.Cities)))
	return nil
}

func (m *Monitor) pause(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}
