package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitorchuva_cycles_total",
		Help: "Completed polling cycles.",
	})
	alertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitorchuva_alerts_sent_total",
		Help: "Alerts delivered to the notifier, by kind.",
	}, []string{"kind"})
	duplicatesSuppressedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitorchuva_duplicates_suppressed_total",
		Help: "Candidate alerts skipped because they were already sent today.",
	})
	providerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitorchuva_provider_errors_total",
		Help: "Provider query failures, by provider.",
	}, []string{"provider"})
	sendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitorchuva_send_failures_total",
		Help: "Notifier delivery failures.",
	})
	dailySummariesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitorchuva_daily_summaries_total",
		Help: "Daily summaries emitted.",
	})
	lastCycleTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "monitorchuva_last_cycle_timestamp_seconds",
		Help: "Unix time of the last completed cycle.",
	})
)
