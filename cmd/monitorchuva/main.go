package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monitorchuva/monitorchuva/internal/civil"
	"github.com/monitorchuva/monitorchuva/internal/config"
	"github.com/monitorchuva/monitorchuva/internal/dedup"
	"github.com/monitorchuva/monitorchuva/internal/ledger"
	"github.com/monitorchuva/monitorchuva/internal/logger"
	"github.com/monitorchuva/monitorchuva/internal/monitor"
	"github.com/monitorchuva/monitorchuva/internal/notify"
	"github.com/monitorchuva/monitorchuva/internal/server"
	"github.com/monitorchuva/monitorchuva/internal/validation"
	"github.com/monitorchuva/monitorchuva/internal/weather"
)

var (
	logLevel     string
	dataDir      string
	interval     time.Duration
	runOnce      bool
	runSummary   bool
	enableServer bool

	exitFunc func(int)
)

func init() {
	exitFunc = os.Exit
}

func main() {
	if err := godotenv.Load(); err == nil {
		config.Reload()
	}

	var rootCmd = &cobra.Command{
		Use:          "monitorchuva",
		Short:        "Weather alert monitor for Brazilian state capitals",
		Long:         `monitorchuva polls weather providers and the INMET warning feed for all 27 Brazilian state capitals, and delivers deduplicated heavy-rain alerts via Telegram.`,
		Args:         cobra.NoArgs,
		RunE:         runMonitor,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Set log level (debug, info, warn, error, fatal). Overrides MONITORCHUVA_LOG_LEVEL environment variable")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for the dedup cache and daily ledgers (default: data)")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval between cycles (e.g., 30m, 2h)")
	rootCmd.Flags().BoolVar(&runOnce, "once", false, "Run a single polling cycle and exit")
	rootCmd.Flags().BoolVar(&runSummary, "summary", false, "Send the daily summary, roll the ledger over, and exit")
	rootCmd.Flags().BoolVar(&enableServer, "serve", true, "Enable the HTTP dashboard and metrics server")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			logger.SetLevel(logLevel)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", zap.Error(err))
		exitFunc(1)
	}
	defer logger.Sync()
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if dataDir != "" {
		config.DataDir = dataDir
	}
	if interval > 0 {
		config.MonitorInterval = interval
	}

	if err := validation.ValidateBotToken(config.TelegramBotToken); err != nil {
		return fmt.Errorf("invalid TELEGRAM_BOT_TOKEN: %w", err)
	}
	if err := validation.ValidateChatID(config.TelegramChatID); err != nil {
		return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}
	if err := validation.ValidateRainThreshold(config.RainThresholdMM); err != nil {
		return fmt.Errorf("invalid rain threshold: %w", err)
	}
	if err := validation.ValidateSummaryHour(config.DailySummaryHour); err != nil {
		return fmt.Errorf("invalid summary hour: %w", err)
	}
	if err := validation.ValidateRetentionDays(config.RetentionDays); err != nil {
		return fmt.Errorf("invalid retention: %w", err)
	}
	if err := validation.ValidateMonitorInterval(config.MonitorInterval); err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if err := validation.ValidateTimezone(config.CivilTimezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	loc, err := time.LoadLocation(config.CivilTimezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.CivilTimezone, err)
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store := dedup.NewStore(filepath.Join(config.DataDir, "alerts-cache.json"), config.RetentionDays)
	book := ledger.NewBook(config.DataDir)

	mon := monitor.New(monitor.Options{
		Cities:         weather.Capitals,
		Providers:      buildProviders(loc),
		Feed:           weather.NewINMETClient(config.INMETFeedURL, config.HTTPTimeout),
		Sender:         buildSender(),
		Store:          store,
		Book:           book,
		Location:       loc,
		Delay:          config.ProviderDelay,
		MessageLogSize: config.DefaultMessageLogSize,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if runOnce {
		return mon.RunCycle(ctx)
	}
	if runSummary {
		return mon.RunDailySummary(ctx)
	}

	if enableServer {
		srv := server.New(mon)
		srv.Start()
		defer srv.Shutdown()
	}

	return runLoop(ctx, mon, loc)
}

func buildProviders(loc *time.Location) []weather.Provider {
	var providers []weather.Provider
	if config.OpenWeatherKey != "" {
		providers = append(providers, weather.NewOpenWeatherClient(
			config.OpenWeatherBaseURL, config.OpenWeatherKey,
			config.RainThresholdMM, loc, config.HTTPTimeout))
	}
	if config.TomorrowKey != "" {
		providers = append(providers, weather.NewTomorrowClient(
			config.TomorrowBaseURL, config.TomorrowKey,
			config.RainThresholdMM, loc, config.HTTPTimeout))
	}
	if len(providers) == 0 {
		logger.Warn("No weather provider API keys configured, relying on the INMET feed only")
	}
	return providers
}

func buildSender() notify.Sender {
	if config.TelegramBotToken == "" || config.TelegramChatID == "" {
		logger.Warn("Telegram credentials not configured, alerts will only be logged")
		return notify.LogSender{}
	}
	telegram, err := notify.NewTelegramSender(
		config.TelegramBaseURL, config.TelegramBotToken,
		config.TelegramChatID, config.HTTPTimeout)
	if err != nil {
		logger.Warn("Failed to create Telegram sender, falling back to log", zap.Error(err))
		return notify.LogSender{}
	}
	retried := notify.NewRetrySender(telegram, config.SendMaxRetries, config.SendRetryBackoff)
	return notify.NewPacedSender(retried, config.SendRatePerMin)
}

func runLoop(ctx context.Context, mon *monitor.Monitor, loc *time.Location) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("Monitor started",
		zap.Duration("interval", config.MonitorInterval),
		zap.Int("summary_hour", config.DailySummaryHour),
		zap.String("timezone", config.CivilTimezone),
		zap.Int("cities", len(weather.Capitals)))

	if err := mon.RunCycle(ctx); err != nil {
		logger.Warn("Initial cycle failed", zap.Error(err))
	}

	cycleTicker := time.NewTicker(config.MonitorInterval)
	defer cycleTicker.Stop()
	// Checked every minute so the summary fires within the first
	// minute of the configured hour.
	summaryTicker := time.NewTicker(time.Minute)
	defer summaryTicker.Stop()

	var lastSummaryDay civil.Date

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigChan:
			logger.Info("Shutting down", zap.String("signal", sig.String()))
			return nil
		case <-cycleTicker.C:
			if err := mon.RunCycle(ctx); err != nil && err != monitor.ErrCycleInProgress {
				logger.Warn("Cycle failed", zap.Error(err))
			}
		case <-summaryTicker.C:
			now := time.Now().In(loc)
			today := civil.DateOf(now, loc)
			if now.Hour() != config.DailySummaryHour || today == lastSummaryDay {
				continue
			}
			if err := mon.RunDailySummary(ctx); err != nil {
				logger.Warn("Daily summary failed", zap.Error(err))
				continue
			}
			lastSummaryDay = today
		}
	}
}
