package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultLogLevel           = "info"
	DefaultDataDir            = "data"
	DefaultCivilTimezone      = "America/Sao_Paulo"
	DefaultRetentionDays      = 7
	DefaultRainThresholdMM    = 10.0
	DefaultMonitorInterval    = 2 * time.Hour
	DefaultDailySummaryHour   = 22
	DefaultProviderDelay      = 500 * time.Millisecond
	DefaultHTTPTimeout        = 10 * time.Second
	DefaultSendMaxRetries     = 3
	DefaultSendRetryBackoff   = 1 * time.Second
	DefaultSendRatePerMinute  = 12
	DefaultServerPort         = 3000
	DefaultServerHost         = "127.0.0.1"
	DefaultServerReadTimeout  = 5 * time.Second
	DefaultServerWriteTimeout = 10 * time.Second
	DefaultMessageLogSize     = 100
	DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/3.0"
	DefaultTomorrowBaseURL    = "https://api.tomorrow.io/v4"
	DefaultINMETFeedURL       = "https://apiprevmet3.inmet.gov.br/avisos/rss"
	DefaultTelegramBaseURL    = "https://api.telegram.org"
	DefaultVersion            = "v0.3.0"
)

var (
	TelegramBotToken   string
	TelegramChatID     string
	TelegramBaseURL    string
	OpenWeatherKey     string
	OpenWeatherBaseURL string
	TomorrowKey        string
	TomorrowBaseURL    string
	INMETFeedURL       string

	DataDir          string
	CivilTimezone    string
	RetentionDays    int
	RainThresholdMM  float64
	MonitorInterval  time.Duration
	DailySummaryHour int
	ProviderDelay    time.Duration
	HTTPTimeout      time.Duration
	SendMaxRetries   int
	SendRetryBackoff time.Duration
	SendRatePerMin   int
	Version          string
)

func init() {
	Reload()
}

// Reload re-reads all environment-derived settings. The entrypoint calls
// it again after loading a .env file, which happens after this package
// has already initialized.
func Reload() {
	TelegramBotToken = getEnvOrDefault("TELEGRAM_BOT_TOKEN", "")
	TelegramChatID = getEnvOrDefault("TELEGRAM_CHAT_ID", "")
	TelegramBaseURL = getEnvOrDefault("MONITORCHUVA_TELEGRAM_BASE_URL", DefaultTelegramBaseURL)
	OpenWeatherKey = getEnvOrDefault("OPENWEATHER_KEY", "")
	OpenWeatherBaseURL = getEnvOrDefault("MONITORCHUVA_OPENWEATHER_BASE_URL", DefaultOpenWeatherBaseURL)
	TomorrowKey = getEnvOrDefault("TOMORROW_KEY", "")
	TomorrowBaseURL = getEnvOrDefault("MONITORCHUVA_TOMORROW_BASE_URL", DefaultTomorrowBaseURL)
	INMETFeedURL = getEnvOrDefault("MONITORCHUVA_INMET_FEED_URL", DefaultINMETFeedURL)

	DataDir = getEnvOrDefault("MONITORCHUVA_DATA_DIR", DefaultDataDir)
	CivilTimezone = getEnvOrDefault("MONITORCHUVA_TIMEZONE", DefaultCivilTimezone)
	RetentionDays = getIntEnvOrDefault("MONITORCHUVA_RETENTION_DAYS", DefaultRetentionDays)
	RainThresholdMM = getFloatEnvOrDefault("MONITORCHUVA_RAIN_THRESHOLD_MM", DefaultRainThresholdMM)
	MonitorInterval = getDurationEnvOrDefault("MONITORCHUVA_MONITOR_INTERVAL", DefaultMonitorInterval)
	DailySummaryHour = getIntEnvOrDefault("MONITORCHUVA_DAILY_SUMMARY_HOUR", DefaultDailySummaryHour)
	ProviderDelay = getDurationEnvOrDefault("MONITORCHUVA_PROVIDER_DELAY", DefaultProviderDelay)
	HTTPTimeout = getDurationEnvOrDefault("MONITORCHUVA_HTTP_TIMEOUT", DefaultHTTPTimeout)
	SendMaxRetries = getIntEnvOrDefault("MONITORCHUVA_SEND_MAX_RETRIES", DefaultSendMaxRetries)
	SendRetryBackoff = getDurationEnvOrDefault("MONITORCHUVA_SEND_RETRY_BACKOFF", DefaultSendRetryBackoff)
	SendRatePerMin = getIntEnvOrDefault("MONITORCHUVA_SEND_RATE_PER_MINUTE", DefaultSendRatePerMinute)
	Version = getEnvOrDefault("MONITORCHUVA_VERSION", DefaultVersion)
}

func GetLogLevel() string {
	return getEnvOrDefault("MONITORCHUVA_LOG_LEVEL", DefaultLogLevel)
}

func GetServerAddress() string {
	addr := os.Getenv("MONITORCHUVA_SERVER_ADDR")
	if addr == "" {
		port := getIntEnvOrDefault("PORT", DefaultServerPort)
		addr = DefaultServerHost + ":" + strconv.Itoa(port)
	}
	return addr
}

func AllowNonLoopbackServer() bool {
	return os.Getenv("MONITORCHUVA_SERVER_ALLOW_ANY_ADDR") == "1"
}

func GetUserAgent() string {
	return "Monitorchuva/" + Version
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= 0 {
			return i
		}
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
