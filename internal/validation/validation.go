package validation

import (
	"fmt"
	"regexp"
	"time"
)

var (
	botTokenRegex = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]{10,}$`)
	chatIDRegex   = regexp.MustCompile(`^-?\d+$|^@[A-Za-z0-9_]{5,}$`)
	maxTokenLen   = 128
)

// ValidateBotToken accepts the Telegram "<bot id>:<secret>" shape. An
// empty token is allowed: the monitor then falls back to the log sender.
func ValidateBotToken(token string) error {
	if token == "" {
		return nil
	}
	if len(token) > maxTokenLen {
		return fmt.Errorf("bot token exceeds maximum length of %d characters", maxTokenLen)
	}
	if !botTokenRegex.MatchString(token) {
		return fmt.Errorf("bot token must match the '<id>:<secret>' Telegram format")
	}
	return nil
}

// ValidateChatID accepts a numeric chat id (possibly negative for
// groups) or an @channelname.
func ValidateChatID(chatID string) error {
	if chatID == "" {
		return nil
	}
	if !chatIDRegex.MatchString(chatID) {
		return fmt.Errorf("chat id must be numeric or an @channelname")
	}
	return nil
}

func ValidateRainThreshold(value float64) error {
	if value <= 0 {
		return fmt.Errorf("rain threshold must be positive")
	}
	if value > 500 {
		return fmt.Errorf("rain threshold of %.1f mm/h is not plausible", value)
	}
	return nil
}

func ValidateSummaryHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("summary hour must be between 0 and 23")
	}
	return nil
}

func ValidateRetentionDays(days int) error {
	if days < 1 {
		return fmt.Errorf("retention must be at least 1 day")
	}
	if days > 365 {
		return fmt.Errorf("retention cannot exceed 365 days")
	}
	return nil
}

func ValidateMonitorInterval(interval time.Duration) error {
	if interval < time.Minute {
		return fmt.Errorf("monitor interval must be at least 1 minute")
	}
	if interval > 24*time.Hour {
		return fmt.Errorf("monitor interval cannot exceed 24 hours")
	}
	return nil
}

// ValidateTimezone checks that name resolves against the tz database.
func ValidateTimezone(name string) error {
	if name == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q", name)
	}
	return nil
}
