package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/monitorchuva/monitorchuva/internal/logger"
)

// LogSender writes alert texts to the log instead of an external
// channel. Used when no Telegram credentials are configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, text string) error {
	logger.Info("Alert (log sender)", zap.String("text", text))
	return nil
}

func (LogSender) Name() string {
	return "log"
}
