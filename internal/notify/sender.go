package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Sender delivers one formatted alert text to an external channel.
type Sender interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// RetrySender wraps a Sender with a fixed number of retries and
// exponential backoff between attempts.
type RetrySender struct {
	sender      Sender
	maxRetries  int
	backoffBase time.Duration
}

func NewRetrySender(sender Sender, maxRetries int, backoffBase time.Duration) *RetrySender {
	return &RetrySender{
		sender:      sender,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

func (rs *RetrySender) Send(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is empty")
	}
	var lastErr error
	for attempt := 0; attempt <= rs.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := rs.backoffBase * time.Duration(1<<uint(attempt-1))
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		err := rs.sender.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", rs.maxRetries+1, lastErr)
}

func (rs *RetrySender) Name() string {
	return rs.sender.Name()
}

// PacedSender spaces consecutive deliveries with a token bucket so a
// burst of alerts does not hammer the channel's API.
type PacedSender struct {
	sender  Sender
	limiter *rate.Limiter
}

func NewPacedSender(sender Sender, perMinute int) *PacedSender {
	if perMinute <= 0 {
		perMinute = 12
	}
	return &PacedSender{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (ps *PacedSender) Send(ctx context.Context, text string) error {
	if err := ps.limiter.Wait(ctx); err != nil {
		return err
	}
	return ps.sender.Send(ctx, text)
}

func (ps *PacedSender) Name() string {
	return ps.sender.Name()
}
