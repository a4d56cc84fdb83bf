package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/monitorchuva/monitorchuva/internal/config"
	"github.com/monitorchuva/monitorchuva/internal/redactor"
)

// Transport errors carry the request URL, and the Telegram URL carries
// the bot token in its path.
var redact = redactor.Default()

// TelegramSender posts HTML-formatted messages to a Telegram chat via
// the Bot API sendMessage method.
type TelegramSender struct {
	baseURL string
	token   string
	chatID  string
	client  *resty.Client
}

type telegramRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewTelegramSender(baseURL, token, chatID string, timeout time.Duration) (*TelegramSender, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", config.GetUserAgent())
	return &TelegramSender{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		client:  client,
	}, nil
}

func (t *TelegramSender) Send(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is empty")
	}
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(telegramRequest{
			ChatID:    t.chatID,
			Text:      text,
			ParseMode: "HTML",
		}).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token))
	if err != nil {
		return fmt.Errorf("failed to reach telegram: %w", redact.Error(err))
	}
	var body telegramResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("unexpected telegram response (status %d): %w", resp.StatusCode(), err)
	}
	if !body.OK {
		return fmt.Errorf("telegram rejected message (status %d): %s", resp.StatusCode(), body.Description)
	}
	return nil
}

func (t *TelegramSender) Name() string {
	return "telegram"
}
