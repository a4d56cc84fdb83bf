package redactor

import (
	"regexp"
)

// Rule describes one credential pattern removed from outbound log text.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Redactor strips API credentials from strings before they reach the
// log. Transport errors embed the full request URL, which carries the
// Telegram bot token in its path and provider keys in the query string.
type Redactor struct {
	rules []Rule
}

// Default returns a Redactor covering the credentials this service
// handles.
func Default() *Redactor {
	return &Redactor{rules: defaultRules()}
}

// New creates a Redactor with the provided rules.
func New(rules []Rule) *Redactor {
	return &Redactor{rules: rules}
}

// Redact returns s with every rule applied.
func (r *Redactor) Redact(s string) string {
	for _, rule := range r.rules {
		s = rule.Pattern.ReplaceAllString(s, rule.Replace)
	}
	return s
}

// Error wraps err with a redacted message while keeping the original
// chain intact for errors.Is and errors.As.
func (r *Redactor) Error(err error) error {
	if err == nil {
		return nil
	}
	return &redactedError{msg: r.Redact(err.Error()), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string {
	return e.msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:    "telegram_bot_token",
			Pattern: regexp.MustCompile(`bot\d+:[A-Za-z0-9_\-]+`),
			Replace: "bot***",
		},
		{
			Name:    "api_key_param",
			Pattern: regexp.MustCompile(`(?i)(appid|apikey|api_key|key|token)=[^\s&"]+`),
			Replace: "${1}=***",
		},
		{
			Name:    "bearer_token",
			Pattern: regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._~+/\-]+=*`),
			Replace: "Bearer ***",
		},
	}
}
