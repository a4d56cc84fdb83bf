package weather

import (
	"context"

	"github.com/monitorchuva/monitorchuva/internal/redactor"
)

// Transport errors carry the request URL, which holds the provider API
// key in its query string.
var redact = redactor.Default()

const (
	KindRain  = "rain"
	KindINMET = "inmet"
)

// Condition is one candidate alert reported by a forecast provider for
// a single city. Discriminant makes the condition unique within a day
// (an hour label for forecast rain).
type Condition struct {
	Kind         string
	Discriminant string
	Summary      string
}

// Provider queries a forecast API for one city at a time.
type Provider interface {
	Name() string
	Conditions(ctx context.Context, city City) ([]Condition, error)
}

// RegionalAlert is one official warning from the INMET feed, already
// mapped from IBGE region names to the monitored capitals.
type RegionalAlert struct {
	ID       string
	Event    string
	Severity string
	Priority int
	Capitals []string
}
