package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/monitorchuva/monitorchuva/internal/config"
)

// OpenWeatherClient reads hourly forecasts from the OneCall API and
// reports a rain condition when the next hour's precipitation crosses
// the threshold, matching the original heavy-rain rule.
type OpenWeatherClient struct {
	baseURL     string
	apiKey      string
	thresholdMM float64
	loc         *time.Location
	client      *resty.Client
}

type oneCallResponse struct {
	Hourly []oneCallHour `json:"hourly"`
}

type oneCallHour struct {
	Dt   int64 `json:"dt"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func NewOpenWeatherClient(baseURL, apiKey string, thresholdMM float64, loc *time.Location, timeout time.Duration) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		thresholdMM: thresholdMM,
		loc:         loc,
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("User-Agent", config.GetUserAgent()),
	}
}

func (o *OpenWeatherClient) Name() string {
	return "openweather"
}

func (o *OpenWeatherClient) Conditions(ctx context.Context, city City) ([]Condition, error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%f", city.Lat),
			"lon":   fmt.Sprintf("%f", city.Lon),
			"appid": o.apiKey,
			"units": "metric",
			"lang":  "pt_br",
		}).
		Get(o.baseURL + "/onecall")
	if err != nil {
		return nil, fmt.Errorf("onecall request for %s failed: %w", city.Name, redact.Error(err))
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("onecall for %s returned HTTP %d", city.Name, resp.StatusCode())
	}
	var data oneCallResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("onecall response for %s unparseable: %w", city.Name, err)
	}
	if len(data.Hourly) == 0 {
		return nil, nil
	}

	next := data.Hourly[0]
	mm := next.Rain.OneHour
	if mm < o.thresholdMM {
		return nil, nil
	}
	hour := time.Unix(next.Dt, 0).In(o.loc).Format("15:00")
	return []Condition{{
		Kind:         KindRain,
		Discriminant: hour,
		Summary:      fmt.Sprintf("~%.1f mm/h na próxima hora", mm),
	}}, nil
}
