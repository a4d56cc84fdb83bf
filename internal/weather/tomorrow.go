package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/monitorchuva/monitorchuva/internal/config"
)

// lookaheadHours bounds how far into the hourly timeline rain is
// reported; beyond that the forecast is too uncertain to alert on.
const lookaheadHours = 6

// TomorrowClient reads the Tomorrow.io hourly forecast timeline and
// reports one rain condition per qualifying hour bucket.
type TomorrowClient struct {
	baseURL     string
	apiKey      string
	thresholdMM float64
	loc         *time.Location
	client      *resty.Client
}

type tomorrowResponse struct {
	Timelines struct {
		Hourly []tomorrowHour `json:"hourly"`
	} `json:"timelines"`
}

type tomorrowHour struct {
	Time   time.Time `json:"time"`
	Values struct {
		PrecipitationIntensity float64 `json:"precipitationIntensity"`
	} `json:"values"`
}

func NewTomorrowClient(baseURL, apiKey string, thresholdMM float64, loc *time.Location, timeout time.Duration) *TomorrowClient {
	return &TomorrowClient{
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

func (t *TomorrowClient) Name() string {
	return "tomorrow"
}

func (t *TomorrowClient) Conditions(ctx context.Context, city City) ([]Condition, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"location":  fmt.Sprintf("%f,%f", city.Lat, city.Lon),
			"timesteps": "1h",
			"apikey":    t.apiKey,
		}).
		Get(t.baseURL + "/weather/forecast")
	if err != nil {
		return nil, fmt.Errorf("tomorrow.io request for %s failed: %w", city.Name, redact.Error(err))
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tomorrow.io for %s returned HTTP %d", city.Name, resp.StatusCode())
	}
	var data tomorrowResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("tomorrow.io response for %s unparseable: %w", city.Name, err)
	}

	hours := data.Timelines.Hourly
	if len(hours) > lookaheadHours {
		hours = hours[:lookaheadHours]
	}
	var conditions []Condition
	for _, h := range hours {
		mm := h.Values.PrecipitationIntensity
		if mm < t.thresholdMM {
			continue
		}
		hour := h.Time.In(t.loc).Format("15:00")
		conditions = append(conditions, Condition{
			Kind:         KindRain,
			Discriminant: hour,
			Summary:      fmt.Sprintf("~%.1f mm/h às %s", mm, hour),
		})
	}
	return conditions, nil
}
