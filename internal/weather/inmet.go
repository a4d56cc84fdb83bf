package weather

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/monitorchuva/monitorchuva/internal/config"
)

// INMETClient fetches the official warnings RSS feed and maps each
// warning's region list to the monitored capitals. The feed embeds an
// HTML table inside each item's CDATA description, so extraction is
// regex scraping rather than a full XML parse.
type INMETClient struct {
	feedURL string
	client  *resty.Client
}

var (
	itemGuidRe = regexp.MustCompile(`<guid>(.*?)</guid>`)
	itemDescRe = regexp.MustCompile(`(?s)<description><!\[CDATA\[(.*?)\]\]></description>`)
	eventRe    = regexp.MustCompile(`<td>Evento</td><td>(.*?)</td>`)
	severityRe = regexp.MustCompile(`<td>Severidade</td><td>(.*?)</td>`)
	areaRe     = regexp.MustCompile(`<td>Área</td><td>Aviso para as Áreas: (.*?)</td>`)
)

func NewINMETClient(feedURL string, timeout time.Duration) *INMETClient {
	return &INMETClient{
		feedURL: feedURL,
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("User-Agent", config.GetUserAgent()),
	}
}

func (c *INMETClient) Name() string {
	return "inmet"
}

func (c *INMETClient) Alerts(ctx context.Context) ([]RegionalAlert, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("inmet feed request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("inmet feed returned HTTP %d", resp.StatusCode())
	}
	return ParseFeed(string(resp.Body())), nil
}

// ParseFeed extracts warnings from the raw RSS body. Items without a
// description, area list, or any mapped capital are skipped.
func ParseFeed(xml string) []RegionalAlert {
	var alerts []RegionalAlert
	items := strings.Split(xml, "<item>")
	for i := 1; i < len(items); i++ {
		item := items[i]

		descMatch := itemDescRe.FindStringSubmatch(item)
		if descMatch == nil {
			continue
		}
		desc := descMatch[1]

		areaMatch := areaRe.FindStringSubmatch(desc)
		if areaMatch == nil {
			continue
		}

		capitals := capitalsForAreas(areaMatch[1])
		if len(capitals) == 0 {
			continue
		}

		id := fmt.Sprintf("alert_%d", i)
		if m := itemGuidRe.FindStringSubmatch(item); m != nil {
			id = m[1]
		}
		event := "Alerta"
		if m := eventRe.FindStringSubmatch(desc); m != nil {
			event = m[1]
		}
		severity := "Desconhecida"
		if m := severityRe.FindStringSubmatch(desc); m != nil {
			severity = m[1]
		}

		alerts = append(alerts, RegionalAlert{
			ID:       id,
			Event:    event,
			Severity: severity,
			Priority: SeverityPriority(severity),
			Capitals: capitals,
		})
	}
	return alerts
}

func capitalsForAreas(areaList string) []string {
	seen := make(map[string]bool)
	var capitals []string
	for _, area := range strings.Split(areaList, ",") {
		for _, capital := range CapitalsForRegion(area) {
			if !seen[capital] {
				seen[capital] = true
				capitals = append(capitals, capital)
			}
		}
	}
	return capitals
}

// SeverityPriority orders INMET severity labels; higher is worse.
func SeverityPriority(severity string) int {
	switch normalizeRegion(severity) {
	case "grande perigo":
		return 4
	case "perigo":
		return 3
	case "perigo potencial":
		return 2
	default:
		return 1
	}
}
