package monitor

import (
	"fmt"
	"strings"

	"github.com/monitorchuva/monitorchuva/internal/ledger"
	"github.com/monitorchuva/monitorchuva/internal/weather"
)

func formatRainAlert(city weather.City, cond weather.Condition) string {
	return fmt.Sprintf("🌧️ Chuva forte em <b>%s</b>\n%s",
		strings.ToUpper(city.Name), cond.Summary)
}

func formatRegionalAlert(capital string, alert weather.RegionalAlert) string {
	icon := "🟠"
	if alert.Priority >= 3 {
		icon = "🔴"
	}
	return fmt.Sprintf("%s Alerta INMET para <b>%s</b>\nEvento: %s\nSeveridade: %s",
		icon, strings.ToUpper(capital), alert.Event, alert.Severity)
}

func formatDailySummary(l ledger.DailyLedger) string {
	if len(l.Cities) == 0 {
		return fmt.Sprintf("📋 <b>Resumo diário</b> (%s)\nNenhuma capital teve alertas hoje. ☀️", l.Day)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Resumo diário</b> (%s)\n", l.Day)
	fmt.Fprintf(&b, "Capitais com alertas hoje: %d\n", len(l.Cities))
	for _, city := range l.Cities {
		fmt.Fprintf(&b, "• %s\n", city)
	}
	return strings.TrimRight(b.String(), "\n")
}
