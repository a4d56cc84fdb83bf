package server

import (
	"html/template"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/monitorchuva/monitorchuva/internal/logger"
	"github.com/monitorchuva/monitorchuva/internal/monitor"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Monitorchuva</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #f4f6f8; color: #222; }
h1 { margin-bottom: 0.2rem; }
.card { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; margin: 1rem 0; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
table { border-collapse: collapse; width: 100%; }
td, th { text-align: left; padding: 0.3rem 0.8rem 0.3rem 0; border-bottom: 1px solid #eee; }
.muted { color: #888; }
</style>
</head>
<body>
<h1>🌧️ Monitorchuva</h1>
<p class="muted">Uptime: {{.Uptime}}</p>

<div class="card">
<h2>Status</h2>
<table>
<tr><td>Ciclo em andamento</td><td>{{if .Status.Running}}sim{{else}}não{{end}}</td></tr>
<tr><td>Último ciclo</td><td>{{.LastCycle}}</td></tr>
<tr><td>Último resumo</td><td>{{.LastSummary}}</td></tr>
<tr><td>Ciclos executados</td><td>{{.Status.CycleCount}}</td></tr>
<tr><td>Resumos enviados</td><td>{{.Status.SummaryCount}}</td></tr>
</table>
</div>

<div class="card">
<h2>Capitais com alerta hoje ({{.Today}})</h2>
{{if .Cities}}<ul>{{range .Cities}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">Nenhuma capital com alerta até agora.</p>{{end}}
</div>

<div class="card">
<h2>Alertas registrados ({{len .Keys}})</h2>
{{if .Keys}}<table><tr><th>Chave</th><th>Último dia</th></tr>
{{range .Keys}}<tr><td>{{.Key}}</td><td>{{.Day}}</td></tr>{{end}}
</table>{{else}}<p class="muted">Nenhum alerta registrado.</p>{{end}}
</div>

<div class="card">
<h2>Mensagens recentes</h2>
{{if .Messages}}<table><tr><th>Quando</th><th>Fonte</th><th>Cidade</th><th>Mensagem</th></tr>
{{range .Messages}}<tr><td>{{.Timestamp.Format "02/01 15:04"}}</td><td>{{.Source}}</td><td>{{.City}}</td><td>{{.Message}}</td></tr>{{end}}
</table>{{else}}<p class="muted">Nenhuma mensagem ainda.</p>{{end}}
</div>
</body>
</html>
`))

type dedupRow struct {
	Key string
	Day string
}

type dashboardData struct {
	Status      monitor.Status
	Uptime      string
	LastCycle   string
	LastSummary string
	Today       string
	Cities      []string
	Keys        []dedupRow
	Messages    []monitor.MessageLogEntry
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}

	today := s.mon.Today()
	snap, err := s.mon.Ledger().Snapshot(today)
	if err != nil {
		logger.Warn("Dashboard ledger read failed", zap.Error(err))
	}

	rows := make([]dedupRow, 0)
	for key, entry := range s.mon.Store().Entries() {
		rows = append(rows, dedupRow{Key: key, Day: entry.LastSeenDay.String()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	data := dashboardData{
		Status:   s.mon.Status(),
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Today:    today.String(),
		Cities:   snap.Cities,
		Keys:     rows,
		Messages: s.mon.Messages.Recent(20),
	}
	data.LastCycle = formatRunTime(data.Status.LastCycleRun)
	data.LastSummary = formatRunTime(data.Status.LastSummaryRun)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		logger.Error("Dashboard render failed", zap.Error(err))
	}
}
