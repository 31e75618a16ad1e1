package view

import (
	"embed"
	"html/template"
	"time"

	"terrarium_dashboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardTemplate is the template name of the main page.
const DashboardTemplate = "dashboard.html"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"stateLabel": models.StateLabel,
	}).ParseFS(templateFS, "templates/*.html"))
}

// StatusView is the read-only device status block.
type StatusView struct {
	Lines     []string
	FetchedAt string
}

// Page is everything the dashboard template renders.
type Page struct {
	Title     string
	Charts    []ChartView
	Actuators []models.Actuator
	Status    *StatusView // nil while loading
	Flash     string
}

// NewPage builds the page model; loaded=false renders the loading placeholder.
func NewPage(charts []models.Chart, actuators []models.Actuator, snap models.StatusSnapshot, loaded bool) Page {
	p := Page{
		Title:     "Terrarium Dashboard",
		Charts:    make([]ChartView, 0, len(charts)),
		Actuators: actuators,
	}
	for _, ch := range charts {
		p.Charts = append(p.Charts, Layout(ch, ChartWidth, ChartHeight))
	}
	if loaded {
		p.Status = &StatusView{
			Lines:     snap.Status.Lines(),
			FetchedAt: snap.FetchedAt.UTC().Format(time.RFC3339),
		}
	}
	return p
}
