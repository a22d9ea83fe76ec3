package views

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/gustavopmaia/gs-andre/internal/extremes"
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

//go:embed templates
var viewsFS embed.FS

var dashboardTmpl *template.Template

var funcs = template.FuncMap{
	"num": func(v *float64) string {
		if v == nil {
			return "—"
		}
		return fmt.Sprintf("%.1f", *v)
	},
	"fixed": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"orZero": func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	},
	"condition": func(code int) string {
		return weather.ConditionFromCode(code).Label()
	},
	"clock": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("15:04:05")
	},
}

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.New("dashboard").Funcs(funcs).ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// CurrentData is the view model for the current-conditions fragment.
type CurrentData struct {
	Conditions *weather.CurrentConditions
	FetchedAt  time.Time
	Events     []extremes.ExtremeEvent
	// Message replaces the fragment body when Conditions is nil.
	Message string
}

// ChartData is serialized into the page for the client-side charts.
type ChartData struct {
	Daily  []extremes.ChartRow    `json:"diario"`
	Hourly []extremes.HourlyPoint `json:"horario"`
}

// DashboardData is the view model for the full page.
type DashboardData struct {
	Title       string
	Location    weather.Location
	Current     CurrentData
	Records     []extremes.MergedDailyRecord
	Events      []extremes.ExtremeEvent
	Summary     extremes.Summary
	Thresholds  extremes.Thresholds
	Chart       ChartData
	LoadError   string
	PollSeconds int
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// RenderCurrentPartial executes only the current-conditions fragment.
func RenderCurrentPartial(w io.Writer, data *CurrentData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "partials/current.html", data)
}
