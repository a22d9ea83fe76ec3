package views

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gustavopmaia/gs-andre/internal/extremes"
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if dashboardTmpl == nil {
		t.Fatal("LoadTemplates() left dashboardTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS) = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/dashboard.html":        {Data: []byte("{{ .")},
		"templates/partials/current.html": {Data: []byte("")},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(badFS) = nil; want error")
	}
}

func TestRenderDashboard_notLoaded(t *testing.T) {
	prev := dashboardTmpl
	dashboardTmpl = nil
	t.Cleanup(func() { dashboardTmpl = prev })

	err := RenderDashboard(&bytes.Buffer{}, &DashboardData{})
	if err == nil || !strings.Contains(err.Error(), "not loaded") {
		t.Fatalf("RenderDashboard() = %v; want not loaded error", err)
	}
	err = RenderCurrentPartial(&bytes.Buffer{}, &CurrentData{})
	if err == nil || !strings.Contains(err.Error(), "not loaded") {
		t.Fatalf("RenderCurrentPartial() = %v; want not loaded error", err)
	}
}

func render(t *testing.T, data *DashboardData) *goquery.Document {
	t.Helper()
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, data); err != nil {
		t.Fatalf("RenderDashboard() = %v; want nil", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
		t.Errorf("output missing DOCTYPE")
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRenderDashboard_emptyData(t *testing.T) {
	doc := render(t, &DashboardData{Title: "Painel Climático"})

	if got := doc.Find("h1").Text(); got != "Painel Climático" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("#registros tbody tr").Length() != 0 {
		t.Error("expected no rows")
	}
	if !strings.Contains(doc.Find("#eventos").Text(), "Nenhum evento extremo") {
		t.Error("expected empty events message")
	}
}

func TestRenderDashboard_withData(t *testing.T) {
	events := []extremes.ExtremeEvent{
		{Type: extremes.HeavyRain, Kind: extremes.KindDaily, Date: "2024-01-01", Value: 22.5, Source: extremes.SourceHistorical},
		{Type: extremes.LowMinTemp, Kind: extremes.KindDaily, Date: "2024-01-02", Value: 4, Source: extremes.SourceForecast},
	}
	records := []extremes.MergedDailyRecord{
		{Date: "2024-01-01", PrecipHist: weather.Float(22.5), TempMaxHist: weather.Float(30)},
		{Date: "2024-01-02", TempMinPrev: weather.Float(4)},
	}
	doc := render(t, &DashboardData{
		Title:    "Painel Climático",
		Location: weather.Location{Label: "São Paulo", Timezone: "America/Sao_Paulo"},
		Current: CurrentData{
			Conditions: &weather.CurrentConditions{Temperature: 3.5, WeatherCode: 45},
			FetchedAt:  time.Date(2024, 1, 3, 10, 15, 0, 0, time.UTC),
			Events:     []extremes.ExtremeEvent{{Type: extremes.LowMinTemp, Kind: extremes.KindCurrent, Value: 3.5}},
		},
		Records:    records,
		Events:     events,
		Summary:    extremes.Summarize(records, events),
		Thresholds: extremes.DefaultThresholds(),
		Chart:      ChartData{Daily: extremes.ChartRows(records)},
	})

	if doc.Find("#registros tbody tr").Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", doc.Find("#registros tbody tr").Length())
	}
	items := doc.Find("#eventos li")
	if got := items.First().Text(); got != "2024-01-01: Chuva forte (22.5 mm)" {
		t.Errorf("unexpected first event text %q", got)
	}
	if got := items.Last().Text(); got != "2024-01-02: Temperatura mínima baixa (4.0 °C)" {
		t.Errorf("unexpected last event text %q", got)
	}
	if got := doc.Find(".condicao").Text(); got != "Neblina" {
		t.Errorf("condition = %q; want Neblina", got)
	}
	if !strings.Contains(doc.Find(".alertas").Text(), "(agora)") {
		t.Errorf("expected current alert label, got %q", doc.Find(".alertas").Text())
	}
	if !strings.Contains(doc.Find("#atual").Text(), "10:15:00") {
		t.Error("expected fetch time")
	}
	if !strings.Contains(doc.Find("#dados-grafico").Text(), `"precipitacao_hist":22.5`) {
		t.Errorf("chart data missing precipitation, got %q", doc.Find("#dados-grafico").Text())
	}
	if n := doc.Find("canvas").Length(); n != 0 {
		t.Errorf("expected no canvas elements, got %d", n)
	}
}

func TestRenderDashboard_currentPrecipitation(t *testing.T) {
	tests := []struct {
		name   string
		precip *float64
		want   string
	}{
		{name: "missing renders as zero", precip: nil, want: "0.0 mm"},
		{name: "reported value", precip: weather.Float(3.5), want: "3.5 mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := render(t, &DashboardData{
				Current: CurrentData{
					Conditions: &weather.CurrentConditions{Temperature: 20, Precipitation: tt.precip},
				},
			})
			if got := doc.Find("#atual .precipitacao").Text(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderDashboard_loadError(t *testing.T) {
	doc := render(t, &DashboardData{
		LoadError: "Erro ao carregar dados históricos",
		Current:   CurrentData{Message: "Dados atuais indisponíveis"},
	})

	if got := doc.Find("#historico .error").Text(); got != "Erro ao carregar dados históricos" {
		t.Errorf("fallback = %q", got)
	}
	if doc.Find("#graficos").Length() != 0 {
		t.Error("expected no charts on load error")
	}
	if got := strings.TrimSpace(doc.Find(".indisponivel").Text()); got != "Dados atuais indisponíveis" {
		t.Errorf("current message = %q", got)
	}
}

func TestRenderDashboard_writeError(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	err := RenderDashboard(&failingWriter{err: io.ErrClosedPipe}, &DashboardData{})
	if err != io.ErrClosedPipe {
		t.Errorf("RenderDashboard() = %v; want %v", err, io.ErrClosedPipe)
	}
}

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }
