package dashboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gustavopmaia/gs-andre/internal/dashboard/views"
	"github.com/gustavopmaia/gs-andre/internal/extremes"
	"github.com/gustavopmaia/gs-andre/internal/store"
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

const (
	msgLoadFailed         = "Erro ao carregar dados históricos"
	msgCurrentUnavailable = "Dados atuais indisponíveis"
	pageTitle             = "Painel Climático"
)

// Source is what the dashboard needs from the proxy.
type Source interface {
	ClimateData(ctx context.Context) (weather.ClimateData, error)
	Forecast(ctx context.Context) (weather.DailySeries, error)
	Current(ctx context.Context) (*weather.CurrentConditions, error)
}

// Config holds dashboard settings that are not dependencies.
type Config struct {
	Location     weather.Location
	Thresholds   extremes.Thresholds
	PollInterval time.Duration
}

// Dashboard renders the page and keeps the latest current conditions.
type Dashboard struct {
	source   Source
	latest   *store.LatestStore
	detector extremes.Detector
	cfg      Config
	logger   *slog.Logger
}

func New(source Source, latest *store.LatestStore, cfg Config, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		source:   source,
		latest:   latest,
		detector: extremes.NewDetector(cfg.Thresholds),
		cfg:      cfg,
		logger:   logger.With("component", "dashboard"),
	}
}

// Register wires the dashboard routes into app.
func (d *Dashboard) Register(app *fiber.App) {
	app.Get("/", d.page)
	app.Get("/partials/atual", d.currentPartial)
	app.Get("/resumo", d.summary)
	app.Get("/health", d.health)
}

// RefreshCurrent fetches current conditions once and stores the result. It is
// the body of the polling job.
func (d *Dashboard) RefreshCurrent(ctx context.Context) error {
	current, err := d.source.Current(ctx)
	if err != nil {
		d.latest.MarkFailed(err)
		return err
	}
	d.latest.Save(current)
	return nil
}

// snapshot is one page load worth of data.
type snapshot struct {
	climate  weather.ClimateData
	forecast weather.DailySeries
}

func (d *Dashboard) load(ctx context.Context) (snapshot, error) {
	var s snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		climate, err := d.source.ClimateData(gctx)
		if err != nil {
			return err
		}
		s.climate = climate
		return nil
	})
	g.Go(func() error {
		forecast, err := d.source.Forecast(gctx)
		if err != nil {
			return err
		}
		s.forecast = forecast
		return nil
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return s, nil
}

func (d *Dashboard) currentData() views.CurrentData {
	snap, err := d.latest.Latest()
	if err != nil {
		return views.CurrentData{Message: msgCurrentUnavailable}
	}
	return views.CurrentData{
		Conditions: snap.Current,
		FetchedAt:  snap.FetchedAt,
		Events:     d.detector.ScanCurrent(snap.Current),
	}
}

func (d *Dashboard) page(c *fiber.Ctx) error {
	data := &views.DashboardData{
		Title:       pageTitle,
		Location:    d.cfg.Location,
		Current:     d.currentData(),
		Thresholds:  d.cfg.Thresholds,
		PollSeconds: int(d.cfg.PollInterval / time.Second),
	}

	s, err := d.load(c.UserContext())
	if err != nil {
		d.logFailure(c, err)
		data.LoadError = msgLoadFailed
	} else {
		report := d.detector.Analyze(&s.climate.Historical, &s.forecast, nil)
		data.Records = report.Records
		data.Events = report.Events
		data.Summary = report.Summary
		data.Summary.EventCount += len(data.Current.Events)
		data.Chart = views.ChartData{
			Daily:  extremes.ChartRows(report.Records),
			Hourly: extremes.HourlyChart(s.climate.Forecast),
		}
	}

	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, data); err != nil {
		d.logger.Error("dashboard template render failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao renderizar a página")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (d *Dashboard) currentPartial(c *fiber.Ctx) error {
	data := d.currentData()

	var buf bytes.Buffer
	if err := views.RenderCurrentPartial(&buf, &data); err != nil {
		d.logger.Error("current conditions partial render failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao renderizar a página")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

type summaryResponse struct {
	extremes.Report
	Current *weather.CurrentConditions `json:"atual"`
	Hourly  []extremes.HourlyPoint     `json:"previsao_horaria"`
}

// summary is the JSON form of the page: historical, forecast and current
// events together, in that order.
func (d *Dashboard) summary(c *fiber.Ctx) error {
	s, err := d.load(c.UserContext())
	if err != nil {
		d.logFailure(c, err)
		return fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}

	var current *weather.CurrentConditions
	if snap, err := d.latest.Latest(); err == nil {
		current = snap.Current
	}

	return c.JSON(summaryResponse{
		Report:  d.detector.Analyze(&s.climate.Historical, &s.forecast, current),
		Current: current,
		Hourly:  extremes.HourlyChart(s.climate.Forecast),
	})
}

func (d *Dashboard) health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":  "ok",
		"service": "weather-dashboard",
	}
	if snap, err := d.latest.Latest(); err == nil {
		body["atualizado_em"] = snap.FetchedAt
	}
	if at, err := d.latest.LastFailure(); err != nil {
		body["ultima_falha"] = at
	}
	return c.JSON(body)
}

func (d *Dashboard) logFailure(c *fiber.Ctx, err error) {
	d.logger.Error("load failed",
		"path", c.Path(),
		"requestId", c.Locals("requestid"),
		"proxy", errors.Is(err, ErrLoadFailed),
		"error", err,
	)
}
