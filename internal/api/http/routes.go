package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// Fixed client-facing messages. Causes are only logged.
const (
	msgClimateData = "Erro ao buscar dados climáticos"
	msgCurrent     = "Erro ao obter dados atuais"
	msgForecast    = "Erro ao buscar previsão do tempo"
)

// RegisterRoutes wires the proxy handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{service: service, logger: logger.With("component", "httpapi")}

	app.Get("/health", h.health)
	app.Get("/dados-climaticos", h.climateData)
	app.Get("/dados-atuais", h.current)
	app.Get("/previsao-tempo", h.forecast)
}

type handlers struct {
	service *weather.Service
	logger  *slog.Logger
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "weather-proxy",
		"location": h.service.Location(),
	})
}

func (h *handlers) climateData(c *fiber.Ctx) error {
	data, err := h.service.GetHistoricalAndForecast(c.UserContext())
	if err != nil {
		h.logFailure(c, err)
		return fiber.NewError(fiber.StatusInternalServerError, msgClimateData)
	}
	return c.JSON(data)
}

// current answers null when the provider has no current_weather block.
func (h *handlers) current(c *fiber.Ctx) error {
	current, err := h.service.GetCurrent(c.UserContext())
	if err != nil {
		h.logFailure(c, err)
		return fiber.NewError(fiber.StatusInternalServerError, msgCurrent)
	}
	return c.JSON(current)
}

func (h *handlers) forecast(c *fiber.Ctx) error {
	daily, err := h.service.GetForecastOnly(c.UserContext())
	if err != nil {
		h.logFailure(c, err)
		return fiber.NewError(fiber.StatusInternalServerError, msgForecast)
	}
	return c.JSON(daily)
}

func (h *handlers) logFailure(c *fiber.Ctx, err error) {
	kind := "unknown"
	var upstream *weather.UpstreamFetchError
	var malformed *weather.MalformedResponseError
	switch {
	case errors.As(err, &malformed):
		kind = "malformed_response"
	case errors.As(err, &upstream):
		kind = "upstream_fetch"
	}

	h.logger.Error("request failed",
		"path", c.Path(),
		"requestId", c.Locals("requestid"),
		"kind", kind,
		"error", err,
	)
}
