package monitor

import (
	"net/http"
	"time"

	"github.com/ctabridge/ctabridge/pkg/mqtt_client"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// StartStatsServer serves cycle stats and a broker health check beside the
// poll loop. Blocks until the listener fails.
func (monitor *Monitor) StartStatsServer(listen string, publisher *mqtt_client.Publisher) error {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(newRequestLogger())

	webApp.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(monitor.Stats())
	})

	webApp.Get("/health", func(c *fiber.Ctx) error {
		if !publisher.Connected() {
			return c.Status(fiber.StatusInternalServerError).SendString("MQTT broker disconnected")
		}

		return c.SendString("OK")
	})

	log.Info().Str("listen", listen).Msg("Stats server listening")

	return webApp.Listen(listen)
}

func newRequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("latency", time.Since(startTime).String()).
			Logger()

		switch {
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			requestLogger.Warn().Msg(msg)
		case code >= http.StatusInternalServerError:
			requestLogger.Error().Msg(msg)
		default:
			requestLogger.Info().Msg(msg)
		}

		return nil
	}
}
