package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request with zerolog. 5xx responses log at
// error level, 4xx at warn.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status_code", status).
			Str("client_ip", c.IP()).
			Str("latency", time.Since(start).String()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Msg("Request processed")

		return nil
	}
}
