package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request, tagging it with the incoming
// X-Request-ID or a fresh uuid.
func RequestLogger(l *Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set("X-Request-ID", reqID)

		start := time.Now()
		err := c.Next()

		entry := l.WithFields(logrus.Fields{
			"req_id":      reqID,
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   c.IP(),
		})
		if err != nil {
			entry.WithField("error", err.Error()).Warn("request failed")
		} else {
			entry.Info("request handled")
		}
		return err
	}
}
