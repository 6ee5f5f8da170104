package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ev-siting/internal/metrics"
)

// Metrics считает запросы по шаблону маршрута, а не по фактическому пути,
// чтобы не раздувать кардинальность меток
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		collector.ObserveHTTP(c.Method(), c.Route().Path, status)
		return err
	}
}
