package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/produccion-api/internal/application/dto"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return err
	}
}

// Pinger lo implementan el pool de PostgreSQL y el store en memoria.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary      Estado del servicio y del almacenamiento
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Failure      503  {object}  dto.APIResponse
// @Router       /health [get]
func Health(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("STORE_UNAVAILABLE", err.Error(), nil))
		}
		return c.JSON(dto.OK(fiber.Map{"status": "ok"}, ""))
	}
}
