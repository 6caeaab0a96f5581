package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edgylearn-api/internal/config"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	Environment    string    `json:"environment"`
	ActiveSessions int       `json:"active_sessions"`
}

// HealthCheck returns a handler that reports application health information.
// sessions may be nil.
func HealthCheck(cfg config.Config, sessions func() int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}
		if sessions != nil {
			payload.ActiveSessions = sessions()
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
