package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// StudentDashboardHandler exposes the student dashboard of the caller's session.
type StudentDashboardHandler struct {
	service service.StudentDashboardService
	logger  zerolog.Logger
}

// NewStudentDashboardHandler constructs a student dashboard handler.
func NewStudentDashboardHandler(service service.StudentDashboardService, logger zerolog.Logger) *StudentDashboardHandler {
	return &StudentDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "student_dashboard_handler").Logger(),
	}
}

// Register binds the student dashboard routes.
func (h *StudentDashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.getDashboard)
	router.Post("/courses/:id/continue", h.action(h.service.Continue))
	router.Post("/courses/:id/bookmark", h.action(h.service.ToggleBookmark))
	router.Post("/suggestions/:id/like", h.action(h.service.ToggleLike))
	router.Post("/suggestions/:id/enroll", h.action(h.service.Enroll))
}

func (h *StudentDashboardHandler) getDashboard(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load dashboard")
	}

	snapshot, err := h.service.Snapshot(requestContext(c), sess)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", snapshot)
}

func (h *StudentDashboardHandler) action(apply func(context.Context, *session.Session, int64) (service.StudentAction, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64Param(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
		}

		sess, err := sessionFrom(c)
		if err != nil {
			return sendServiceError(c, h.logger, err, "failed to update dashboard")
		}

		result, err := apply(requestContext(c), sess, id)
		if err != nil {
			return sendServiceError(c, h.logger, err, "failed to update dashboard")
		}

		return utils.SendSuccess(c, actionMessage(result.Applied), result)
	}
}
