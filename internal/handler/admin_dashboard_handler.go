package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// AdminDashboardHandler exposes the admin dashboard of the caller's session.
type AdminDashboardHandler struct {
	service service.AdminDashboardService
	logger  zerolog.Logger
}

// NewAdminDashboardHandler constructs an admin dashboard handler.
func NewAdminDashboardHandler(service service.AdminDashboardService, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register binds the admin dashboard routes.
func (h *AdminDashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.snapshot)
	router.Get("/courses/:id", h.review)
	router.Post("/courses/:id/approve", h.action(h.service.Approve))
	router.Post("/courses/:id/reject", h.action(h.service.Reject))
	router.Post("/users", h.createUser)
	router.Post("/users/:id/promote", h.action(h.service.Promote))
	router.Post("/users/:id/suspend", h.action(h.service.ToggleSuspend))
}

func (h *AdminDashboardHandler) snapshot(c *fiber.Ctx) error {
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

func (h *AdminDashboardHandler) review(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load course")
	}

	course, err := h.service.Review(requestContext(c), sess, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load course")
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

// action adapts an id-addressed admin action, for pending courses as
// well as managed users.
func (h *AdminDashboardHandler) action(apply func(context.Context, *session.Session, int64) (service.AdminAction, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64Param(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
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

func (h *AdminDashboardHandler) createUser(c *fiber.Ctx) error {
	var payload dto.UserFormRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create user")
	}

	result, err := h.service.CreateUser(requestContext(c), sess, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", result)
}
