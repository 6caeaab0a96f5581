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

// TeacherDashboardHandler exposes the teacher dashboard of the caller's session.
type TeacherDashboardHandler struct {
	service service.TeacherDashboardService
	logger  zerolog.Logger
}

// NewTeacherDashboardHandler constructs a teacher dashboard handler.
func NewTeacherDashboardHandler(service service.TeacherDashboardService, logger zerolog.Logger) *TeacherDashboardHandler {
	return &TeacherDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_dashboard_handler").Logger(),
	}
}

// Register binds the teacher dashboard routes.
func (h *TeacherDashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.snapshot)
	router.Post("/courses", h.createCourse)
	router.Get("/courses/:id", h.course)
	router.Put("/courses/:id", h.updateCourse)
	router.Delete("/courses/:id", h.action(h.service.Delete))
	router.Post("/courses/:id/publish", h.action(h.service.Publish))
}

func (h *TeacherDashboardHandler) snapshot(c *fiber.Ctx) error {
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

func (h *TeacherDashboardHandler) course(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load course")
	}

	course, err := h.service.Course(requestContext(c), sess, id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load course")
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *TeacherDashboardHandler) createCourse(c *fiber.Ctx) error {
	var payload dto.CourseFormRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create course")
	}

	result, err := h.service.CreateCourse(requestContext(c), sess, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create course")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", result)
}

func (h *TeacherDashboardHandler) updateCourse(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var payload dto.CourseFormRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update course")
	}

	result, err := h.service.UpdateCourse(requestContext(c), sess, id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update course")
	}

	return utils.SendSuccess(c, actionMessage(result.Applied), result)
}

func (h *TeacherDashboardHandler) action(apply func(context.Context, *session.Session, int64) (service.TeacherAction, error)) fiber.Handler {
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
