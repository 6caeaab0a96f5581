package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// LearningHandler serves landing content, learning paths, progress and the
// user directory.
type LearningHandler struct {
	service service.LearningService
	logger  zerolog.Logger
}

// NewLearningHandler constructs a learning handler.
func NewLearningHandler(service service.LearningService, logger zerolog.Logger) *LearningHandler {
	return &LearningHandler{
		service: service,
		logger:  logger.With().Str("component", "learning_handler").Logger(),
	}
}

// RegisterPublic binds the landing route.
func (h *LearningHandler) RegisterPublic(router fiber.Router) {
	router.Get("/landing", h.landing)
}

// RegisterSession binds the routes that need an open session, each behind
// guards.
func (h *LearningHandler) RegisterSession(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/learning-paths", withGuards(guards, h.learningPaths)...)
	router.Get("/progress", withGuards(guards, h.progress)...)
	router.Get("/users/:id", withGuards(guards, h.user)...)
}

func (h *LearningHandler) landing(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "landing content", h.service.Landing(requestContext(c)))
}

func (h *LearningHandler) learningPaths(c *fiber.Ctx) error {
	recommended := false
	if raw := strings.TrimSpace(c.Query("recommended")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid recommended flag")
		}
		recommended = parsed
	}

	paths, err := h.service.LearningPaths(requestContext(c), recommended)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load learning paths")
	}

	return utils.SendSuccess(c, "learning paths retrieved", paths)
}

func (h *LearningHandler) progress(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load progress")
	}

	response, err := h.service.Progress(requestContext(c), sess.User.ID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load progress")
	}

	return utils.SendSuccess(c, "progress retrieved", response)
}

func (h *LearningHandler) user(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "user id required")
	}

	user, err := h.service.User(requestContext(c), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load user")
	}

	return utils.SendSuccess(c, "user retrieved", user)
}
