package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/middleware"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

func parseInt64Param(c *fiber.Ctx, key string) (int64, error) {
	value := strings.TrimSpace(c.Params(key))
	if value == "" {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(value, 10, 64)
}

func withGuards(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, h)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

func sessionFrom(c *fiber.Ctx) (*session.Session, error) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return sess, nil
}

// sendServiceError maps service errors onto HTTP statuses. Anything
// unrecognised is logged and reported as fallback with a 500.
func sendServiceError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	if formErr, ok := service.AsFormError(err); ok {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, formErr.Message, formErr)
	}

	switch {
	case errors.Is(err, service.ErrUnknownAccount):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongRole):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCatalogQuery):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	requestLogger(logger, c).Error().Err(err).Msg(fallback)
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}

func actionMessage(applied bool) string {
	if applied {
		return "dashboard updated"
	}
	return "dashboard unchanged"
}
