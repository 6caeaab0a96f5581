package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// CatalogHandler serves the filtered course catalog.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register binds the catalog routes.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/", h.browse)
	router.Get("/:id", h.course)
}

func (h *CatalogHandler) browse(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load catalog")
	}

	var query dto.CatalogQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.service.Browse(requestContext(c), sess.User, query)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load catalog")
	}

	return utils.SendSuccess(c, "catalog retrieved", response)
}

func (h *CatalogHandler) course(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "course id required")
	}

	course, err := h.service.Course(requestContext(c), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load course")
	}

	return utils.SendSuccess(c, "course retrieved", course)
}
