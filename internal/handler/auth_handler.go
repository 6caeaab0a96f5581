package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dto"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// AuthHandler exposes the navigation shell: login, registration, password
// reset, logout and the caller's session.
type AuthHandler struct {
	service service.ShellService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.ShellService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic binds the routes reachable without a session.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/register", h.register)
	router.Post("/forgot-password", h.forgotPassword)
}

// RegisterSession binds the routes that need an open session. guards run
// before each route; they are not installed on the shared prefix so the public
// routes stay reachable.
func (h *AuthHandler) RegisterSession(router fiber.Router, guards ...fiber.Handler) {
	router.Post("/logout", withGuards(guards, h.logout)...)
	router.Get("/me", withGuards(guards, h.me)...)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(requestContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to sign in")
	}

	return utils.SendSuccess(c, "signed in", response)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Register(requestContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to register")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", response)
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx) error {
	var payload dto.ForgotPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.ForgotPassword(requestContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to request password reset")
	}

	return utils.SendSuccess(c, "password reset link sent", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to sign out")
	}

	response, err := h.service.Logout(requestContext(c), sess.ID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to sign out")
	}

	return utils.SendSuccess(c, "signed out", response)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load session")
	}

	response, err := h.service.Me(requestContext(c), sess.ID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load session")
	}

	return utils.SendSuccess(c, "session", response)
}
