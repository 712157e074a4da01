package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/dto"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/config"
	"github.com/girmesh03/Task-Manager-V19/internal/presence"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// AuthHandler serves registration, login, logout, and the password reset
// flow. The access token travels in an HTTP-only cookie.
type AuthHandler struct {
	service    *service.AuthService
	authConfig config.AuthConfig
	tracker    *presence.Tracker
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, authConfig config.AuthConfig, tracker *presence.Tracker) *AuthHandler {
	return &AuthHandler{service: authService, authConfig: authConfig, tracker: tracker}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	session, err := h.service.Register(c.UserContext(), service.RegisterInput{
		OrganizationName: req.OrganizationName,
		Industry:         req.Industry,
		DepartmentName:   req.DepartmentName,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         req.Password,
		Position:         req.Position,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SessionResponse{
		User:      dto.FromUser(session.User),
		ExpiresAt: session.ExpiresAt,
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	session, err := h.service.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	h.tracker.Touch(session.User.ID)
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		User:      dto.FromUser(session.User),
		ExpiresAt: session.ExpiresAt,
	}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if actor, ok := auth.ActorFromContext(c); ok {
		h.tracker.Reset(actor.ActorID)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.authConfig.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// ForgotPassword POST /auth/password/forgot. Always answers 202 so callers
// cannot probe which emails exist.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// ResetPassword POST /auth/password/reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	if err := h.service.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *service.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     h.authConfig.CookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
