package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phananhtu/authcore/internal/api/http/middleware"
	"github.com/phananhtu/authcore/internal/api/http/response"
	"github.com/phananhtu/authcore/internal/apperrors"
	"github.com/phananhtu/authcore/internal/logger"
	"github.com/phananhtu/authcore/internal/model"
	"github.com/phananhtu/authcore/internal/service"
)

// Auth exposes the authentication flows over HTTP.
type Auth struct {
	service *service.Auth
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

// Login verifies credentials and returns the profile with a fresh token
// pair.
func (h *Auth) Login(c *gin.Context) {
	var input model.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	output, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, "login success", output)
}

// Logout invalidates the caller's session.
func (h *Auth) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.Subject(c)); err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, "logout success", nil)
}

// Refresh exchanges the presented refresh token for a new token pair.
func (h *Auth) Refresh(c *gin.Context) {
	output, err := h.service.RefreshTokens(c.Request.Context(), middleware.Subject(c), middleware.RefreshToken(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, "refresh token success", output)
}

// ChangePassword rotates the caller's password and revokes all tokens
// issued before the change.
func (h *Auth) ChangePassword(c *gin.Context) {
	var input model.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	output, err := h.service.ChangePassword(c.Request.Context(), middleware.Subject(c), input.OldPassword, input.NewPassword)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.OK(c, "change password success", output)
}
