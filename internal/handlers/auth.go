package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/internal/middleware"
	"github.com/scrapdesk/admin-api/pkg/dto"
)

type AuthHandler struct {
	authService AuthServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	token, session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(&session.User),
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), session); err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) ResetPassword(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), session, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "password updated"})
}

func (h *AuthHandler) GetProfile(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toUserResponse(user))
}

func (h *AuthHandler) UpdateProfile(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), session, req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toUserResponse(user))
}
