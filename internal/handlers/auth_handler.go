package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/response"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	u, token, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			response.ConflictError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "User registered", gin.H{
		"user":  u,
		"token": token,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	u, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		response.UnauthorizedError(c, "invalid credentials")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Logged in", gin.H{
		"user":  u,
		"token": token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.GetUser(auth.EmailFromContext(c))
	if err != nil {
		response.NotFoundError(c, "user not found")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", u)
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := h.auth.UpdateProfile(auth.EmailFromContext(c), req.Name)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Profile updated", u)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	err := h.auth.ChangePassword(auth.EmailFromContext(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.UnauthorizedError(c, "current password is incorrect")
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}

type ResetRequestRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset handles POST /api/auth/reset-password/request
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	// The token would normally leave through a mail provider; the response
	// is identical whether or not the account exists.
	if _, err := h.auth.RequestPasswordReset(req.Email); err != nil {
		response.InternalServerError(c, "failed to process reset request")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "If the account exists, a reset link was sent", nil)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.auth.ResetPassword(req.Email, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidResetToken) {
			response.BadRequestError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Password reset", nil)
}
