package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register - Create an account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{User: models.ToUserResponse(user), Token: token})
}

// Login - Authenticate with email and password
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{User: models.ToUserResponse(user), Token: token})
}

// LoginSSO - Authenticate with an SSO authorization code
// POST /api/auth/sso
func (h *AuthHandler) LoginSSO(c *gin.Context) {
	var req models.SSOLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.LoginWithSSO(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{User: models.ToUserResponse(user), Token: token})
}

// Logout - Revoke the current token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// ForgotPassword - Send a reset link
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": status})
}

// ResetPassword - Exchange a reset token for a new password
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": status})
}
