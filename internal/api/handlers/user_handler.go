package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
	permissions service.PermissionService
}

func NewUserHandler(userService service.UserService, permissions service.PermissionService) *UserHandler {
	return &UserHandler{userService: userService, permissions: permissions}
}

// Me - Current account
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUserResponse(user))
}

// List - List accounts
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceUser, service.ActionView, ""); err != nil {
		respondError(c, err)
		return
	}

	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.UserResponse, len(users))
	for i, u := range users {
		response[i] = models.ToUserResponse(u)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Fetch one account
// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceUser, service.ActionView, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUserResponse(user))
}

// Update - Edit an account
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceUser, service.ActionUpdate, targetID); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Edit(c.Request.Context(), targetID, service.EditUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUserResponse(user))
}

// Delete - Soft-delete an account
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceUser, service.ActionDelete, targetID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore - Undo a soft delete
// POST /api/users/:id/restore
func (h *UserHandler) Restore(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceUser, service.ActionRestore, targetID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.userService.Restore(c.Request.Context(), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User restored."})
}
