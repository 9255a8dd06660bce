package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// TypeUser Handler
// ============================================

type TypeUserHandler struct {
	typeUserService service.TypeUserService
	permissions     service.PermissionService
}

func NewTypeUserHandler(typeUserService service.TypeUserService, permissions service.PermissionService) *TypeUserHandler {
	return &TypeUserHandler{typeUserService: typeUserService, permissions: permissions}
}

// List - List user roles
// GET /api/group/type-user
func (h *TypeUserHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeUser, service.ActionView, ""); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.typeUserService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.TypeUserResponse, len(items))
	for i, t := range items {
		response[i] = models.ToTypeUserResponse(t)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Fetch one role
// GET /api/group/type-user/:id
func (h *TypeUserHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeUser, service.ActionView, ""); err != nil {
		respondError(c, err)
		return
	}

	t, err := h.typeUserService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTypeUserResponse(t))
}

// Create - Add a role
// POST /api/group/type-user
func (h *TypeUserHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeUser, service.ActionCreate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.TypeUserRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.typeUserService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToTypeUserResponse(t))
}

// Update - Rename a role
// PUT /api/group/type-user/:id
func (h *TypeUserHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeUser, service.ActionUpdate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.TypeUserRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.typeUserService.Edit(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTypeUserResponse(t))
}

// Delete - Remove a role
// DELETE /api/group/type-user/:id
func (h *TypeUserHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeUser, service.ActionDelete, ""); err != nil {
		respondError(c, err)
		return
	}

	if err := h.typeUserService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
