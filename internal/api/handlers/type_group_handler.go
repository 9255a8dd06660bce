package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// TypeGroup Handler
// ============================================

type TypeGroupHandler struct {
	typeGroupService service.TypeGroupService
	permissions      service.PermissionService
}

func NewTypeGroupHandler(typeGroupService service.TypeGroupService, permissions service.PermissionService) *TypeGroupHandler {
	return &TypeGroupHandler{typeGroupService: typeGroupService, permissions: permissions}
}

// List - List group categories
// GET /api/group/type-group
func (h *TypeGroupHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeGroup, service.ActionView, ""); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.typeGroupService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.TypeGroupResponse, len(items))
	for i, t := range items {
		response[i] = models.ToTypeGroupResponse(t)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Fetch one category
// GET /api/group/type-group/:id
func (h *TypeGroupHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeGroup, service.ActionView, ""); err != nil {
		respondError(c, err)
		return
	}

	t, err := h.typeGroupService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTypeGroupResponse(t))
}

// Create - Add a category
// POST /api/group/type-group
func (h *TypeGroupHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeGroup, service.ActionCreate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateTypeGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.typeGroupService.Create(c.Request.Context(), req.Name, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToTypeGroupResponse(t))
}

// Update - Edit a category
// PUT /api/group/type-group/:id
func (h *TypeGroupHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeGroup, service.ActionUpdate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateTypeGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.typeGroupService.Edit(c.Request.Context(), c.Param("id"), req.Name, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTypeGroupResponse(t))
}

// Delete - Remove a category
// DELETE /api/group/type-group/:id
func (h *TypeGroupHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceTypeGroup, service.ActionDelete, ""); err != nil {
		respondError(c, err)
		return
	}

	if err := h.typeGroupService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
