package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Group Handler
// ============================================

type GroupHandler struct {
	groupService service.GroupService
	permissions  service.PermissionService
}

func NewGroupHandler(groupService service.GroupService, permissions service.PermissionService) *GroupHandler {
	return &GroupHandler{groupService: groupService, permissions: permissions}
}

// List - Filtered group listing
// GET /api/groups?name=&type_group_id=&kind=&creator_user_id=
func (h *GroupHandler) List(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	filters := map[string]string{}
	for _, key := range []string{"name", "type_group_id", "kind", "creator_user_id"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}

	groups, err := h.groupService.FindMany(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.GroupResponse, len(groups))
	for i, g := range groups {
		response[i] = models.ToGroupResponse(g)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Fetch one group
// GET /api/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	group, err := h.groupService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToGroupResponse(group))
}

// Create - Create a group with its category and representative
// POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceGroup, service.ActionCreate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), userID, service.CreateGroupInput{
		Name:                req.Name,
		Description:         req.Description,
		TypeGroupName:       req.TypeGroupName,
		TypeGroupKind:       req.TypeGroupKind,
		RepresentativeName:  req.RepresentativeName,
		RepresentativeEmail: req.RepresentativeEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToGroupResponse(group))
}

// Update - Edit a group
// PUT /api/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceGroup, service.ActionUpdate, groupID); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Edit(c.Request.Context(), groupID, service.EditGroupInput{
		Name:                req.Name,
		Description:         req.Description,
		TypeGroupName:       req.TypeGroupName,
		TypeGroupKind:       req.TypeGroupKind,
		RepresentativeName:  req.RepresentativeName,
		RepresentativeEmail: req.RepresentativeEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToGroupResponse(group))
}

// Delete - Remove a group and everything it owns
// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceGroup, service.ActionDelete, groupID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), groupID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
