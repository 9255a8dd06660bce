package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Activity Handler
// ============================================

type ActivityHandler struct {
	activityService service.ActivityService
	permissions     service.PermissionService
}

func NewActivityHandler(activityService service.ActivityService, permissions service.PermissionService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, permissions: permissions}
}

// ListByGroup - Activities of a group
// GET /api/groups/:id/activities
func (h *ActivityHandler) ListByGroup(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	activities, err := h.activityService.FindByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ActivityResponse, len(activities))
	for i, a := range activities {
		response[i] = models.ToActivityResponse(a)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Add an activity to a group
// POST /api/groups/:id/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceActivity, service.ActionCreate, groupID); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), groupID, service.CreateActivityInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToActivityResponse(activity))
}

// Get - Fetch one activity
// GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToActivityResponse(activity))
}

// Update - Edit an activity
// PUT /api/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceActivity, service.ActionUpdate, activity.GroupID); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	activity, err = h.activityService.Edit(c.Request.Context(), activity.ID, service.EditActivityInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToActivityResponse(activity))
}

// Delete - Remove an activity
// DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceActivity, service.ActionDelete, activity.GroupID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), activity.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
