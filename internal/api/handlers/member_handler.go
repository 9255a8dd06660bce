package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Member Handler
// ============================================

type MemberHandler struct {
	memberService service.MemberService
	permissions   service.PermissionService
}

func NewMemberHandler(memberService service.MemberService, permissions service.PermissionService) *MemberHandler {
	return &MemberHandler{memberService: memberService, permissions: permissions}
}

// ListByGroup - Members of a group
// GET /api/groups/:id/members
func (h *MemberHandler) ListByGroup(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	members, err := h.memberService.FindByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, m := range members {
		response[i] = models.ToMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Add a batch of members to a group; responds with the group's
// full roster.
// POST /api/groups/:id/members
func (h *MemberHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMember, service.ActionCreate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateMembersRequest
	if !bindJSON(c, &req) {
		return
	}

	inputs := make([]service.CreateMemberInput, len(req.Members))
	for i, m := range req.Members {
		inputs[i] = service.CreateMemberInput{
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Role:      m.Role,
			EntryDate: m.EntryDate,
		}
	}

	members, err := h.memberService.CreateMany(c.Request.Context(), c.Param("id"), inputs)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, m := range members {
		response[i] = models.ToMemberResponse(m)
	}
	c.JSON(http.StatusCreated, response)
}

// Get - Fetch one member
// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMemberResponse(member))
}

// Update - Edit a member's mutable fields
// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMember, service.ActionUpdate, ""); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.Edit(c.Request.Context(), c.Param("id"), service.EditMemberInput{
		Phone:         req.Phone,
		Role:          req.Role,
		EntryDate:     req.EntryDate,
		DepartureDate: req.DepartureDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMemberResponse(member))
}

// Delete - Remove a member
// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMember, service.ActionDelete, ""); err != nil {
		respondError(c, err)
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
