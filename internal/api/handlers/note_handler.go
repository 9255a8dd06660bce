package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Note Handler
// ============================================

type NoteHandler struct {
	noteService service.NoteService
	permissions service.PermissionService
}

func NewNoteHandler(noteService service.NoteService, permissions service.PermissionService) *NoteHandler {
	return &NoteHandler{noteService: noteService, permissions: permissions}
}

// ListByGroup - Notes of a group
// GET /api/groups/:id/notes
func (h *NoteHandler) ListByGroup(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	notes, err := h.noteService.FindByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.NoteResponse, len(notes))
	for i, n := range notes {
		response[i] = models.ToNoteResponse(n)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Add a note to a group
// POST /api/groups/:id/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceNote, service.ActionCreate, groupID); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), groupID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToNoteResponse(note))
}

// Get - Fetch one note
// GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToNoteResponse(note))
}

// Update - Edit a note
// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceNote, service.ActionUpdate, note.GroupID); err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err = h.noteService.Edit(c.Request.Context(), note.ID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToNoteResponse(note))
}

// Delete - Remove a note
// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceNote, service.ActionDelete, note.GroupID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), note.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
