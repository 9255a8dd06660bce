package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Meeting Handler
// ============================================

type MeetingHandler struct {
	meetingService service.MeetingService
	permissions    service.PermissionService
}

func NewMeetingHandler(meetingService service.MeetingService, permissions service.PermissionService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService, permissions: permissions}
}

// ListByGroup - Meetings of a group
// GET /api/groups/:id/meetings
func (h *MeetingHandler) ListByGroup(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	meetings, err := h.meetingService.FindByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.MeetingResponse, len(meetings))
	for i, m := range meetings {
		response[i] = models.ToMeetingResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Record a meeting with its minutes file
// POST /api/groups/:id/meetings (multipart: title, date, file)
func (h *MeetingHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMeeting, service.ActionCreate, groupID); err != nil {
		respondError(c, err)
		return
	}

	title := c.PostForm("title")
	if len(title) < 2 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": map[string][]string{"title": {"The title must be at least 2 characters."}},
		})
		return
	}

	var date *time.Time
	if raw := c.PostForm("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors": map[string][]string{"date": {"The date must be a valid RFC 3339 timestamp."}},
			})
			return
		}
		date = &parsed
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "A file upload is required.", "code": http.StatusBadRequest})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	meeting, err := h.meetingService.Create(c.Request.Context(), groupID, service.CreateMeetingInput{
		Title:    title,
		Date:     date,
		Filename: fileHeader.Filename,
		File:     f,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToMeetingResponse(meeting))
}

// Get - Fetch meeting metadata
// GET /api/meetings/:id
func (h *MeetingHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	meeting, err := h.meetingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMeetingResponse(meeting))
}

// Download - Stream the minutes file under its original name
// GET /api/meetings/:id/download
func (h *MeetingHandler) Download(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	meeting, f, err := h.meetingService.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), meeting.Name)
}

// Update - Edit title or date and/or replace the minutes file
// PUT /api/meetings/:id (JSON or multipart with "file")
func (h *MeetingHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMeeting, service.ActionUpdate, meeting.GroupID); err != nil {
		respondError(c, err)
		return
	}

	var in service.EditMeetingInput
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		in.Filename = fileHeader.Filename
		in.File = f
		if title := c.PostForm("title"); title != "" {
			in.Title = &title
		}
		if raw := c.PostForm("date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"errors": map[string][]string{"date": {"The date must be a valid RFC 3339 timestamp."}},
				})
				return
			}
			in.Date = &parsed
		}
	} else {
		var req models.UpdateMeetingRequest
		if !bindJSON(c, &req) {
			return
		}
		in.Title = req.Title
		in.Date = req.Date
	}

	meeting, err = h.meetingService.Edit(c.Request.Context(), meeting.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMeetingResponse(meeting))
}

// Delete - Remove the meeting and its file
// DELETE /api/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceMeeting, service.ActionDelete, meeting.GroupID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.meetingService.Delete(c.Request.Context(), meeting.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
