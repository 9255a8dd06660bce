package handlers

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Report Handler
// ============================================

type ReportHandler struct {
	reportService service.ReportService
	permissions   service.PermissionService
}

func NewReportHandler(reportService service.ReportService, permissions service.PermissionService) *ReportHandler {
	return &ReportHandler{reportService: reportService, permissions: permissions}
}

// Export - Generate and stream the group report
// GET /api/groups/:id/report?withFiles=true
func (h *ReportHandler) Export(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceReport, service.ActionCreate, groupID); err != nil {
		respondError(c, err)
		return
	}

	withFiles := c.Query("withFiles") == "true"

	file, err := h.reportService.GenerateGroupReport(c.Request.Context(), groupID, withFiles)
	if err != nil {
		respondError(c, err)
		return
	}
	// The export is one-shot: stream it and drop the artifact.
	defer func() {
		if err := os.Remove(file.Path); err != nil {
			log.Printf("⚠️ [Report] Failed to remove %s: %v", file.Path, err)
		}
	}()

	c.Header("Content-Type", file.ContentType)
	c.FileAttachment(file.Path, file.Name)
}
