package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/models"
	"github.com/grupohub/grupohub-backend/internal/service"
)

// ============================================
// Document Handler
// ============================================

type DocumentHandler struct {
	documentService service.DocumentService
	permissions     service.PermissionService
}

func NewDocumentHandler(documentService service.DocumentService, permissions service.PermissionService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, permissions: permissions}
}

// ListByGroup - Documents of a group
// GET /api/groups/:id/documents
func (h *DocumentHandler) ListByGroup(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	docs, err := h.documentService.FindByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.DocumentResponse, len(docs))
	for i, d := range docs {
		response[i] = models.ToDocumentResponse(d)
	}
	c.JSON(http.StatusOK, response)
}

// Upload - Store a document file in a group
// POST /api/groups/:id/documents (multipart, field "file")
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceDocument, service.ActionCreate, groupID); err != nil {
		respondError(c, err)
		return
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

	doc, err := h.documentService.Upload(c.Request.Context(), groupID, fileHeader.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToDocumentResponse(doc))
}

// Get - Fetch document metadata
// GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToDocumentResponse(doc))
}

// Download - Stream the stored file
// GET /api/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	doc, f, err := h.documentService.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), doc.Name)
}

// Update - Change the display name and/or replace the stored file
// PUT /api/documents/:id (JSON {"name": ...} or multipart with "file")
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceDocument, service.ActionUpdate, doc.GroupID); err != nil {
		respondError(c, err)
		return
	}

	var in service.EditDocumentInput
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		in.Filename = fileHeader.Filename
		in.File = f
		if name := c.PostForm("name"); name != "" {
			in.Name = &name
		}
	} else {
		var req models.RenameDocumentRequest
		if !bindJSON(c, &req) {
			return
		}
		in.Name = &req.Name
	}

	doc, err = h.documentService.Edit(c.Request.Context(), doc.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToDocumentResponse(doc))
}

// Delete - Remove the file and its record
// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.permissions.Can(c.Request.Context(), userID, service.ResourceDocument, service.ActionDelete, doc.GroupID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), doc.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
