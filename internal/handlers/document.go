package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
	"github.com/yukikurage/legal-case-api/internal/middleware"
	"github.com/yukikurage/legal-case-api/internal/services"
)

// multipartOverhead leaves room for form fields and part headers on top of
// the file itself.
const multipartOverhead = 1 << 20

// DocumentHandler handles document upload and listing
type DocumentHandler struct {
	documentService *services.DocumentService
	maxBytes        int64
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *services.DocumentService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, maxBytes: maxBytes}
}

// UploadDocument handles multipart POST /api/documents with fields file and case_id
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			apierrors.FileTooLarge(c, h.maxBytes)
		case errors.Is(err, http.ErrMissingFile):
			apierrors.BadRequest(c, "No file provided")
		default:
			apierrors.BadRequest(c, "Invalid multipart form")
		}
		return
	}
	if header.Size > h.maxBytes {
		apierrors.FileTooLarge(c, h.maxBytes)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondInternal(c, err)
		return
	}
	defer file.Close()

	result, err := h.documentService.Upload(c.Request.Context(), services.UploadInput{
		OwnerID:  userID,
		CaseID:   c.PostForm("case_id"),
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		if respondCaseScopedError(c, err) {
			return
		}
		switch {
		case errors.Is(err, services.ErrFileRequired):
			apierrors.BadRequest(c, "No file provided")
		case errors.Is(err, services.ErrInvalidFilename):
			apierrors.BadRequest(c, "Invalid filename")
		case errors.Is(err, services.ErrFileTooLarge):
			apierrors.FileTooLarge(c, h.maxBytes)
		default:
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "File uploaded",
		"filename":     result.Filename,
		"key":          result.Key,
		"content_type": result.ContentType,
	})
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	documents, err := h.documentService.List(c.Request.Context(), userID, c.Query("case_id"))
	if err != nil {
		if !respondCaseScopedError(c, err) {
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}
