package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/legal-case-api/internal/dto"
	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
	"github.com/yukikurage/legal-case-api/internal/middleware"
	"github.com/yukikurage/legal-case-api/internal/services"
)

// CaseHandler handles case endpoints
type CaseHandler struct {
	caseService *services.CaseService
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(caseService *services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// CreateCase creates a case owned by the caller
func (h *CaseHandler) CreateCase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.caseService.CreateCase(c.Request.Context(), userID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrTitleTooLong):
			apierrors.BadRequest(c, err.Error())
		default:
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"case": dto.ToCaseDTO(*created)})
}

// ListCases lists the caller's cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	cases, err := h.caseService.ListCases(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": dto.ToCaseDTOs(cases)})
}

// GetCase returns one case. Cases owned by someone else are reported as
// not found.
func (h *CaseHandler) GetCase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	found, err := h.caseService.GetCase(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if !respondCaseScopedError(c, err) {
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": dto.ToCaseDTO(*found)})
}
