package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
	"github.com/yukikurage/legal-case-api/internal/services"
)

// respondCaseScopedError maps the errors shared by every case-scoped
// operation. It reports whether it wrote a response.
func respondCaseScopedError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrCaseIDRequired):
		apierrors.BadRequest(c, "case_id is required")
	case errors.Is(err, services.ErrCaseNotFound):
		apierrors.NotFound(c, "Case not found")
	default:
		return false
	}
	return true
}

// respondInternal hides err from the client and attaches it to the context
// so the request logger records it.
func respondInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	apierrors.InternalError(c, "")
}
