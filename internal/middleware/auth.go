package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/constants"
	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
	"github.com/yukikurage/legal-case-api/internal/metrics"
	"github.com/yukikurage/legal-case-api/internal/token"
)

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	Validate(raw string) (string, error)
}

// RequireAuth checks the bearer token. Every failure gets the same 401 so
// clients cannot tell an expired token from a forged one; the reason is
// logged and counted.
func RequireAuth(validator TokenValidator, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validator.Validate(bearerToken(c.GetHeader(constants.HeaderAuthorization)))
		if err != nil {
			kind := token.Kind(err)
			metrics.RecordTokenRejection(kind)
			log.Debug().
				Str("request_id", RequestIDFromContext(c)).
				Str("path", c.Request.URL.Path).
				Str("reason", kind).
				Msg("rejected bearer token")
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len(constants.BearerPrefix) || !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(constants.BearerPrefix):])
}
