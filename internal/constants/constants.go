package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"
	BearerPrefix        = "Bearer "
)

// Token lifetime
const DefaultTokenTTL = 24 * time.Hour

// Upload limits
const (
	DefaultMaxUploadBytes int64 = 20 * 1024 * 1024
	MaxFilenameLength           = 200
)

// AI chat limits
const (
	MaxChatMessageLength = 4000
	MaxChatHistoryTurns  = 10
)
