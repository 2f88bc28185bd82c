// Package constants holds names shared across the HTTP, persistence and CLI
// layers.
package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Admin lead list paging.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// x-auth-token is what the existing admin panel sends.
const (
	HeaderAuthToken      = "x-auth-token"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderAcceptLanguage = "Accept-Language"
)

// Keys set on gin.Context by middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

const (
	TableUsers       = "users"
	TableSubmissions = "submissions"
)

// UnknownContactName is stored for submissions without a usable name. A later
// submission with a real name replaces it.
const UnknownContactName = "Unknown"

const (
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgNoUpdateFields      = "No update fields provided"
	ErrMsgValidationFailed    = "Validation failed"
)
