package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeMissingUserID  = "missing_user_id"
	ErrCodeInvalidLevel   = "invalid_level"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeUnknownPlayer = "unknown_player"

	// Game errors
	ErrCodeCatalogTooSmall = "catalog_too_small"
	ErrCodePlanFailed      = "plan_failed"
	ErrCodeSyncFailed      = "sync_failed"
	ErrCodeLoginFailed     = "login_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
)
