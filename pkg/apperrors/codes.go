package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
	ErrCodeSessionExpired     = "AUTH_SESSION_EXPIRED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidFormat    = "VALIDATION_INVALID_FORMAT"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeServiceNotFound     = "RESOURCE_SERVICE_NOT_FOUND"
	ErrCodeTestimonialNotFound = "RESOURCE_TESTIMONIAL_NOT_FOUND"
	ErrCodeFAQNotFound         = "RESOURCE_FAQ_NOT_FOUND"
	ErrCodeContentNotFound     = "RESOURCE_CONTENT_NOT_FOUND"
	ErrCodeSettingNotFound     = "RESOURCE_SETTING_NOT_FOUND"
	ErrCodeUserNotFound        = "RESOURCE_USER_NOT_FOUND"
	ErrCodeResourceExists      = "RESOURCE_ALREADY_EXISTS"
)

// Lead delivery errors (LEAD_*)
const (
	ErrCodeLeadNotConfigured  = "LEAD_DELIVERY_NOT_CONFIGURED"
	ErrCodeLeadDeliveryFailed = "LEAD_DELIVERY_FAILED"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeSignalError     = "INTERNAL_SIGNAL_ERROR"
	ErrCodeParseError      = "INTERNAL_PARSE_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
