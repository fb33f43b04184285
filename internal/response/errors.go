package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Admin gate ────────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAdminAccessOnly    ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Registration pipeline ─────────────────────────────────────────
	ErrDuplicateEntry ErrCode = "DUPLICATE_ENTRY"
	ErrStorageFailure ErrCode = "STORAGE_FAILURE"

	// ─── Admin operations ──────────────────────────────────────────────
	ErrConfirmationMismatch ErrCode = "CONFIRMATION_MISMATCH"
	ErrNothingToExport      ErrCode = "NOTHING_TO_EXPORT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Admin gate ────────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "ACCESS DENIED: Invalid credentials."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Registration pipeline ─────────────────────────────────────────
	case ErrDuplicateEntry:
		return "You are already registered!"
	case ErrStorageFailure:
		return "Failed to save registration."

	// ─── Admin operations ──────────────────────────────────────────────
	case ErrConfirmationMismatch:
		return "Type 'DELETE' to confirm wiping the stored registrations."
	case ErrNothingToExport:
		return "No registrations found to download."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
