// Package output provides JSON/text output formatting and error handling.
package output

// Exit codes for the rsq binary.
const (
	ExitOK         = 0 // Success
	ExitUsage      = 1 // Invalid arguments or flags
	ExitNotFound   = 2 // Resource not found
	ExitAuth       = 3 // Not authenticated / session expired
	ExitForbidden  = 4 // Access denied (permission grant missing)
	ExitRateLimit  = 5 // Rate limited (429)
	ExitNetwork    = 6 // Connection/DNS/timeout error
	ExitAPI        = 7 // Server returned error
	ExitValidation = 8 // Request rejected with field errors
)

// Error codes for the JSON envelope.
const (
	CodeUsage       = "usage"
	CodeNotFound    = "not_found"
	CodeAuth        = "auth_required"
	CodeCredentials = "invalid_credentials"
	CodeForbidden   = "forbidden"
	CodeValidation  = "validation"
	CodeRateLimit   = "rate_limit"
	CodeNetwork     = "network"
	CodeAPI         = "api_error"
)

// ExitCodeFor returns the exit code for a given error code.
func ExitCodeFor(code string) int {
	switch code {
	case CodeUsage:
		return ExitUsage
	case CodeNotFound:
		return ExitNotFound
	case CodeAuth, CodeCredentials:
		return ExitAuth
	case CodeForbidden:
		return ExitForbidden
	case CodeValidation:
		return ExitValidation
	case CodeRateLimit:
		return ExitRateLimit
	case CodeNetwork:
		return ExitNetwork
	case CodeAPI:
		return ExitAPI
	default:
		return ExitAPI
	}
}
