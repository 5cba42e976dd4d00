package apierror

// Error type URIs following the urn:wakewell:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:wakewell:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:wakewell:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:wakewell:error:conflict"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:wakewell:error:internal"

	// TypeFutureDate indicates a calendar date in the future (400)
	TypeFutureDate = "urn:wakewell:error:future_date"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:wakewell:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation = "Validation Error"
	TitleNotFound   = "Resource Not Found"
	TitleConflict   = "Resource Conflict"
	TitleInternal   = "Internal Server Error"
	TitleFutureDate = "Future Date Not Allowed"
	TitleBadRequest = "Bad Request"
)
