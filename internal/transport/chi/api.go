package chi

// ErrorCode is the machine-readable error code returned in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	ErrorCodeUnsupportedFormat ErrorCode = "unsupported_format"
	ErrorCodePayloadTooLarge   ErrorCode = "payload_too_large"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the Job Matcher API. Use POST /match/ endpoint."

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// MatchRequest is the JSON body of POST /match/.
type MatchRequest struct {
	JobDescription string `json:"job_description"`
	Resume         string `json:"resume"`
}

// MatchParams are the optional query parameters of the match endpoints.
type MatchParams struct {
	TopN *int `json:"top_n,omitempty"`
}

// MatchResponse is the body of a successful match.
type MatchResponse struct {
	MatchScore      float64  `json:"match_score"`
	MatchPercentage float64  `json:"match_percentage"`
	KeyTermsFound   []string `json:"key_terms_found"`
	MissingTerms    []string `json:"missing_terms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
