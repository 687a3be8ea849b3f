package jobmatch

import "github.com/kailas-cloud/jobmatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrResourceUnavailable = domain.ErrResourceUnavailable
	ErrUnsupportedFormat   = domain.ErrUnsupportedFormat
)

// InputError names the blank document. Use errors.As() to inspect it.
type InputError = domain.InputError
