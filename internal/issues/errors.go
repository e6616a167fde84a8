package issues

import "errors"

// Domain-specific errors for issue notice operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidNotice is returned when a notice fails validation.
	ErrInvalidNotice = errors.New("issues: invalid notice")

	// ErrInvalidSeverity is returned when a notice carries an unknown severity.
	ErrInvalidSeverity = errors.New("issues: invalid severity")

	// ErrAnnounceFailed is returned when publishing a rendered notice fails.
	ErrAnnounceFailed = errors.New("issues: announce failed")
)
