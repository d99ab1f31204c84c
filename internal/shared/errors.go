package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Lyrics service errors. ErrLookup is the umbrella the sync engine
	// reports as a FAILED outcome; the others wrap it for diagnostics.
	ErrLookup        = fmt.Errorf("lyrics lookup failed")
	ErrServiceStatus = fmt.Errorf("%w: unexpected response status", ErrLookup)
	ErrParseResponse = fmt.Errorf("%w: malformed response payload", ErrLookup)

	// Filesystem errors
	ErrWriteLyrics = fmt.Errorf("failed to write lyrics file")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
