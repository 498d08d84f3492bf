package dotenv

import "errors"

var (
	// ErrMissingTemplate is returned when the template file cannot be read.
	ErrMissingTemplate = errors.New("template file not found")
	// ErrInvalidConfig is returned when options are contradictory or malformed.
	// It is always returned before any file is touched.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrWriteFailed is returned when the target file cannot be written.
	// A failure part way through a rewrite can leave the target inconsistent.
	ErrWriteFailed = errors.New("failed to write target file")
)
