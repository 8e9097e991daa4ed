package convert

import "errors"

// Precondition errors. Malformed markup never produces an error.
var (
	// ErrEmptyContent is returned when there is nothing to convert.
	ErrEmptyContent = errors.New("content is empty")

	// ErrInvalidStartIndex is returned for a negative insertion index.
	ErrInvalidStartIndex = errors.New("start index must not be negative")

	// ErrUnknownFormat is returned for a format this package cannot convert.
	ErrUnknownFormat = errors.New("unknown content format")
)
