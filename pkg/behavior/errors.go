package behavior

import "errors"

var (
	// ErrInvalidConfig is returned when a Config cannot drive a session.
	ErrInvalidConfig = errors.New("invalid behavior config")

	// ErrDegenerateRange is returned when a linear map has a collapsed source range.
	ErrDegenerateRange = errors.New("degenerate source range")
)
