package audioio

import "errors"

var (
	// ErrClosed is returned when starting a source after Close.
	ErrClosed = errors.New("audio source closed")

	// ErrUnsupportedFormat is returned for WAV files the decoder cannot read.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
