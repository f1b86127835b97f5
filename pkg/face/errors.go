package face

import "errors"

var (
	ErrInvalidConfig = errors.New("face: invalid config")
	ErrNoDetector    = errors.New("face: no detector")
	ErrNoFrames      = errors.New("face: no frame source")
	ErrCameraClosed  = errors.New("face: camera closed")
)
