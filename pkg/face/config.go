// Package face turns camera frames into canvas-space facial keypoints.
package face

import (
	"fmt"
	"time"

	"github.com/teslashibe/go-wallflower/pkg/face/detection"
)

// Config holds camera and tracker parameters.
type Config struct {
	Detection detection.Config `mapstructure:"detection" json:"detection"`

	// Camera
	Device  int `mapstructure:"device" json:"device"`   // OpenCV capture index
	Quality int `mapstructure:"quality" json:"quality"` // JPEG quality 1-100

	// Timing
	DetectionInterval time.Duration `mapstructure:"detection_interval" json:"detection_interval"`

	// Drop the face after this many consecutive misses
	LostAfter int `mapstructure:"lost_after" json:"lost_after"`

	// Canvas mapping
	CanvasWidth  float64 `mapstructure:"canvas_width" json:"canvas_width"`
	CanvasHeight float64 `mapstructure:"canvas_height" json:"canvas_height"`
	Mirror       bool    `mapstructure:"mirror" json:"mirror"`
}

// DefaultConfig returns defaults for a webcam feeding an 800x600 canvas.
func DefaultConfig() Config {
	return Config{
		Detection:         detection.DefaultConfig(),
		Device:            0,
		Quality:           80,
		DetectionInterval: 100 * time.Millisecond,
		LostAfter:         5,
		CanvasWidth:       800,
		CanvasHeight:      600,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.DetectionInterval <= 0 {
		return fmt.Errorf("%w: detection_interval must be positive", ErrInvalidConfig)
	}
	if c.LostAfter < 1 {
		return fmt.Errorf("%w: lost_after must be at least 1", ErrInvalidConfig)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas size must be positive", ErrInvalidConfig)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality must be 1-100", ErrInvalidConfig)
	}
	return nil
}
