package face

import (
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/face/detection"
)

// CanvasMapper converts normalized image coordinates to canvas pixels.
type CanvasMapper struct {
	Width, Height float64
	Mirror        bool // Flip horizontally, for selfie-view cameras
}

// Map returns p in canvas coordinates. Points outside the image are clamped.
func (m CanvasMapper) Map(p detection.Point) behavior.Point {
	x := behavior.Clamp(p.X, 0, 1)
	y := behavior.Clamp(p.Y, 0, 1)
	if m.Mirror {
		x = 1 - x
	}
	return behavior.Point{X: x * m.Width, Y: y * m.Height}
}

// MapAll maps every landmark of d.
func (m CanvasMapper) MapAll(d detection.Detection) [detection.NumLandmarks]behavior.Point {
	var out [detection.NumLandmarks]behavior.Point
	for i, p := range d.Landmarks {
		out[i] = m.Map(p)
	}
	return out
}
