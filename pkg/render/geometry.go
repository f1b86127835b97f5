package render

import "github.com/teslashibe/go-wallflower/pkg/behavior"

// Box is an axis-aligned rectangle in canvas space.
type Box struct {
	X, Y, W, H float64
}

// ActorBox places a base-sized figure with its feet at the pose, scaled.
func ActorBox(p behavior.Pose, baseW, baseH float64) Box {
	w := baseW * p.Scale
	h := baseH * p.Scale
	return Box{X: p.X - w/2, Y: p.DepthY - h, W: w, H: h}
}

// Vanishing returns the point the corridor walls converge on: centered,
// above the far bound by the given margin.
func Vanishing(cfg behavior.Config, margin float64) behavior.Point {
	return behavior.Point{X: cfg.CanvasWidth / 2, Y: cfg.MinY - margin}
}
