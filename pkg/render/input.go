// Package render holds what the terminal and desktop views share.
package render

import (
	"sync"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

// Input turns keyboard and mouse activity into sensor readings. Space
// makes noise that fades over a few frames; the mouse stands in for a face.
type Input struct {
	decay     float64
	noseIndex int

	mu      sync.Mutex
	level   float64
	nose    behavior.Point
	hasNose bool
}

// NewInput creates an input whose noise level is multiplied by decay on every read.
func NewInput(decay float64, noseIndex int) *Input {
	return &Input{decay: behavior.Clamp(decay, 0, 1), noseIndex: noseIndex}
}

// Shout sets the level to full.
func (in *Input) Shout() {
	in.mu.Lock()
	in.level = 1
	in.mu.Unlock()
}

// Point places the face at p in canvas coordinates.
func (in *Input) Point(p behavior.Point) {
	in.mu.Lock()
	in.nose, in.hasNose = p, true
	in.mu.Unlock()
}

// Forget removes the face.
func (in *Input) Forget() {
	in.mu.Lock()
	in.hasNose = false
	in.mu.Unlock()
}

// Available is always true; the keyboard is the microphone.
func (in *Input) Available() bool { return true }

// Level returns the current noise and lets it fade.
func (in *Input) Level() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	l := in.level
	in.level *= in.decay
	return l
}

// Keypoint reports the mouse position for the nose index.
func (in *Input) Keypoint(index int) (behavior.Point, bool) {
	if index != in.noseIndex {
		return behavior.Point{}, false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.nose, in.hasNose
}
