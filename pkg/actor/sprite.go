// Package actor provides the animated character driven by the behavior loop.
//
// A Sprite holds position, scale, facing and the active named animation.
// Animations are frame strips played at a cadence: the frame index advances
// once every FrameDelay ticks.
package actor

import (
	"sync"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

// Clip describes one named animation strip.
type Clip struct {
	Name   behavior.Animation
	Frames int
}

// DefaultClips returns the strips of the stock character sheet.
func DefaultClips() []Clip {
	return []Clip{
		{Name: behavior.AnimIdle, Frames: 4},
		{Name: behavior.AnimForward, Frames: 6},
		{Name: behavior.AnimBackward, Frames: 6},
	}
}

// Snapshot is a copy of the sprite's drawable state.
type Snapshot struct {
	X          float64            `json:"x"`
	Y          float64            `json:"y"`
	Scale      float64            `json:"scale"`
	Mirrored   bool               `json:"mirrored"`
	Animation  behavior.Animation `json:"animation"`
	Frame      int                `json:"frame"`
	FrameDelay int                `json:"frame_delay"`
}

// Sprite is a drawable, animatable character. It is safe for concurrent use:
// the frame loop writes while renderers read.
type Sprite struct {
	mu sync.RWMutex

	x, y     float64
	scale    float64
	mirrored bool

	clips   map[behavior.Animation]int
	current behavior.Animation
	frame   int
	delay   int
	counter int
}

// NewSprite creates a sprite playing idle. With no clips, DefaultClips is used.
func NewSprite(clips ...Clip) *Sprite {
	if len(clips) == 0 {
		clips = DefaultClips()
	}
	s := &Sprite{
		scale:   1,
		clips:   make(map[behavior.Animation]int, len(clips)),
		current: behavior.AnimIdle,
		delay:   1,
	}
	for _, c := range clips {
		if c.Frames < 1 {
			c.Frames = 1
		}
		s.clips[c.Name] = c.Frames
	}
	return s
}

// SetPosition places the sprite's anchor (feet) in canvas coordinates.
func (s *Sprite) SetPosition(x, y float64) {
	s.mu.Lock()
	s.x, s.y = x, y
	s.mu.Unlock()
}

// Position returns the anchor position.
func (s *Sprite) Position() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// SetScale sets the visual scale.
func (s *Sprite) SetScale(scale float64) {
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()
}

// SetMirrored flips the sprite horizontally.
func (s *Sprite) SetMirrored(mirrored bool) {
	s.mu.Lock()
	s.mirrored = mirrored
	s.mu.Unlock()
}

// SetAnimation switches the active strip. Switching restarts the strip;
// setting the active name again is a no-op.
func (s *Sprite) SetAnimation(name behavior.Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.current {
		return
	}
	s.current = name
	s.frame = 0
	s.counter = 0
}

// SetFrameDelay sets how many ticks each strip frame is shown.
func (s *Sprite) SetFrameDelay(frames int) {
	if frames < 1 {
		frames = 1
	}
	s.mu.Lock()
	s.delay = frames
	s.mu.Unlock()
}

// Advance moves playback forward one tick and returns the strip frame to draw.
func (s *Sprite) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	if s.counter >= s.delay {
		s.counter = 0
		s.frame = (s.frame + 1) % s.framesOf(s.current)
	}
	return s.frame
}

// Snapshot returns a copy of the drawable state.
func (s *Sprite) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		X:          s.x,
		Y:          s.y,
		Scale:      s.scale,
		Mirrored:   s.mirrored,
		Animation:  s.current,
		Frame:      s.frame,
		FrameDelay: s.delay,
	}
}

// framesOf returns the strip length; unknown names play as a single frame.
func (s *Sprite) framesOf(name behavior.Animation) int {
	if n, ok := s.clips[name]; ok {
		return n
	}
	return 1
}

// Ensure Sprite satisfies the behavior actor contract.
var _ behavior.CadenceActor = (*Sprite)(nil)
