package behavior

import "fmt"

// Score bounds for the introversion score.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the behavior chosen for a single frame.
type State int

const (
	// Holding means the actor neither approaches nor retreats.
	Holding State = iota

	// Approaching means the actor walks toward the close bound.
	Approaching

	// Retreating means the actor walks toward the far bound.
	Retreating
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Holding:
		return "holding"
	case Approaching:
		return "approaching"
	case Retreating:
		return "retreating"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "holding":
		*s = Holding
	case "approaching":
		*s = Approaching
	case "retreating":
		*s = Retreating
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

// Animation names understood by the actor.
type Animation string

const (
	AnimIdle     Animation = "idle"
	AnimForward  Animation = "forward"
	AnimBackward Animation = "backward"
)

// Pose is the actor's placement in the fake-3D corridor.
type Pose struct {
	X        float64 `json:"x"`        // Horizontal position
	DepthY   float64 `json:"depth_y"`  // Vertical screen position standing in for distance
	Scale    float64 `json:"scale"`    // Visual scale derived from DepthY
	Velocity float64 `json:"velocity"` // Signed depth change applied this frame
	Mirrored bool    `json:"mirrored"`
}

// Signals are the conditioned sensor values for one frame.
type Signals struct {
	Sound     bool    // False when no mic signal is available
	Level     float64 // In [0,1]; zero when Sound is false
	Cursor    Point   // Smoothed nose position
	HasCursor bool    // False until the first valid detection
}

// Frame is a snapshot of one control-loop tick.
type Frame struct {
	Tick       uint64    `json:"tick"`
	Sound      bool      `json:"sound"`
	Level      float64   `json:"level"`
	Score      float64   `json:"score"`
	State      State     `json:"state"`
	Target     float64   `json:"target"`
	Speed      float64   `json:"speed"`
	Animation  Animation `json:"animation"`
	FrameDelay int       `json:"frame_delay"`
	Pose       Pose      `json:"pose"`
	Cursor     *Point    `json:"cursor,omitempty"`

	// SpriteFrame is the strip frame to draw, filled in by the runner
	// when a sprite is attached.
	SpriteFrame int `json:"sprite_frame"`
}

// AudioService provides the latest microphone level.
type AudioService interface {
	// Available reports whether a level can be read (mic authorized and running).
	Available() bool

	// Level returns the latest raw level in [0,1].
	Level() float64
}

// FaceService provides face keypoints already mapped to canvas coordinates.
type FaceService interface {
	// Keypoint returns the keypoint at index, or false if no face is detected.
	Keypoint(index int) (Point, bool)
}

// Actor is the drawable, animatable character.
type Actor interface {
	SetPosition(x, y float64)
	SetScale(s float64)
	SetAnimation(name Animation)
	Position() (x, y float64)
}

// CadenceActor is an Actor whose animation playback speed can be set.
type CadenceActor interface {
	Actor
	SetFrameDelay(frames int)
}
