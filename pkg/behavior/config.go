// Package behavior implements the wallflower control loop.
//
// Each frame two sensor signals (microphone loudness and a face keypoint)
// flow through a conditioner, an introversion score, a stateless behavior
// selector and a projector that moves the actor toward a target depth and
// maps that depth to a visual scale.
package behavior

import "fmt"

// Config holds all tunable parameters for the control loop.
// It is fixed once a Session is created.
type Config struct {
	// Sound
	SoundGain      float64 `mapstructure:"sound_gain" json:"sound_gain"`           // Multiplier applied to the raw mic level
	SoundThreshold float64 `mapstructure:"sound_threshold" json:"sound_threshold"` // Level above this counts as loud

	// Introversion
	InitialScore     float64 `mapstructure:"initial_score" json:"initial_score"`
	GainRate         float64 `mapstructure:"gain_rate" json:"gain_rate"` // Score recovered per quiet frame
	LossRate         float64 `mapstructure:"loss_rate" json:"loss_rate"` // Score lost per loud frame
	PanicThreshold   float64 `mapstructure:"panic_threshold" json:"panic_threshold"`
	ComfortThreshold float64 `mapstructure:"comfort_threshold" json:"comfort_threshold"`

	// Movement speed (depth units per frame), mapped inversely from score
	MinSpeed float64 `mapstructure:"min_speed" json:"min_speed"` // At score 100
	MaxSpeed float64 `mapstructure:"max_speed" json:"max_speed"` // At score 0

	// Animation cadence in frames per sprite frame, mapped inversely from score
	WalkDelay DelayRange `mapstructure:"walk_delay" json:"walk_delay"`
	IdleDelay DelayRange `mapstructure:"idle_delay" json:"idle_delay"`

	// Canvas and depth
	CanvasWidth    float64 `mapstructure:"canvas_width" json:"canvas_width"`
	CanvasHeight   float64 `mapstructure:"canvas_height" json:"canvas_height"`
	MinY           float64 `mapstructure:"min_y" json:"min_y"` // Far bound
	MaxY           float64 `mapstructure:"max_y" json:"max_y"` // Close bound
	MinScale       float64 `mapstructure:"min_scale" json:"min_scale"`
	MaxScale       float64 `mapstructure:"max_scale" json:"max_scale"`
	ArrivalEpsilon float64 `mapstructure:"arrival_epsilon" json:"arrival_epsilon"`

	// Secondary control from the nose keypoint
	NoseKeypoint    int     `mapstructure:"nose_keypoint" json:"nose_keypoint"`
	CursorSmoothing float64 `mapstructure:"cursor_smoothing" json:"cursor_smoothing"` // EMA factor, higher = more new data
	FollowFactor    float64 `mapstructure:"follow_factor" json:"follow_factor"`       // Horizontal blend per frame
	NudgeRange      float64 `mapstructure:"nudge_range" json:"nudge_range"`           // Vertical nudge spans ±NudgeRange
	NudgeFactor     float64 `mapstructure:"nudge_factor" json:"nudge_factor"`         // Vertical blend per frame
}

// DelayRange is the frame delay at score 0 (Fast) and at score 100 (Slow).
type DelayRange struct {
	Fast float64 `mapstructure:"fast" json:"fast"`
	Slow float64 `mapstructure:"slow" json:"slow"`
}

// DefaultConfig returns the tuned defaults of the original sketch.
func DefaultConfig() Config {
	return Config{
		SoundGain:      1.0,
		SoundThreshold: 0.09,

		InitialScore:     100,
		GainRate:         0.2, // comfort recovers slower than it is lost
		LossRate:         1.0,
		PanicThreshold:   30,
		ComfortThreshold: 70,

		MinSpeed: 0.3,
		MaxSpeed: 2.0,

		WalkDelay: DelayRange{Fast: 2, Slow: 8},
		IdleDelay: DelayRange{Fast: 2, Slow: 12},

		CanvasWidth:    800,
		CanvasHeight:   600,
		MinY:           260,
		MaxY:           520,
		MinScale:       0.4,
		MaxScale:       1.5,
		ArrivalEpsilon: 5,

		NoseKeypoint:    2, // YuNet landmark order: eyes, nose, mouth corners
		CursorSmoothing: 0.12,
		FollowFactor:    0.12,
		NudgeRange:      20,
		NudgeFactor:     0.06,
	}
}

// Validate checks that the configuration can drive a session.
func (c Config) Validate() error {
	switch {
	case c.MinY >= c.MaxY:
		return fmt.Errorf("%w: min_y (%v) must be below max_y (%v)", ErrInvalidConfig, c.MinY, c.MaxY)
	case c.MinScale >= c.MaxScale:
		return fmt.Errorf("%w: min_scale (%v) must be below max_scale (%v)", ErrInvalidConfig, c.MinScale, c.MaxScale)
	case c.MinScale <= 0 || c.MaxScale <= 0:
		return fmt.Errorf("%w: scales must be positive", ErrInvalidConfig)
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must have positive size, got %vx%v", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	case c.SoundGain <= 0:
		return fmt.Errorf("%w: sound_gain must be positive, got %v", ErrInvalidConfig, c.SoundGain)
	case c.SoundThreshold < 0 || c.SoundThreshold >= 1:
		return fmt.Errorf("%w: sound_threshold must be in [0,1), got %v", ErrInvalidConfig, c.SoundThreshold)
	case c.GainRate < 0 || c.LossRate < 0:
		return fmt.Errorf("%w: gain_rate and loss_rate must not be negative", ErrInvalidConfig)
	case !inScoreRange(c.InitialScore) || !inScoreRange(c.PanicThreshold) || !inScoreRange(c.ComfortThreshold):
		return fmt.Errorf("%w: scores and thresholds must be in [%v,%v]", ErrInvalidConfig, MinScore, MaxScore)
	case c.PanicThreshold > c.ComfortThreshold:
		return fmt.Errorf("%w: panic_threshold (%v) above comfort_threshold (%v)", ErrInvalidConfig, c.PanicThreshold, c.ComfortThreshold)
	case c.MinSpeed < 0 || c.MaxSpeed < c.MinSpeed:
		return fmt.Errorf("%w: speed range [%v,%v] is invalid", ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	case c.WalkDelay.Fast < 1 || c.WalkDelay.Slow < 1 || c.IdleDelay.Fast < 1 || c.IdleDelay.Slow < 1:
		return fmt.Errorf("%w: frame delays must be at least 1", ErrInvalidConfig)
	case c.ArrivalEpsilon < 0:
		return fmt.Errorf("%w: arrival_epsilon must not be negative", ErrInvalidConfig)
	case c.NoseKeypoint < 0:
		return fmt.Errorf("%w: nose_keypoint must not be negative", ErrInvalidConfig)
	case !isFactor(c.CursorSmoothing) || !isFactor(c.FollowFactor) || !isFactor(c.NudgeFactor):
		return fmt.Errorf("%w: smoothing and blend factors must be in (0,1]", ErrInvalidConfig)
	case c.NudgeRange < 0:
		return fmt.Errorf("%w: nudge_range must not be negative", ErrInvalidConfig)
	}
	return nil
}

func inScoreRange(v float64) bool {
	return v >= MinScore && v <= MaxScore
}

func isFactor(v float64) bool {
	return v > 0 && v <= 1
}
