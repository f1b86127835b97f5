package behavior

import "math"

// Cadence carries the frame delays derived from the score.
type Cadence struct {
	Walk int
	Idle int
}

// Projection is the projector's output for one frame.
type Projection struct {
	Pose       Pose
	Animation  Animation
	FrameDelay int
	Moving     bool
}

// Projector moves the actor in depth, projects depth to scale and applies
// the nose nudge.
type Projector struct {
	cfg  Config
	pose Pose
}

// NewProjector starts the actor at the close bound, horizontally centered.
func NewProjector(cfg Config) *Projector {
	p := &Projector{
		cfg: cfg,
		pose: Pose{
			X:      cfg.CanvasWidth / 2,
			DepthY: cfg.MaxY,
		},
	}
	p.pose.Scale = p.ScaleAt(p.pose.DepthY)
	return p
}

// Pose returns the current pose.
func (p *Projector) Pose() Pose {
	return p.pose
}

// SetPose places the actor directly; depth is clamped and scale recomputed.
func (p *Projector) SetPose(x, depthY float64) {
	p.pose.X = x
	p.pose.DepthY = p.ClampDepth(depthY)
	p.pose.Scale = p.ScaleAt(p.pose.DepthY)
	p.pose.Velocity = 0
}

// ClampDepth restricts depth to [MinY, MaxY].
func (p *Projector) ClampDepth(y float64) float64 {
	return Clamp(y, p.cfg.MinY, p.cfg.MaxY)
}

// ScaleAt maps a depth to a visual scale. Far is small, close is large.
func (p *Projector) ScaleAt(depthY float64) float64 {
	return mapRange(depthY, p.cfg.MinY, p.cfg.MaxY, p.cfg.MinScale, p.cfg.MaxScale)
}

// Project advances the pose one frame.
func (p *Projector) Project(d Decision, speed float64, cadence Cadence, sig Signals) Projection {
	out := Projection{Animation: AnimIdle, FrameDelay: cadence.Idle}
	p.pose.Velocity = 0

	if d.State != Holding {
		delta := d.Target - p.pose.DepthY
		if math.Abs(delta) > p.cfg.ArrivalEpsilon {
			step := math.Copysign(speed, delta)
			p.pose.DepthY += step
			p.pose.Velocity = step
			out.Moving = true
			out.FrameDelay = cadence.Walk
			if d.Target >= p.cfg.MaxY {
				out.Animation = AnimForward
			} else {
				out.Animation = AnimBackward
			}
		}
	}
	p.pose.DepthY = p.ClampDepth(p.pose.DepthY)

	// The nudge runs after motion whatever the state and may fight the target.
	if sig.HasCursor {
		p.nudge(sig.Cursor)
	}

	p.pose.Scale = p.ScaleAt(p.pose.DepthY)
	out.Pose = p.pose
	return out
}

func (p *Projector) nudge(cursor Point) {
	tx := Clamp(cursor.X, 0, p.cfg.CanvasWidth)
	p.pose.X = Lerp(p.pose.X, tx, p.cfg.FollowFactor)

	offset := mapRange(cursor.Y, 0, p.cfg.CanvasHeight, -p.cfg.NudgeRange, p.cfg.NudgeRange)
	p.pose.DepthY = Lerp(p.pose.DepthY, p.pose.DepthY+offset, p.cfg.NudgeFactor)
	p.pose.DepthY = p.ClampDepth(p.pose.DepthY)
}
