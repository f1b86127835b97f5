package behavior

import "fmt"

// Session owns the control-loop state for one run: the introversion score,
// the actor pose and the secondary cursor. It is not safe for concurrent use;
// a single frame loop drives it.
type Session struct {
	cfg Config

	audio AudioService
	face  FaceService
	actor Actor

	conditioner  *Conditioner
	introversion *Introversion
	selector     Selector
	projector    *Projector

	tick      uint64
	animation Animation
	delay     int
}

// NewSession validates cfg and builds a session. Any collaborator may be nil.
func NewSession(cfg Config, audio AudioService, face FaceService, actor Actor) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		cfg:          cfg,
		audio:        audio,
		face:         face,
		actor:        actor,
		conditioner:  NewConditioner(cfg),
		introversion: NewIntroversion(cfg),
		selector:     NewSelector(cfg),
		projector:    NewProjector(cfg),
	}
	s.apply(Projection{Pose: s.projector.Pose(), Animation: AnimIdle, FrameDelay: s.introversion.IdleDelay()})
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Step runs one frame: condition, integrate, select, project, mutate the actor.
func (s *Session) Step() Frame {
	sig := s.conditioner.Condition(s.audio, s.face)
	score := s.introversion.Update(sig.Level, sig.Sound)
	decision := s.selector.Select(sig, score)

	speed := s.introversion.Speed()
	cadence := Cadence{Walk: s.introversion.WalkDelay(), Idle: s.introversion.IdleDelay()}
	proj := s.projector.Project(decision, speed, cadence, sig)
	s.apply(proj)

	s.tick++
	f := Frame{
		Tick:       s.tick,
		Sound:      sig.Sound,
		Level:      sig.Level,
		Score:      score,
		State:      decision.State,
		Target:     decision.Target,
		Speed:      speed,
		Animation:  proj.Animation,
		FrameDelay: proj.FrameDelay,
		Pose:       proj.Pose,
	}
	if sig.HasCursor {
		c := sig.Cursor
		f.Cursor = &c
	}
	return f
}

func (s *Session) apply(p Projection) {
	s.animation = p.Animation
	s.delay = p.FrameDelay
	if s.actor == nil {
		return
	}
	s.actor.SetPosition(p.Pose.X, p.Pose.DepthY)
	s.actor.SetScale(p.Pose.Scale)
	s.actor.SetAnimation(p.Animation)
	if ca, ok := s.actor.(CadenceActor); ok {
		ca.SetFrameDelay(p.FrameDelay)
	}
}

// Score returns the current introversion score.
func (s *Session) Score() float64 {
	return s.introversion.Score()
}

// SetScore overrides the introversion score.
func (s *Session) SetScore(score float64) {
	s.introversion.SetScore(score)
}

// Pose returns the current actor pose.
func (s *Session) Pose() Pose {
	return s.projector.Pose()
}

// PlaceActor moves the actor directly, e.g. to start a scripted run far away.
func (s *Session) PlaceActor(x, depthY float64) {
	s.projector.SetPose(x, depthY)
	s.apply(Projection{Pose: s.projector.Pose(), Animation: s.animation, FrameDelay: s.delay})
}

// Cursor returns the smoothed secondary cursor, or false before the first detection.
func (s *Session) Cursor() (Point, bool) {
	return s.conditioner.Cursor()
}

// Animation returns the animation selected on the last frame.
func (s *Session) Animation() Animation {
	return s.animation
}

// Tick returns the number of frames stepped.
func (s *Session) Tick() uint64 {
	return s.tick
}
