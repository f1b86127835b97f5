// Package sketch runs a behavior session at a fixed frame rate and
// publishes every frame to its sinks.
package sketch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

// DefaultFPS matches a browser animation frame.
const DefaultFPS = 60

// ErrAlreadyRunning is returned by Run when the runner is already ticking.
var ErrAlreadyRunning = errors.New("sketch: already running")

// Sink receives frames. Publish runs on the frame goroutine and must not block.
type Sink interface {
	Publish(f behavior.Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f behavior.Frame)

// Publish calls fn.
func (fn SinkFunc) Publish(f behavior.Frame) { fn(f) }

// Advancer steps sprite animation once per frame.
type Advancer interface {
	Advance() int
}

// Runner drives a Session.
type Runner struct {
	session  *behavior.Session
	advancer Advancer
	sinks    []Sink
	fps      int
	logger   *slog.Logger
	status   *rate.Sometimes
	id       string

	mu      sync.RWMutex
	last    behavior.Frame
	hasLast bool
	running bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithFPS sets the frame rate. Values below 1 are ignored.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.fps = fps
		}
	}
}

// WithSink adds a frame sink.
func WithSink(s Sink) Option {
	return func(r *Runner) { r.sinks = append(r.sinks, s) }
}

// WithAdvancer advances sprite frames after every step.
func WithAdvancer(a Advancer) Option {
	return func(r *Runner) { r.advancer = a }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithStatusInterval sets how often a status line is logged while running.
func WithStatusInterval(d time.Duration) Option {
	return func(r *Runner) { r.status = &rate.Sometimes{Interval: d} }
}

// NewRunner creates a runner for session.
func NewRunner(session *behavior.Session, opts ...Option) *Runner {
	r := &Runner{
		session: session,
		fps:     DefaultFPS,
		logger:  slog.Default(),
		status:  &rate.Sometimes{Interval: 5 * time.Second},
		id:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "sketch", "run", r.id)
	return r
}

// ID identifies this run in logs.
func (r *Runner) ID() string {
	return r.id
}

// FPS returns the configured frame rate.
func (r *Runner) FPS() int {
	return r.fps
}

// Run ticks until ctx is cancelled. It returns ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	r.logger.Info("frame loop started", "fps", r.fps, "sinks", len(r.sinks))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("frame loop stopped", "ticks", r.session.Tick())
			return ctx.Err()
		case <-ticker.C:
			f := r.StepOnce()
			r.status.Do(func() {
				r.logger.Info("status",
					"tick", f.Tick,
					"state", f.State,
					"score", f.Score,
					"depth", f.Pose.DepthY)
			})
		}
	}
}

// StepOnce advances one frame and publishes it. Run calls it on every tick;
// scripted runs call it directly. Calls must not overlap.
func (r *Runner) StepOnce() behavior.Frame {
	f := r.session.Step()
	if r.advancer != nil {
		f.SpriteFrame = r.advancer.Advance()
	}

	r.mu.Lock()
	prev, hadPrev := r.last, r.hasLast
	r.last, r.hasLast = f, true
	r.mu.Unlock()

	if !hadPrev || prev.State != f.State {
		r.logger.Info("state changed",
			"tick", f.Tick,
			"from", prevState(prev, hadPrev),
			"to", f.State,
			"score", f.Score,
			"level", f.Level)
	}
	if hadPrev && prev.Animation != f.Animation {
		r.logger.Debug("animation changed", "tick", f.Tick, "animation", f.Animation)
	}

	for _, s := range r.sinks {
		s.Publish(f)
	}
	return f
}

// Steps runs n frames back to back and returns them.
func (r *Runner) Steps(n int) []behavior.Frame {
	frames := make([]behavior.Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, r.StepOnce())
	}
	return frames
}

// Latest returns the most recent frame.
func (r *Runner) Latest() (behavior.Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.hasLast
}

func prevState(f behavior.Frame, ok bool) string {
	if !ok {
		return "none"
	}
	return f.State.String()
}
