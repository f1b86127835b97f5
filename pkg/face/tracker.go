package face

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/face/detection"
)

// Tracker polls a frame source, runs detection and keeps the latest
// keypoints of the best face. Keypoint never blocks on detection.
type Tracker struct {
	config   Config
	frames   FrameSource
	detector detection.Detector
	mapper   CanvasMapper
	logger   *slog.Logger

	mu        sync.RWMutex
	keypoints [detection.NumLandmarks]behavior.Point
	hasFace   bool
	misses    int
	lastSeen  time.Time
}

// NewTracker creates a tracker. Both frames and detector are required.
func NewTracker(cfg Config, frames FrameSource, detector detection.Detector, logger *slog.Logger) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if frames == nil {
		return nil, ErrNoFrames
	}
	if detector == nil {
		return nil, ErrNoDetector
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		config:   cfg,
		frames:   frames,
		detector: detector,
		mapper: CanvasMapper{
			Width:  cfg.CanvasWidth,
			Height: cfg.CanvasHeight,
			Mirror: cfg.Mirror,
		},
		logger: logger.With("component", "face"),
	}, nil
}

// Run detects on every tick until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.config.DetectionInterval)
	defer ticker.Stop()

	t.logger.Info("face tracker started",
		"interval", t.config.DetectionInterval,
		"mirror", t.config.Mirror)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.detectOnce()
		}
	}
}

// detectOnce runs one capture and detection pass.
func (t *Tracker) detectOnce() {
	jpeg, err := t.frames.CaptureJPEG()
	if err != nil {
		t.logger.Debug("capture failed", "error", err)
		t.miss()
		return
	}

	dets, err := t.detector.Detect(jpeg)
	if err != nil {
		t.logger.Debug("detect failed", "error", err)
		t.miss()
		return
	}

	best := detection.SelectBest(dets)
	if best == nil {
		t.miss()
		return
	}

	points := t.mapper.MapAll(*best)

	t.mu.Lock()
	found := !t.hasFace
	t.keypoints = points
	t.hasFace = true
	t.misses = 0
	t.lastSeen = time.Now()
	t.mu.Unlock()

	if found {
		t.logger.Info("face found", "confidence", best.Confidence)
	}
}

func (t *Tracker) miss() {
	t.mu.Lock()
	t.misses++
	lost := t.hasFace && t.misses >= t.config.LostAfter
	if lost {
		t.hasFace = false
	}
	t.mu.Unlock()

	if lost {
		t.logger.Info("face lost", "misses", t.config.LostAfter)
	}
}

// Keypoint returns the canvas position of landmark index for the current face.
func (t *Tracker) Keypoint(index int) (behavior.Point, bool) {
	if index < 0 || index >= detection.NumLandmarks {
		return behavior.Point{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.hasFace {
		return behavior.Point{}, false
	}
	return t.keypoints[index], true
}

// LastSeen returns when a face was last detected.
func (t *Tracker) LastSeen() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastSeen
}

var _ behavior.FaceService = (*Tracker)(nil)
