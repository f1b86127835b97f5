package audioio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
)

// LevelMeter tracks the loudness of the most recent audio chunk.
// Reads never block; writes come from a single capture goroutine.
type LevelMeter struct {
	smoothing float64

	bits      atomic.Uint64
	available atomic.Bool
	observed  atomic.Int64
}

// NewLevelMeter creates a meter. smoothing in [0,1) blends each new RMS
// reading with the previous level.
func NewLevelMeter(smoothing float64) *LevelMeter {
	return &LevelMeter{smoothing: smoothing}
}

// Observe folds a chunk into the level and marks the meter available.
func (m *LevelMeter) Observe(chunk AudioChunk) float64 {
	rms := math.Min(chunk.RMS(), 1)
	level := rms
	if m.observed.Load() > 0 {
		level = m.smoothing*m.Level() + (1-m.smoothing)*rms
	}
	m.bits.Store(math.Float64bits(level))
	m.observed.Add(1)
	m.available.Store(true)
	return level
}

// Level returns the latest level in [0,1].
func (m *LevelMeter) Level() float64 {
	return math.Float64frombits(m.bits.Load())
}

// Available reports whether at least one chunk arrived and capture is live.
func (m *LevelMeter) Available() bool {
	return m.available.Load()
}

// Reset marks the meter unavailable, e.g. when capture ends.
func (m *LevelMeter) Reset() {
	m.available.Store(false)
	m.observed.Store(0)
	m.bits.Store(0)
}

// Microphone meters a Source. It satisfies the behavior loop's audio service:
// unavailable until the first chunk arrives and again once capture ends.
type Microphone struct {
	src    Source
	meter  *LevelMeter
	logger *slog.Logger
}

// NewMicrophone wraps src. A nil src yields a microphone that is never available.
func NewMicrophone(src Source, smoothing float64, logger *slog.Logger) *Microphone {
	if logger == nil {
		logger = slog.Default()
	}
	return &Microphone{
		src:    src,
		meter:  NewLevelMeter(smoothing),
		logger: logger,
	}
}

// Open builds a Microphone from configuration. BackendNone yields a
// microphone without a source.
func Open(cfg Config, logger *slog.Logger) (*Microphone, error) {
	if cfg.Backend == BackendNone {
		return NewMicrophone(nil, cfg.Smoothing, logger), nil
	}
	src, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewMicrophone(src, cfg.Smoothing, logger), nil
}

// Run starts capture and meters chunks until ctx is done or the source ends.
func (m *Microphone) Run(ctx context.Context) error {
	if m.src == nil {
		<-ctx.Done()
		return nil
	}
	defer m.meter.Reset()

	if err := m.src.Start(ctx); err != nil {
		return err
	}
	m.logger.Info("microphone capturing", "backend", m.src.Name())

	for {
		chunk, err := m.src.Read(ctx)
		switch {
		case err == nil:
			m.meter.Observe(chunk)
		case errors.Is(err, io.EOF):
			m.logger.Info("microphone source ended", "backend", m.src.Name())
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return err
		}
	}
}

// Available reports whether a level can be read.
func (m *Microphone) Available() bool {
	return m.meter.Available()
}

// Level returns the latest level in [0,1].
func (m *Microphone) Level() float64 {
	return m.meter.Level()
}

// Source returns the underlying source, or nil.
func (m *Microphone) Source() Source {
	return m.src
}

// Close releases the source.
func (m *Microphone) Close() error {
	if m.src == nil {
		return nil
	}
	return m.src.Close()
}
