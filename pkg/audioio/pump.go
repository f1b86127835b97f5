package audioio

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// pump runs the capture lifecycle shared by all backends: a ticker paced at
// BufferDuration pulls chunks from next and offers them on a buffered channel.
type pump struct {
	cfg    Config
	logger *slog.Logger
	name   string
	next   func() (AudioChunk, bool)

	mu       sync.Mutex
	running  bool
	closed   bool
	streamCh chan AudioChunk
	stopCh   chan struct{}

	chunksRead  atomic.Int64
	samplesRead atomic.Int64
	overruns    atomic.Int64
}

func newPump(cfg Config, logger *slog.Logger, name string, next func() (AudioChunk, bool)) *pump {
	if logger == nil {
		logger = slog.Default()
	}
	return &pump{
		cfg:      cfg,
		logger:   logger,
		name:     name,
		next:     next,
		streamCh: make(chan AudioChunk, 10),
		stopCh:   make(chan struct{}),
	}
}

// Start begins producing chunks.
func (p *pump) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.running {
		return nil
	}

	p.running = true
	p.stopCh = make(chan struct{})
	p.streamCh = make(chan AudioChunk, 10)

	go p.loop(ctx, p.stopCh, p.streamCh)

	p.logger.Info("audio source started",
		"backend", p.name,
		"sample_rate", p.cfg.SampleRate,
		"buffer_ms", p.cfg.BufferDuration.Milliseconds(),
	)
	return nil
}

func (p *pump) loop(ctx context.Context, stopCh chan struct{}, streamCh chan AudioChunk) {
	ticker := time.NewTicker(p.cfg.BufferDuration)
	defer ticker.Stop()
	// Only the loop sends, so only the loop closes.
	defer close(streamCh)

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-stopCh:
			return
		case <-ticker.C:
			chunk, ok := p.next()
			if !ok {
				p.logger.Info("audio source exhausted", "backend", p.name)
				p.Stop()
				return
			}
			select {
			case streamCh <- chunk:
				p.chunksRead.Add(1)
				p.samplesRead.Add(int64(len(chunk.Samples)))
			default:
				p.overruns.Add(1)
				p.logger.Debug("audio source buffer full, dropping chunk", "backend", p.name)
			}
		}
	}
}

// Stop halts production; the stream closes once the loop exits.
func (p *pump) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}
	p.running = false
	close(p.stopCh)

	p.logger.Info("audio source stopped", "backend", p.name)
	return nil
}

// Read returns the next chunk, or io.EOF once stopped.
func (p *pump) Read(ctx context.Context) (AudioChunk, error) {
	p.mu.Lock()
	ch := p.streamCh
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return AudioChunk{}, ctx.Err()
	case chunk, ok := <-ch:
		if !ok {
			return AudioChunk{}, io.EOF
		}
		return chunk, nil
	}
}

// Stream returns the chunk channel of the current run.
func (p *pump) Stream() <-chan AudioChunk {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamCh
}

// Config returns the audio configuration.
func (p *pump) Config() Config {
	return p.cfg
}

// Name returns the backend name.
func (p *pump) Name() string {
	return p.name
}

// markClosed flags the pump closed and reports whether it already was.
func (p *pump) markClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	was := p.closed
	p.closed = true
	return was
}

// Stats returns source statistics.
func (p *pump) Stats() SourceStats {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	return SourceStats{
		ChunksRead:  p.chunksRead.Load(),
		SamplesRead: p.samplesRead.Load(),
		Overruns:    p.overruns.Load(),
		Running:     running,
		Backend:     p.name,
	}
}
