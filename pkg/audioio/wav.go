package audioio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is beep's interpolation quality (1-64); 4 is plenty for metering.
const resampleQuality = 4

// WAVSource replays a WAV recording at real-time pace, as if it were a live
// microphone. Files at another sample rate are resampled to Config.SampleRate.
type WAVSource struct {
	*pump

	genMu    sync.Mutex
	file     *os.File
	decoder  beep.StreamSeekCloser
	format   beep.Format
	streamer beep.Streamer
	frames   [][2]float64
}

// NewWAVSource opens cfg.Path and prepares it for playback.
func NewWAVSource(cfg Config, logger *slog.Logger) (*WAVSource, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	decoder, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, cfg.Path, err)
	}

	w := &WAVSource{
		file:    f,
		decoder: decoder,
		format:  format,
		frames:  make([][2]float64, cfg.BufferSize()),
	}
	w.pump = newPump(cfg, logger, string(BackendWAV), w.nextChunk)
	w.streamer = w.wrap()

	w.logger.Info("wav source opened",
		"path", cfg.Path,
		"file_rate", int(format.SampleRate),
		"file_channels", format.NumChannels,
		"frames", decoder.Len(),
	)
	return w, nil
}

// wrap resamples the decoder to the configured rate when needed.
func (w *WAVSource) wrap() beep.Streamer {
	target := beep.SampleRate(w.cfg.SampleRate)
	if w.format.SampleRate == target {
		return w.decoder
	}
	return beep.Resample(resampleQuality, w.format.SampleRate, target, w.decoder)
}

func (w *WAVSource) nextChunk() (AudioChunk, bool) {
	w.genMu.Lock()
	defer w.genMu.Unlock()

	n, ok := w.streamer.Stream(w.frames)
	if n == 0 || !ok {
		if !w.cfg.Loop {
			return AudioChunk{}, false
		}
		if err := w.decoder.Seek(0); err != nil {
			w.logger.Warn("wav rewind failed", "error", err)
			return AudioChunk{}, false
		}
		w.streamer = w.wrap()
		n, _ = w.streamer.Stream(w.frames)
	}
	return w.toChunk(w.frames[:n]), true
}

// toChunk converts beep's stereo float frames to interleaved PCM16.
func (w *WAVSource) toChunk(frames [][2]float64) AudioChunk {
	channels := w.cfg.Channels
	samples := make([]int16, len(frames)*channels)
	for i, fr := range frames {
		if channels == 1 {
			samples[i] = toPCM16((fr[0] + fr[1]) / 2)
			continue
		}
		samples[i*channels] = toPCM16(fr[0])
		samples[i*channels+1] = toPCM16(fr[1])
	}
	return AudioChunk{Samples: samples, SampleRate: w.cfg.SampleRate, Channels: channels}
}

func toPCM16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// Close stops playback and releases the file.
func (w *WAVSource) Close() error {
	if w.markClosed() {
		return nil
	}
	w.Stop()

	w.genMu.Lock()
	defer w.genMu.Unlock()
	_ = w.decoder.Close()
	if err := w.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// Ensure WAVSource implements SourceWithStats.
var _ SourceWithStats = (*WAVSource)(nil)
