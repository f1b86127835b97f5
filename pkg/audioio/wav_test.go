package audioio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTone records a short sine take to a temp WAV file.
func writeTone(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	sine, err := generators.SineTone(rate, 440)
	require.NoError(t, err)

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(rate.N(d), sine), format))
	return path
}

func TestWAVSource_Replays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendWAV
	cfg.Path = writeTone(t, 16000, 200*time.Millisecond)
	cfg.BufferDuration = 5 * time.Millisecond
	cfg.Loop = false

	src, err := NewSource(cfg, nil)
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, "wav", src.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, src.Start(ctx))

	chunk, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.BufferSize(), len(chunk.Samples))
	assert.Greater(t, chunk.RMS(), 0.3)

	// Without looping the stream ends after the take.
	chunks := 1
	for {
		if _, err := src.Read(ctx); err != nil {
			break
		}
		chunks++
	}
	assert.LessOrEqual(t, chunks, 41)
}

func TestWAVSource_Resamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendWAV
	cfg.Path = writeTone(t, 8000, 100*time.Millisecond)
	cfg.BufferDuration = 10 * time.Millisecond

	src, err := NewWAVSource(cfg, nil)
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, src.Start(ctx))

	chunk, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.SampleRate, chunk.SampleRate)
	assert.Equal(t, cfg.BufferSize(), len(chunk.Samples))
}

func TestWAVSource_RejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	cfg := DefaultConfig()
	cfg.Path = path
	_, err := NewWAVSource(cfg, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
