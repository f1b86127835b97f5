// Package audioio provides microphone capture and loudness metering.
//
// This package supports multiple backends:
//   - WAV - replays a recorded microphone take from disk
//   - Mock - CI/Testing without hardware (silence or a sine wave)
//
// A LevelMeter turns any Source into the non-blocking level reading the
// behavior loop polls once per frame.
package audioio

import (
	"fmt"
	"time"
)

// Backend represents the audio backend type.
type Backend string

const (
	// BackendAuto selects WAV when a path is configured, mock otherwise.
	BackendAuto Backend = "auto"
	// BackendWAV replays a WAV file as if it were live microphone input.
	BackendWAV Backend = "wav"
	// BackendMock uses a synthetic generator for testing.
	BackendMock Backend = "mock"
	// BackendNone disables the microphone entirely.
	BackendNone Backend = "none"
)

// Config holds audio configuration.
type Config struct {
	// Backend specifies which audio backend to use.
	// Default: "auto"
	Backend Backend `mapstructure:"backend" json:"backend"`

	// SampleRate is the audio sample rate in Hz.
	// Default: 16000
	SampleRate int `mapstructure:"sample_rate" json:"sample_rate"`

	// Channels is the number of audio channels.
	// Default: 1 (mono)
	Channels int `mapstructure:"channels" json:"channels"`

	// BufferDuration is the size of audio buffers.
	// Default: 20ms (320 samples at 16kHz)
	BufferDuration time.Duration `mapstructure:"buffer_duration" json:"buffer_duration"`

	// Path is the WAV file replayed by the WAV backend.
	Path string `mapstructure:"path" json:"path"`

	// Loop restarts the WAV file when it ends.
	Loop bool `mapstructure:"loop" json:"loop"`

	// Smoothing blends each new level with the previous one.
	// 0 = raw RMS per chunk, 0.9 = very smooth.
	Smoothing float64 `mapstructure:"smoothing" json:"smoothing"`

	// Mock generator settings (BackendMock only).
	MockFrequency float64 `mapstructure:"mock_frequency" json:"mock_frequency"`
	MockAmplitude float64 `mapstructure:"mock_amplitude" json:"mock_amplitude"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendAuto,
		SampleRate:     16000,
		Channels:       1, // Mono
		BufferDuration: 20 * time.Millisecond,
		Loop:           true,
		Smoothing:      0.0,
		MockAmplitude:  0.5,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("buffer_duration must be positive, got %v", c.BufferDuration)
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		return fmt.Errorf("smoothing must be in [0,1), got %v", c.Smoothing)
	}
	if c.Backend == BackendWAV && c.Path == "" {
		return fmt.Errorf("wav backend requires a path")
	}
	return nil
}

// BufferSize returns the number of samples per buffer.
func (c *Config) BufferSize() int {
	return int(float64(c.SampleRate) * c.BufferDuration.Seconds())
}
