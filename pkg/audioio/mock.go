package audioio

import (
	"log/slog"
	"math"
	"sync"
)

// MockSource is a mock audio source for testing.
// It generates synthetic audio (silence or sine wave) whose amplitude can be
// changed while running, to script quiet and loud stretches.
type MockSource struct {
	*pump

	genMu     sync.Mutex
	phase     float64
	frequency float64 // Hz, 0 = silence
	amplitude float64 // 0.0 to 1.0
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithSineWave configures the mock to generate a sine wave.
func WithSineWave(frequency, amplitude float64) MockSourceOption {
	return func(m *MockSource) {
		m.frequency = frequency
		m.amplitude = amplitude
	}
}

// NewMockSource creates a new mock audio source.
func NewMockSource(cfg Config, logger *slog.Logger, opts ...MockSourceOption) *MockSource {
	m := &MockSource{
		frequency: cfg.MockFrequency,
		amplitude: cfg.MockAmplitude,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.pump = newPump(cfg, logger, string(BackendMock), m.generateChunk)
	return m
}

// SetAmplitude changes the sine amplitude; 0 produces silence.
func (m *MockSource) SetAmplitude(amplitude float64) {
	m.genMu.Lock()
	m.amplitude = amplitude
	m.genMu.Unlock()
}

// SetFrequency changes the sine frequency; 0 produces silence.
func (m *MockSource) SetFrequency(frequency float64) {
	m.genMu.Lock()
	m.frequency = frequency
	m.genMu.Unlock()
}

func (m *MockSource) generateChunk() (AudioChunk, bool) {
	m.genMu.Lock()
	defer m.genMu.Unlock()

	cfg := m.cfg
	bufferSize := cfg.BufferSize()
	samples := make([]int16, bufferSize*cfg.Channels)

	if m.frequency > 0 && m.amplitude > 0 {
		for i := 0; i < bufferSize; i++ {
			sample := m.amplitude * math.Sin(2*math.Pi*m.frequency*m.phase/float64(cfg.SampleRate))
			sampleInt := int16(sample * 32767)

			for ch := 0; ch < cfg.Channels; ch++ {
				samples[i*cfg.Channels+ch] = sampleInt
			}

			m.phase++
			if m.phase >= float64(cfg.SampleRate) {
				m.phase = 0
			}
		}
	}

	return AudioChunk{
		Samples:    samples,
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
	}, true
}

// Close stops generation; the source cannot be restarted.
func (m *MockSource) Close() error {
	if m.markClosed() {
		return nil
	}
	return m.Stop()
}

// Ensure MockSource implements SourceWithStats.
var _ SourceWithStats = (*MockSource)(nil)
