package audioio

import (
	"fmt"
	"log/slog"
)

// NewSource creates a new audio source with the given configuration.
// BackendAuto selects WAV when a path is set and mock otherwise.
func NewSource(cfg Config, logger *slog.Logger) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	backend := ResolveBackend(cfg)

	logger.Info("creating audio source",
		"backend", backend,
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
		"buffer_ms", cfg.BufferDuration.Milliseconds(),
	)

	switch backend {
	case BackendMock:
		return NewMockSource(cfg, logger), nil
	case BackendWAV:
		return NewWAVSource(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// ResolveBackend returns the concrete backend cfg selects.
func ResolveBackend(cfg Config) Backend {
	if cfg.Backend != BackendAuto && cfg.Backend != "" {
		return cfg.Backend
	}
	if cfg.Path != "" {
		return BackendWAV
	}
	return BackendMock
}

// AvailableBackends returns the list of selectable backends.
func AvailableBackends() []Backend {
	return []Backend{BackendAuto, BackendWAV, BackendMock, BackendNone}
}
