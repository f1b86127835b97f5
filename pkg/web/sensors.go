package web

import (
	"fmt"
	"sync"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

// SensorMessage is what the browser pushes on /ws/sensors. A missing
// level means the microphone is not authorized; a missing nose means no face.
type SensorMessage struct {
	Level *float64        `json:"level"`
	Nose  *behavior.Point `json:"nose"`
}

// BrowserSensors holds the latest readings pushed by the page. It serves
// as both the audio and the face service of a session.
type BrowserSensors struct {
	noseIndex int

	mu       sync.RWMutex
	level    float64
	hasLevel bool
	nose     behavior.Point
	hasNose  bool
}

// NewBrowserSensors reports the nose for keypoint noseIndex.
func NewBrowserSensors(noseIndex int) *BrowserSensors {
	return &BrowserSensors{noseIndex: noseIndex}
}

// Update replaces the readings with m.
func (b *BrowserSensors) Update(m SensorMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hasLevel = m.Level != nil
	b.level = 0
	if b.hasLevel {
		b.level = *m.Level
	}
	b.hasNose = m.Nose != nil
	if b.hasNose {
		b.nose = *m.Nose
	}
}

// HandleMessage decodes a raw sensor message and applies it.
func (b *BrowserSensors) HandleMessage(data []byte) error {
	var m SensorMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode sensor message: %w", err)
	}
	b.Update(m)
	return nil
}

// Reset marks both sensors unavailable, e.g. when the page disconnects.
func (b *BrowserSensors) Reset() {
	b.Update(SensorMessage{})
}

// Available reports whether the page has sent a microphone level.
func (b *BrowserSensors) Available() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hasLevel
}

// Level returns the last microphone level.
func (b *BrowserSensors) Level() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.level
}

// Keypoint returns the nose for the configured index while a face is present.
func (b *BrowserSensors) Keypoint(index int) (behavior.Point, bool) {
	if index != b.noseIndex {
		return behavior.Point{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nose, b.hasNose
}

var (
	_ behavior.AudioService = (*BrowserSensors)(nil)
	_ behavior.FaceService  = (*BrowserSensors)(nil)
)
