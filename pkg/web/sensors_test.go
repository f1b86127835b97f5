package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

func TestBrowserSensors_StartsUnavailable(t *testing.T) {
	b := NewBrowserSensors(2)
	assert.False(t, b.Available())
	assert.Zero(t, b.Level())
	_, ok := b.Keypoint(2)
	assert.False(t, ok)
}

func TestBrowserSensors_HandleMessage(t *testing.T) {
	b := NewBrowserSensors(2)

	require.NoError(t, b.HandleMessage([]byte(`{"level":0.3,"nose":{"x":120,"y":40}}`)))
	assert.True(t, b.Available())
	assert.InDelta(t, 0.3, b.Level(), 1e-9)

	p, ok := b.Keypoint(2)
	require.True(t, ok)
	assert.Equal(t, behavior.Point{X: 120, Y: 40}, p)

	_, ok = b.Keypoint(0)
	assert.False(t, ok, "only the nose is reported")
}

func TestBrowserSensors_NullsMeanUnavailable(t *testing.T) {
	b := NewBrowserSensors(2)
	require.NoError(t, b.HandleMessage([]byte(`{"level":0.5,"nose":{"x":1,"y":1}}`)))

	require.NoError(t, b.HandleMessage([]byte(`{"level":null,"nose":null}`)))
	assert.False(t, b.Available())
	_, ok := b.Keypoint(2)
	assert.False(t, ok)
}

func TestBrowserSensors_Reset(t *testing.T) {
	b := NewBrowserSensors(2)
	require.NoError(t, b.HandleMessage([]byte(`{"level":0.9}`)))
	b.Reset()
	assert.False(t, b.Available())
}

func TestBrowserSensors_BadJSON(t *testing.T) {
	b := NewBrowserSensors(2)
	assert.Error(t, b.HandleMessage([]byte(`{"level":`)))
}

func TestBrowserSensors_DriveSession(t *testing.T) {
	b := NewBrowserSensors(behavior.DefaultConfig().NoseKeypoint)
	s, err := behavior.NewSession(behavior.DefaultConfig(), b, b, nil)
	require.NoError(t, err)

	f := s.Step()
	assert.False(t, f.Sound)
	assert.Equal(t, behavior.Holding, f.State)

	require.NoError(t, b.HandleMessage([]byte(`{"level":0.8,"nose":{"x":400,"y":300}}`)))
	f = s.Step()
	assert.True(t, f.Sound)
	require.NotNil(t, f.Cursor)
	assert.Equal(t, 400.0, f.Cursor.X)
}
