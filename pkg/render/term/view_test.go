package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/render"
)

func newSimView(t *testing.T, input *render.Input) (*View, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)
	return NewView(s, behavior.DefaultConfig(), input), s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestView_DrawStatusLine(t *testing.T) {
	v, s := newSimView(t, nil)

	v.Draw(behavior.Frame{
		State: behavior.Retreating,
		Score: 12.5,
		Sound: true,
		Level: 0.4,
		Pose:  behavior.Pose{X: 400, DepthY: 400, Scale: 1},
	}, 0)

	status := row(s, 24)
	assert.Contains(t, status, "retreating")
	assert.Contains(t, status, "12.5")
	assert.Contains(t, status, "level 0.40")
}

func TestView_DrawActorAtPose(t *testing.T) {
	v, s := newSimView(t, nil)
	f := behavior.Frame{
		Animation: behavior.AnimIdle,
		Pose:      behavior.Pose{X: 400, DepthY: 520, Scale: 1.5},
	}
	v.Draw(f, 1)

	fx, fy := v.toCell(400, 520)
	r, _, _, _ := s.GetContent(fx, fy)
	assert.Equal(t, '|', r)

	r, _, _, _ = s.GetContent(fx, fy-1)
	assert.Equal(t, '#', r)
}

func TestView_CanvasCellRoundTrip(t *testing.T) {
	v, _ := newSimView(t, nil)
	p := v.toCanvas(40, 12)
	cx, cy := v.toCell(p.X, p.Y)
	assert.Equal(t, 40, cx)
	assert.Equal(t, 12, cy)
}

func TestView_HandleInput(t *testing.T) {
	in := render.NewInput(0.5, 2)
	v, _ := newSimView(t, in)

	assert.True(t, v.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, 1.0, in.Level())

	assert.True(t, v.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)))
	_, ok := in.Keypoint(2)
	assert.True(t, ok)

	assert.False(t, v.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, v.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}
