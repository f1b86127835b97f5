package sketch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

type collector struct {
	mu     sync.Mutex
	frames []behavior.Frame
}

func (c *collector) Publish(f behavior.Frame) {
	c.mu.Lock()
	c.frames = append(c.frames, f)
	c.mu.Unlock()
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func newSession(t *testing.T, level float64, a behavior.Actor) *behavior.Session {
	t.Helper()
	s, err := behavior.NewSession(behavior.DefaultConfig(), &behavior.StaticAudio{Value: level}, nil, a)
	require.NoError(t, err)
	return s
}

func TestRunner_StepsPublishToSinks(t *testing.T) {
	sink := &collector{}
	var direct []uint64
	r := NewRunner(newSession(t, 0, nil),
		WithSink(sink),
		WithSink(SinkFunc(func(f behavior.Frame) { direct = append(direct, f.Tick) })))

	frames := r.Steps(3)
	require.Len(t, frames, 3)
	assert.Equal(t, 3, sink.len())
	assert.Equal(t, []uint64{1, 2, 3}, direct)

	last, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(3), last.Tick)
}

func TestRunner_LatestEmptyBeforeFirstFrame(t *testing.T) {
	r := NewRunner(newSession(t, 0, nil))
	_, ok := r.Latest()
	assert.False(t, ok)
	assert.Equal(t, DefaultFPS, r.FPS())
	assert.NotEmpty(t, r.ID())
}

func TestRunner_AdvancesSprite(t *testing.T) {
	sprite := actor.NewSprite(actor.DefaultClips()...)
	r := NewRunner(newSession(t, 0, sprite), WithAdvancer(sprite))

	seen := map[int]bool{}
	for i := 0; i < 120; i++ {
		r.StepOnce()
		seen[sprite.Snapshot().Frame] = true
	}
	assert.Greater(t, len(seen), 1, "idle strip should play")
	assert.Equal(t, behavior.AnimIdle, sprite.Snapshot().Animation)
}

func TestRunner_PublishesSpriteFrame(t *testing.T) {
	sprite := actor.NewSprite(actor.DefaultClips()...)
	sink := &collector{}
	r := NewRunner(newSession(t, 0, sprite), WithAdvancer(sprite), WithSink(sink))

	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		f := r.StepOnce()
		require.Equal(t, sprite.Snapshot().Frame, f.SpriteFrame, "tick %d", f.Tick)
		seen[f.SpriteFrame] = true
	}
	assert.Greater(t, len(seen), 1)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	last := sink.frames[len(sink.frames)-1]
	assert.Equal(t, sprite.Snapshot().Frame, last.SpriteFrame)
}

func TestRunner_LoudRoomRetreats(t *testing.T) {
	r := NewRunner(newSession(t, 1, nil))
	// Still walking away: panic starts near frame 71 and the far wall is 260px off.
	frames := r.Steps(150)

	last := frames[len(frames)-1]
	assert.Equal(t, behavior.Retreating, last.State)
	assert.Equal(t, behavior.AnimBackward, last.Animation)
}

func TestRunner_Deterministic(t *testing.T) {
	a := NewRunner(newSession(t, 0.5, nil)).Steps(200)
	b := NewRunner(newSession(t, 0.5, nil)).Steps(200)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("runs diverged (-a +b):\n%s", diff)
	}
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &collector{}
	r := NewRunner(newSession(t, 0, nil), WithFPS(200), WithSink(sink))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.len() >= 3 }, time.Second, time.Millisecond)
	assert.ErrorIs(t, r.Run(ctx), ErrAlreadyRunning)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestWithFPS_IgnoresNonPositive(t *testing.T) {
	r := NewRunner(newSession(t, 0, nil), WithFPS(0))
	assert.Equal(t, DefaultFPS, r.FPS())
}
