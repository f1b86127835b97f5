package behavior

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntroversion_ScoreStaysBounded(t *testing.T) {
	in := NewIntroversion(DefaultConfig())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10000; i++ {
		score := in.Update(rng.Float64(), rng.Intn(10) != 0)
		if score < MinScore || score > MaxScore {
			t.Fatalf("frame %d: score %v out of [0,100]", i, score)
		}
	}
}

func TestIntroversion_MonotonicResponse(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("loud decreases until floor", func(t *testing.T) {
		in := NewIntroversion(cfg)
		in.SetScore(10)
		prev := in.Score()
		for i := 0; i < 10; i++ {
			score := in.Update(0.5, true)
			assert.Less(t, score, prev, "frame %d", i)
			prev = score
		}
		assert.Equal(t, MinScore, in.Update(0.5, true))
	})

	t.Run("quiet increases until ceiling", func(t *testing.T) {
		in := NewIntroversion(cfg)
		in.SetScore(98)
		prev := in.Score()
		for i := 0; i < 10; i++ {
			score := in.Update(0.0, true)
			assert.Greater(t, score, prev, "frame %d", i)
			prev = score
		}
		for i := 0; i < 5; i++ {
			in.Update(0.0, true)
		}
		assert.Equal(t, MaxScore, in.Score())
	})

	t.Run("no signal holds", func(t *testing.T) {
		in := NewIntroversion(cfg)
		in.SetScore(42)
		assert.Equal(t, 42.0, in.Update(0.9, false))
	})

	t.Run("threshold itself counts as quiet", func(t *testing.T) {
		in := NewIntroversion(cfg)
		in.SetScore(50)
		assert.InDelta(t, 50.2, in.Update(cfg.SoundThreshold, true), 1e-9)
	})
}

func TestIntroversion_SpeedIsInverse(t *testing.T) {
	in := NewIntroversion(DefaultConfig())

	tests := []struct {
		score float64
		speed float64
	}{
		{0, 2.0},
		{20, 1.66},
		{50, 1.15},
		{100, 0.3},
	}

	for _, tc := range tests {
		in.SetScore(tc.score)
		assert.InDelta(t, tc.speed, in.Speed(), 1e-9, "score %v", tc.score)
	}
}

func TestIntroversion_Cadence(t *testing.T) {
	in := NewIntroversion(DefaultConfig())

	tests := []struct {
		score      float64
		walk, idle int
	}{
		{0, 2, 2},
		{50, 5, 7},
		{100, 8, 12},
	}

	for _, tc := range tests {
		in.SetScore(tc.score)
		assert.Equal(t, tc.walk, in.WalkDelay(), "walk at score %v", tc.score)
		assert.Equal(t, tc.idle, in.IdleDelay(), "idle at score %v", tc.score)
	}
}

func TestIntroversion_SetScoreClamps(t *testing.T) {
	in := NewIntroversion(DefaultConfig())
	in.SetScore(150)
	assert.Equal(t, MaxScore, in.Score())
	in.SetScore(-3)
	assert.Equal(t, MinScore, in.Score())
}
