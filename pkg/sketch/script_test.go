package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

func TestParseScript(t *testing.T) {
	s, err := ParseScript("120:0.8, 0:0 ,300:none")
	require.NoError(t, err)
	assert.Equal(t, []Cue{{0, 0}, {120, 0.8}, {300, -1}}, s.cues)
}

func TestParseScript_Errors(t *testing.T) {
	for _, in := range []string{"", "5", "x:1", "5:loud", " , "} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseScript(in)
			assert.Error(t, err)
		})
	}
}

func TestScript_ReplaysByFrame(t *testing.T) {
	s := NewScript(Cue{At: 2, Level: 0.5}, Cue{At: 4, Level: -1})

	type reading struct {
		avail bool
		level float64
	}
	var got []reading
	for i := 0; i < 6; i++ {
		a := s.Available()
		got = append(got, reading{a, s.Level()})
	}

	assert.Equal(t, []reading{
		{false, 0}, {false, 0},
		{true, 0.5}, {true, 0.5},
		{false, 0}, {false, 0},
	}, got)
}

func TestScript_DrivesSession(t *testing.T) {
	// Quiet, then a shout long enough to cross the panic threshold.
	script := NewScript(Cue{At: 0, Level: 0}, Cue{At: 10, Level: 1})
	sess, err := behavior.NewSession(behavior.DefaultConfig(), script, nil, nil)
	require.NoError(t, err)

	frames := NewRunner(sess).Steps(100)
	assert.Equal(t, behavior.Approaching, frames[5].State, "quiet and comfortable")
	assert.Equal(t, behavior.Holding, frames[20].State, "brave while loud above panic")
	assert.Equal(t, behavior.Retreating, frames[99].State)
}
