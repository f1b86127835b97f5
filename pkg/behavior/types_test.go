package behavior

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Text(t *testing.T) {
	for _, s := range []State{Holding, Approaching, Retreating} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s State
	assert.Error(t, s.UnmarshalText([]byte("dancing")))
}

func TestFrame_JSONOmitsMissingCursor(t *testing.T) {
	data, err := json.Marshal(Frame{State: Retreating, Animation: AnimBackward})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"retreating"`)
	assert.NotContains(t, string(data), "cursor")
}
