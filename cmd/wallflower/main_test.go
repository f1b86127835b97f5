package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "")
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "wallflower dev\n", out)
}

func TestSimulate_TraceTable(t *testing.T) {
	out, err := execute(t, "simulate", "--frames", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "state")
	assert.Contains(t, lines[1], "approaching")
	assert.Contains(t, lines[3], "520.00")
}

func TestSimulate_LoudRoomRetreatsAsJSON(t *testing.T) {
	out, err := execute(t, "simulate", "--script", "0:1", "--frames", "150", "--every", "50", "--json")
	require.NoError(t, err)

	var frames []behavior.Frame
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var f behavior.Frame
		require.NoError(t, jsoniter.Unmarshal(sc.Bytes(), &f))
		frames = append(frames, f)
	}
	require.Len(t, frames, 3)
	assert.Equal(t, behavior.Holding, frames[0].State)
	assert.Equal(t, behavior.Retreating, frames[2].State)
	assert.Less(t, frames[2].Pose.DepthY, 520.0)
}

func TestSimulate_StartFarWithNose(t *testing.T) {
	var out bytes.Buffer
	err := simulate(&out, behavior.DefaultConfig(), simulateOptions{
		frames: 1,
		script: "0:0",
		nose:   "400,0",
		start:  260,
		every:  1,
		asJSON: true,
	})
	require.NoError(t, err)

	var f behavior.Frame
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &f))
	require.NotNil(t, f.Cursor)
	assert.Equal(t, behavior.Approaching, f.State)
	assert.Greater(t, f.Pose.DepthY, 259.0)
}

func TestSimulate_BadInput(t *testing.T) {
	_, err := execute(t, "simulate", "--script", "nope")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "--nose", "12")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "--frames", "0")
	assert.Error(t, err)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 10, 20.5")
	require.NoError(t, err)
	assert.Equal(t, behavior.Point{X: 10, Y: 20.5}, p)
}

func TestRoot_RejectsInvalidEnv(t *testing.T) {
	t.Setenv("WALLFLOWER_FPS", "0")
	_, err := execute(t, "simulate", "--frames", "1")
	assert.Error(t, err)
}
