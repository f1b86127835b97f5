package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

func newTestServer() *Server {
	return NewServer("127.0.0.1:0", behavior.DefaultConfig(), nil)
}

func get(t *testing.T, s *Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestServer_IndexPage(t *testing.T) {
	resp, body := get(t, newTestServer(), "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<canvas")
	assert.Contains(t, string(body), "/ws/sensors")
	assert.Contains(t, string(body), "sprite_frame")
}

func TestServer_Config(t *testing.T) {
	resp, body := get(t, newTestServer(), "/api/config")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cfg behavior.Config
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, behavior.DefaultConfig(), cfg)
}

func TestServer_FrameBeforeAndAfterPublish(t *testing.T) {
	s := newTestServer()

	resp, _ := get(t, s, "/api/frame")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s.Publish(behavior.Frame{Tick: 4, State: behavior.Retreating, Animation: behavior.AnimBackward, SpriteFrame: 3})

	resp, body := get(t, s, "/api/frame")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"tick":4`)
	assert.Contains(t, string(body), `"animation":"backward"`)
	assert.Contains(t, string(body), `"sprite_frame":3`)

	f, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(4), f.Tick)
}

func TestServer_WebsocketRequiresUpgrade(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/ws/frames", "/ws/sensors"} {
		resp, _ := get(t, s, path)
		assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode, path)
	}
}

