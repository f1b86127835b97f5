package web

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
)

const wsWait = 2 * time.Second

// serveTest runs a server on a loopback port and returns its ws:// base URL.
func serveTest(t *testing.T) (*Server, string) {
	t.Helper()
	s := newTestServer()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return s, "ws://" + ln.Addr().String()
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

func TestServer_SensorsDriveSessionAndFramesStream(t *testing.T) {
	s, base := serveTest(t)
	sess, err := behavior.NewSession(s.cfg, s.Sensors(), s.Sensors(), nil)
	require.NoError(t, err)

	frames := dial(t, base+"/ws/frames")
	sensors := dial(t, base+"/ws/sensors")
	require.Eventually(t, func() bool {
		return s.frames.ClientCount() == 1 && s.sensors.ClientCount() == 1
	}, wsWait, 10*time.Millisecond)

	send(t, sensors, `{"level":0.5,"nose":{"x":400,"y":150}}`)
	require.Eventually(t, s.Sensors().Available, wsWait, 10*time.Millisecond)

	f := sess.Step()
	assert.True(t, f.Sound)
	assert.InDelta(t, 0.5, f.Level, 1e-9)
	require.NotNil(t, f.Cursor)
	s.Publish(f)

	require.NoError(t, frames.SetReadDeadline(time.Now().Add(wsWait)))
	_, data, err := frames.ReadMessage()
	require.NoError(t, err)

	var got behavior.Frame
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, f.Tick, got.Tick)
	assert.Equal(t, f.State, got.State)
	assert.True(t, got.Sound)
	require.NotNil(t, got.Cursor)
	assert.InDelta(t, f.Cursor.X, got.Cursor.X, 1e-9)
	assert.InDelta(t, f.Cursor.Y, got.Cursor.Y, 1e-9)
}

func TestServer_SensorsKeptWhileAnotherPageConnected(t *testing.T) {
	s, base := serveTest(t)

	first := dial(t, base+"/ws/sensors")
	second := dial(t, base+"/ws/sensors")
	require.Eventually(t, func() bool { return s.sensors.ClientCount() == 2 }, wsWait, 10*time.Millisecond)

	send(t, first, `{"level":0.3}`)
	require.Eventually(t, s.Sensors().Available, wsWait, 10*time.Millisecond)

	require.NoError(t, second.Close())
	require.Eventually(t, func() bool { return s.sensors.ClientCount() == 1 }, wsWait, 10*time.Millisecond)
	assert.True(t, s.Sensors().Available())
	assert.InDelta(t, 0.3, s.Sensors().Level(), 1e-9)

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool { return !s.Sensors().Available() }, wsWait, 10*time.Millisecond)
}
