// Package web hosts the wallflower canvas page, streams frames to it and
// accepts microphone and face readings back from it.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/hub"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed static
var staticFS embed.FS

// Server is the browser host.
type Server struct {
	app    *fiber.App
	addr   string
	cfg    behavior.Config
	logger *slog.Logger

	frames  *hub.Hub
	sensors *hub.Hub
	browser *BrowserSensors

	mu     sync.RWMutex
	latest behavior.Frame
	has    bool
}

// NewServer creates a server that will listen on addr.
func NewServer(addr string, cfg behavior.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "web")

	s := &Server{
		addr:    addr,
		cfg:     cfg,
		logger:  logger,
		browser: NewBrowserSensors(cfg.NoseKeypoint),
	}
	s.frames = hub.New("frames", hub.WithLogger(logger))
	s.sensors = hub.New("sensors",
		hub.WithLogger(logger),
		hub.WithMessageHandler(s.onSensorMessage),
		hub.WithDisconnectHandler(s.onSensorDisconnect),
	)

	app := fiber.New(fiber.Config{
		AppName:               "wallflower",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/frame", s.handleFrame)
	api.Get("/config", s.handleConfig)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.serveWS(s.frames)))
	app.Get("/ws/sensors", websocket.New(s.serveWS(s.sensors)))

	static, _ := fs.Sub(staticFS, "static")
	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(static),
		Index: "index.html",
	}))

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Sensors returns the browser-fed audio and face service.
func (s *Server) Sensors() *BrowserSensors {
	return s.browser
}

// Publish stores f and broadcasts it to frame clients.
func (s *Server) Publish(f behavior.Frame) {
	s.mu.Lock()
	s.latest, s.has = f, true
	s.mu.Unlock()

	if s.frames.ClientCount() == 0 {
		return
	}
	if err := s.frames.BroadcastJSON(f); err != nil {
		s.logger.Warn("encode frame", "error", err)
	}
}

// Latest returns the last published frame.
func (s *Server) Latest() (behavior.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.has
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve starts the hubs and serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.frames.Run(ctx)
	go s.sensors.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("web host listening", "url", "http://"+ln.Addr().String())
		errc <- s.app.Listener(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}
}

func (s *Server) serveWS(h *hub.Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client, err := hub.NewClient(h, conn)
		if err != nil {
			conn.Close()
			return
		}
		client.Run()
	}
}

func (s *Server) onSensorMessage(c *hub.Client, data []byte) {
	if err := s.browser.HandleMessage(data); err != nil {
		s.logger.Debug("bad sensor message", "client", c.ID, "error", err)
	}
}

// onSensorDisconnect clears the readings once the last sensor page is gone;
// other pages keep feeding the session.
func (s *Server) onSensorDisconnect(c *hub.Client) {
	if n := s.sensors.ClientCount(); n > 0 {
		s.logger.Debug("sensor page left", "client", c.ID, "remaining", n)
		return
	}
	s.browser.Reset()
}
