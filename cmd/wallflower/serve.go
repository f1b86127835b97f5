package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teslashibe/go-wallflower/internal/config"
	"github.com/teslashibe/go-wallflower/internal/log"
	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/audioio"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/face"
	"github.com/teslashibe/go-wallflower/pkg/face/detection"
	"github.com/teslashibe/go-wallflower/pkg/sketch"
	"github.com/teslashibe/go-wallflower/pkg/web"
)

// Sensor sources for serve.
const (
	sourceBrowser = "browser"
	sourceCamera  = "camera"
	sourceNone    = "none"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		audioSrc string
		faceSrc  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the sketch in the browser",
		Long: `Serve the canvas page on the configured address (127.0.0.1:8080 by default).

Audio comes from the page microphone (browser), a replayed WAV file (wav),
a synthetic tone (mock), or nowhere (none). Faces come from the page
(browser), a local camera with YuNet (camera), or nowhere (none).`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for _, flag := range []string{"host", "port"} {
				if err := a.v.BindPFlag("web."+flag, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			cfg, err := config.Decode(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a.cfg, audioSrc, faceSrc)
		},
	}

	f := cmd.Flags()
	f.String("host", config.DefaultHost, "listen host")
	f.Int("port", config.DefaultWebPort, "listen port")
	f.StringVar(&audioSrc, "audio", sourceBrowser, "audio source: browser, wav, mock, none")
	f.StringVar(&faceSrc, "face", sourceBrowser, "face source: browser, camera, none")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, audioSrc, faceSrc string) error {
	logger := log.L()
	srv := web.NewServer(cfg.Web.Addr(), cfg.Behavior, logger)
	g, ctx := errgroup.WithContext(ctx)

	audio, err := openAudio(ctx, g, cfg, audioSrc, srv.Sensors(), logger)
	if err != nil {
		return err
	}
	faces, err := openFace(ctx, g, cfg, faceSrc, srv.Sensors(), logger)
	if err != nil {
		return err
	}

	sprite := actor.NewSprite(actor.DefaultClips()...)
	sess, err := behavior.NewSession(cfg.Behavior, audio, faces, sprite)
	if err != nil {
		return err
	}
	runner := sketch.NewRunner(sess,
		sketch.WithFPS(cfg.FPS),
		sketch.WithAdvancer(sprite),
		sketch.WithSink(srv),
		sketch.WithLogger(logger))

	g.Go(func() error { return ignoreCanceled(runner.Run(ctx)) })
	g.Go(func() error { return srv.Run(ctx) })

	log.Info("wallflower serving", "url", "http://"+cfg.Web.Addr(), "audio", audioSrc, "face", faceSrc)
	return g.Wait()
}

func openAudio(ctx context.Context, g *errgroup.Group, cfg config.Config, src string, browser behavior.AudioService, logger *slog.Logger) (behavior.AudioService, error) {
	switch src {
	case sourceBrowser:
		return browser, nil
	case sourceNone:
		return nil, nil
	case string(audioio.BackendWAV), string(audioio.BackendMock):
		ac := cfg.Audio
		ac.Backend = audioio.Backend(src)
		mic, err := audioio.Open(ac, logger)
		if err != nil {
			return nil, fmt.Errorf("open audio: %w", err)
		}
		g.Go(func() error {
			defer mic.Close()
			return mic.Run(ctx)
		})
		return mic, nil
	default:
		return nil, fmt.Errorf("unknown audio source %q", src)
	}
}

func openFace(ctx context.Context, g *errgroup.Group, cfg config.Config, src string, browser behavior.FaceService, logger *slog.Logger) (behavior.FaceService, error) {
	switch src {
	case sourceBrowser:
		return browser, nil
	case sourceNone:
		return nil, nil
	case sourceCamera:
		fc := cfg.Face
		fc.CanvasWidth = cfg.Behavior.CanvasWidth
		fc.CanvasHeight = cfg.Behavior.CanvasHeight

		cam, err := face.OpenCamera(fc)
		if err != nil {
			return nil, err
		}
		det, err := detection.NewYuNet(fc.Detection, logger)
		if err != nil {
			cam.Close()
			return nil, fmt.Errorf("load face model: %w", err)
		}
		tracker, err := face.NewTracker(fc, cam, det, logger)
		if err != nil {
			cam.Close()
			det.Close()
			return nil, err
		}
		g.Go(func() error {
			defer cam.Close()
			defer det.Close()
			tracker.Run(ctx)
			return nil
		})
		return tracker, nil
	default:
		return nil, fmt.Errorf("unknown face source %q", src)
	}
}

func ignoreCanceled(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
