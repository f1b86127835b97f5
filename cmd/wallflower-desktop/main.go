// Command wallflower-desktop shows the sketch in a native window.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teslashibe/go-wallflower/internal/config"
	"github.com/teslashibe/go-wallflower/internal/log"
	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/audioio"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/render"
	"github.com/teslashibe/go-wallflower/pkg/render/desktop"
	"github.com/teslashibe/go-wallflower/pkg/sketch"
)

func main() {
	var (
		cfgFile  string
		audioSrc string
		decay    float64
	)

	cmd := &cobra.Command{
		Use:           "wallflower-desktop",
		Short:         "Show the wallflower sketch in a window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			log.Setup(cfg.Log)
			return run(cmd.Context(), cfg, audioSrc, decay)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.DefaultFile+")")
	cmd.Flags().StringVar(&audioSrc, "audio", "keyboard", "audio source: keyboard, wav, mock")
	cmd.Flags().Float64Var(&decay, "decay", 0.97, "per-frame fade of a keyboard shout")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run blocks on the window; ebiten must own the main goroutine.
func run(ctx context.Context, cfg config.Config, audioSrc string, decay float64) error {
	input := render.NewInput(decay, cfg.Behavior.NoseKeypoint)

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var audio behavior.AudioService = input
	if audioSrc != "keyboard" {
		ac := cfg.Audio
		ac.Backend = audioio.Backend(audioSrc)
		mic, err := audioio.Open(ac, log.L())
		if err != nil {
			return fmt.Errorf("open audio: %w", err)
		}
		defer mic.Close()
		g.Go(func() error { return mic.Run(ctx) })
		audio = mic
	}

	sprite := actor.NewSprite(actor.DefaultClips()...)
	sess, err := behavior.NewSession(cfg.Behavior, audio, input, sprite)
	if err != nil {
		return err
	}
	runner := sketch.NewRunner(sess, sketch.WithAdvancer(sprite), sketch.WithLogger(log.L()))

	game := desktop.NewGame(cfg.Behavior, runner, sprite, input)
	werr := desktop.Run(game, "wallflower", cfg.FPS)
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	return werr
}
