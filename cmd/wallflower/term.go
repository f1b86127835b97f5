package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teslashibe/go-wallflower/internal/config"
	"github.com/teslashibe/go-wallflower/internal/log"
	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/render"
	"github.com/teslashibe/go-wallflower/pkg/render/term"
	"github.com/teslashibe/go-wallflower/pkg/sketch"
)

func newTermCmd(a *app) *cobra.Command {
	var (
		audioSrc string
		decay    float64
	)

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the sketch in the terminal",
		Long: `Draw the corridor in the terminal. Space shouts, the mouse stands in
for a face. Use --audio wav or mock to listen to a file or tone instead
of the keyboard. Logs go only to --log-file while the screen is active.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{quietLogs: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerm(cmd.Context(), a.cfg, audioSrc, decay)
		},
	}

	f := cmd.Flags()
	f.StringVar(&audioSrc, "audio", "keyboard", "audio source: keyboard, wav, mock, none")
	f.Float64Var(&decay, "decay", 0.97, "per-frame fade of a keyboard shout")
	return cmd
}

func runTerm(ctx context.Context, cfg config.Config, audioSrc string, decay float64) error {
	input := render.NewInput(decay, cfg.Behavior.NoseKeypoint)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var audio behavior.AudioService = input
	if audioSrc != "keyboard" {
		audio, err = openAudio(ctx, g, cfg, audioSrc, nil, log.L())
		if err != nil {
			return err
		}
	}

	sprite := actor.NewSprite(actor.DefaultClips()...)
	sess, err := behavior.NewSession(cfg.Behavior, audio, input, sprite)
	if err != nil {
		return err
	}
	runner := sketch.NewRunner(sess,
		sketch.WithFPS(cfg.FPS),
		sketch.WithAdvancer(sprite),
		sketch.WithLogger(log.L()))

	g.Go(func() error { return ignoreCanceled(runner.Run(ctx)) })
	g.Go(func() error {
		defer cancel()
		view := term.NewView(screen, cfg.Behavior, input)
		return view.Run(ctx, runner, func() int { return sprite.Snapshot().Frame }, 30)
	})
	return g.Wait()
}
