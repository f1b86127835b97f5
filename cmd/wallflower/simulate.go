package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/sketch"
)

type simulateOptions struct {
	frames int
	script string
	nose   string
	start  float64
	every  int
	asJSON bool
}

func newSimulateCmd(a *app) *cobra.Command {
	o := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted session and print the trace",
		Example: `  wallflower simulate --script "0:0,120:0.8" --frames 400
  wallflower simulate --script "0:0" --start 260 --nose 400,0 --json`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{quietLogs: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return simulate(cmd.OutOrStdout(), a.cfg.Behavior, o)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.frames, "frames", "n", 600, "frames to run")
	f.StringVarP(&o.script, "script", "s", "0:0", `microphone cues "frame:level,...", level "none" for no mic`)
	f.StringVar(&o.nose, "nose", "", `fixed nose position "x,y" in canvas pixels`)
	f.Float64Var(&o.start, "start", 0, "starting depth (0 keeps the close bound)")
	f.IntVar(&o.every, "every", 1, "print every n-th frame")
	f.BoolVar(&o.asJSON, "json", false, "print frames as JSON lines")
	return cmd
}

func simulate(out io.Writer, cfg behavior.Config, o simulateOptions) error {
	if o.frames < 1 {
		return fmt.Errorf("frames must be positive")
	}
	if o.every < 1 {
		o.every = 1
	}

	script, err := sketch.ParseScript(o.script)
	if err != nil {
		return err
	}
	var faces behavior.FaceService
	if o.nose != "" {
		p, err := parsePoint(o.nose)
		if err != nil {
			return err
		}
		faces = &behavior.StaticFace{Point: p}
	}

	sprite := actor.NewSprite(actor.DefaultClips()...)
	sess, err := behavior.NewSession(cfg, script, faces, sprite)
	if err != nil {
		return err
	}
	if o.start != 0 {
		sess.PlaceActor(sess.Pose().X, o.start)
	}

	enc := jsoniter.NewEncoder(out)
	if !o.asJSON {
		fmt.Fprintf(out, "%6s  %-11s  %6s  %7s  %5s  %s\n", "tick", "state", "score", "depth", "scale", "animation")
	}

	runner := sketch.NewRunner(sess, sketch.WithAdvancer(sprite))
	for i := 0; i < o.frames; i++ {
		f := runner.StepOnce()
		if f.Tick%uint64(o.every) != 0 && i != o.frames-1 {
			continue
		}
		if o.asJSON {
			if err := enc.Encode(f); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%6d  %-11s  %6.1f  %7.2f  %5.2f  %s\n",
			f.Tick, f.State, f.Score, f.Pose.DepthY, f.Pose.Scale, f.Animation)
	}
	return nil
}

func parsePoint(s string) (behavior.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return behavior.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return behavior.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return behavior.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return behavior.Point{X: x, Y: y}, nil
}
