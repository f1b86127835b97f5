// Package desktop shows the wallflower sketch in an ebiten window.
package desktop

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/teslashibe/go-wallflower/pkg/actor"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/render"
)

const (
	figureW = 60
	figureH = 120
)

var (
	colorBackground = color.RGBA{27, 27, 27, 255}
	colorWall       = color.RGBA{70, 70, 70, 255}
	colorCursor     = color.RGBA{238, 238, 85, 255}
	colorEye        = color.RGBA{17, 17, 17, 255}
)

var animColors = map[behavior.Animation]color.RGBA{
	behavior.AnimIdle:     {119, 170, 153, 255},
	behavior.AnimForward:  {153, 187, 221, 255},
	behavior.AnimBackward: {221, 153, 119, 255},
}

// Stepper advances the control loop one frame.
type Stepper interface {
	StepOnce() behavior.Frame
}

// Game implements ebiten.Game. Each Update is one control-loop tick, so
// the session runs at ebiten's TPS.
type Game struct {
	cfg    behavior.Config
	loop   Stepper
	sprite *actor.Sprite
	input  *render.Input
	debug  bool

	frame   behavior.Frame
	stepped bool
}

// NewGame wires a stepper to the window. sprite and input may be nil.
func NewGame(cfg behavior.Config, loop Stepper, sprite *actor.Sprite, input *render.Input) *Game {
	return &Game{cfg: cfg, loop: loop, sprite: sprite, input: input}
}

// Update reads input and steps the loop.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	if g.input != nil {
		if ebiten.IsKeyPressed(ebiten.KeySpace) {
			g.input.Shout()
		}
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			g.input.Point(behavior.Point{X: float64(x), Y: float64(y)})
		} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.input.Forget()
		}
	}

	g.frame = g.loop.StepOnce()
	g.stepped = true
	return nil
}

// Draw renders the corridor, the figure and the cursor.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawCorridor(screen)
	if !g.stepped {
		return
	}

	g.drawFigure(screen)
	if c := g.frame.Cursor; c != nil {
		vector.StrokeCircle(screen, float32(c.X), float32(c.Y), 6, 1.5, colorCursor, true)
	}

	mic := "no mic"
	if g.frame.Sound {
		mic = fmt.Sprintf("level %.2f", g.frame.Level)
	}
	msg := fmt.Sprintf("%s  score %.1f  %s\n[space] shout  [mouse] face  [q] quit",
		g.frame.State, g.frame.Score, mic)
	if g.debug {
		msg += fmt.Sprintf("\nFPS: %.1f TPS: %.1f\ndepth %.1f scale %.2f delay %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.frame.Pose.DepthY, g.frame.Pose.Scale, g.frame.FrameDelay)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawCorridor(screen *ebiten.Image) {
	w := float32(g.cfg.CanvasWidth)
	h := float32(g.cfg.CanvasHeight)
	vp := render.Vanishing(g.cfg, 40)

	vector.StrokeLine(screen, 0, h, float32(vp.X), float32(vp.Y), 1, colorWall, true)
	vector.StrokeLine(screen, w, h, float32(vp.X), float32(vp.Y), 1, colorWall, true)
	for _, y := range []float64{g.cfg.MinY, (g.cfg.MinY + g.cfg.MaxY) / 2, g.cfg.MaxY} {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, colorWall, false)
	}
}

func (g *Game) drawFigure(screen *ebiten.Image) {
	b := render.ActorBox(g.frame.Pose, figureW, figureH)
	clr, ok := animColors[g.frame.Animation]
	if !ok {
		clr = color.RGBA{170, 170, 170, 255}
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, true)

	// Eye band bobs with the strip frame.
	bob := 0.0
	if g.sprite != nil && g.sprite.Snapshot().Frame%2 == 1 {
		bob = 2 * g.frame.Pose.Scale
	}
	vector.DrawFilledRect(screen,
		float32(b.X+b.W/4), float32(b.Y+b.H*0.2+bob),
		float32(b.W/2), float32(b.H/8), colorEye, true)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.CanvasWidth), int(g.cfg.CanvasHeight)
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string, tps int) error {
	ebiten.SetWindowSize(int(g.cfg.CanvasWidth), int(g.cfg.CanvasHeight))
	ebiten.SetWindowTitle(title)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
