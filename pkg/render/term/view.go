// Package term draws the wallflower corridor in a terminal.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/render"
)

// FrameSource yields the latest frame to draw.
type FrameSource interface {
	Latest() (behavior.Frame, bool)
}

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var animStyles = map[behavior.Animation]tcell.Style{
	behavior.AnimIdle:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	behavior.AnimForward:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	behavior.AnimBackward: tcell.StyleDefault.Foreground(tcell.ColorOrange),
}

// View renders frames onto a tcell screen.
type View struct {
	screen tcell.Screen
	cfg    behavior.Config
	input  *render.Input
}

// NewView wraps an initialized screen. input may be nil.
func NewView(screen tcell.Screen, cfg behavior.Config, input *render.Input) *View {
	return &View{screen: screen, cfg: cfg, input: input}
}

// toCell maps canvas coordinates to a cell. The last row is the status line.
func (v *View) toCell(x, y float64) (int, int) {
	w, h := v.screen.Size()
	rows := h - 1
	cx := int(x / v.cfg.CanvasWidth * float64(w))
	cy := int(y / v.cfg.CanvasHeight * float64(rows))
	return cx, cy
}

// toCanvas maps a cell back to canvas coordinates.
func (v *View) toCanvas(cx, cy int) behavior.Point {
	w, h := v.screen.Size()
	rows := max(h-1, 1)
	return behavior.Point{
		X: (float64(cx) + 0.5) / float64(w) * v.cfg.CanvasWidth,
		Y: (float64(cy) + 0.5) / float64(rows) * v.cfg.CanvasHeight,
	}
}

// Draw renders one frame. stripFrame animates the actor's feet.
func (v *View) Draw(f behavior.Frame, stripFrame int) {
	v.screen.Clear()
	v.corridor()
	v.actor(f, stripFrame)
	if f.Cursor != nil {
		cx, cy := v.toCell(f.Cursor.X, f.Cursor.Y)
		v.screen.SetContent(cx, cy, '+', nil, styleCursor)
	}
	v.status(f)
	v.screen.Show()
}

func (v *View) corridor() {
	w, _ := v.screen.Size()
	for _, y := range []float64{v.cfg.MinY, v.cfg.MaxY} {
		_, cy := v.toCell(0, y)
		for x := 0; x < w; x++ {
			v.screen.SetContent(x, cy, '-', nil, styleWall)
		}
	}
}

// actor draws a box anchored at its feet, sized by scale.
func (v *View) actor(f behavior.Frame, stripFrame int) {
	style, ok := animStyles[f.Animation]
	if !ok {
		style = tcell.StyleDefault
	}

	fx, fy := v.toCell(f.Pose.X, f.Pose.DepthY)
	bw := max(int(6*f.Pose.Scale), 1)
	bh := max(int(5*f.Pose.Scale), 1)

	for dy := 0; dy < bh; dy++ {
		for dx := 0; dx < bw; dx++ {
			v.screen.SetContent(fx-bw/2+dx, fy-bh+dy, '#', nil, style)
		}
	}
	feet := []rune{'/', '|', '\\', '|'}
	v.screen.SetContent(fx, fy, feet[stripFrame%len(feet)], nil, style)
}

func (v *View) status(f behavior.Frame) {
	_, h := v.screen.Size()
	mic := "no mic"
	if f.Sound {
		mic = fmt.Sprintf("level %.2f", f.Level)
	}
	line := fmt.Sprintf(" %-11s score %5.1f  %s  depth %5.1f  [space] shout  [q] quit",
		f.State, f.Score, mic, f.Pose.DepthY)
	for i, r := range line {
		v.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
}

// Run draws src at fps and handles input until ctx ends or the user quits.
// strip reports the sprite frame to draw; it may be nil.
func (v *View) Run(ctx context.Context, src FrameSource, strip func() int, fps int) error {
	if fps < 1 {
		fps = 30
	}
	v.screen.EnableMouse()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if f, ok := src.Latest(); ok {
				n := 0
				if strip != nil {
					n = strip()
				}
				v.Draw(f, n)
			}
		}
	}
}

// handle applies one event and returns false on quit.
func (v *View) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			if v.input != nil {
				v.input.Shout()
			}
		}
	case *tcell.EventMouse:
		if v.input != nil {
			x, y := ev.Position()
			v.input.Point(v.toCanvas(x, y))
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}
