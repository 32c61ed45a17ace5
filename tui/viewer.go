// Package tui is an interactive terminal front end for a runner-driven grid.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/runner"
	"github.com/sheikhrachel/gol-engine/utils"
)

const (
	cellWidth   = 2 // screen columns per grid cell
	statusLines = 1

	cellRune = '█'
	minSpeed = 1
	maxSpeed = 60
)

var (
	cellStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(66, 134, 244))
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// quit is posted as interrupt data to end the event loop.
type quit struct{}

// Viewer draws the grid and turns key, mouse and resize events into runner
// calls.
type Viewer struct {
	screen  tcell.Screen
	runner  *runner.Runner
	rng     *rand.Rand
	density float64
	speed   int
	stats   *utils.Stats

	ctx      context.Context
	pressed  bool
	lastStep time.Time
}

// New returns a viewer for r on an initialized screen.
func New(screen tcell.Screen, r *runner.Runner, cfg utils.Config) *Viewer {
	return &Viewer{
		screen:   screen,
		runner:   r,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		density:  cfg.RandomDensity,
		speed:    cfg.Speed,
		stats:    utils.NewStats(),
		ctx:      context.Background(),
		lastStep: time.Now(),
	}
}

// Notifier returns a runner step callback that wakes the viewer's event loop
// so background generations get drawn.
func Notifier(screen tcell.Screen) func(runner.Snapshot) {
	return func(s runner.Snapshot) {
		// A full queue drops the frame; the next one redraws everything.
		_ = screen.PostEvent(tcell.NewEventInterrupt(s))
	}
}

// CellAt translates a screen position into a grid coordinate.
func CellAt(x, y int) model.Coordinate {
	return model.Coordinate{Row: y, Col: x / cellWidth}
}

// GridSize returns how many cells fit on a screen of the given size.
func GridSize(screenWidth, screenHeight int) (width, height int) {
	return max(screenWidth/cellWidth, 0), max(screenHeight-statusLines, 0)
}

// Run draws and handles events until the user quits or ctx is done. A
// running background loop is stopped on return.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.ctx = ctx
	defer v.runner.Stop()

	go func() {
		<-ctx.Done()
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(quit{}))
	}()

	v.runner.Resize(GridSize(v.screen.Size()))
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one event. It returns false when the viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return v.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.pressed {
			v.toggleAt(ev.Position())
		}
		v.pressed = down

	case *tcell.EventResize:
		v.runner.Resize(GridSize(ev.Size()))
		v.screen.Sync()

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quit:
			return false
		case runner.Snapshot:
			v.recordStep(data)
		}
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		v.togglePlay()
	case 's':
		if !v.runner.Running() {
			v.recordStep(v.runner.Step())
		}
	case 'c':
		v.runner.Clear()
	case 'r':
		v.runner.Do(func(g *model.Grid) { g.Randomize(v.rng, v.density) })
	case 't':
		v.runner.SetToroidal(v.runner.Snapshot().Topology != model.Toroidal)
	case '+':
		v.setSpeed(v.speed + 1)
	case '-':
		v.setSpeed(v.speed - 1)
	}
	return true
}

func (v *Viewer) togglePlay() {
	if v.runner.Running() {
		_ = v.runner.Stop()
		return
	}
	v.lastStep = time.Now()
	_ = v.runner.Start(v.ctx)
}

func (v *Viewer) setSpeed(speed int) {
	v.speed = min(max(speed, minSpeed), maxSpeed)
	v.runner.SetInterval(utils.IntervalFor(v.speed))
}

// toggleAt flips the cell under a click. Cells only change while paused, and
// clicks outside the grid are ignored.
func (v *Viewer) toggleAt(x, y int) {
	if v.runner.Running() {
		return
	}
	p := CellAt(x, y)
	snap := v.runner.Snapshot()
	if p.Row >= snap.Height || p.Col >= snap.Width {
		return
	}
	v.runner.Toggle(p.Row, p.Col)
}

func (v *Viewer) recordStep(s runner.Snapshot) {
	now := time.Now()
	v.stats.Update(s.Generation, s.Population(), s.Width*s.Height, now.Sub(v.lastStep))
	v.lastStep = now
}

// Draw renders the current generation and the status line.
func (v *Viewer) Draw() {
	snap := v.runner.Snapshot()
	v.screen.Clear()

	for _, p := range snap.Alive {
		x := p.Col * cellWidth
		for dx := range cellWidth {
			v.screen.SetContent(x+dx, p.Row, cellRune, nil, cellStyle)
		}
	}

	_, h := v.screen.Size()
	state := "paused"
	if v.runner.Running() {
		state = "running"
	}
	status := fmt.Sprintf(" %s | %s | %dx%d | %d/s | gen %d | alive %d | space:play s:step c:clear r:random t:topology q:quit",
		state, snap.Topology, snap.Width, snap.Height, v.speed, snap.Generation, snap.Population())
	for i, ch := range []rune(status) {
		v.screen.SetContent(i, h-1, ch, nil, statusStyle)
	}
	v.screen.Show()
}

// Stats returns the viewer's running statistics.
func (v *Viewer) Stats() *utils.Stats {
	return v.stats
}
