// Package runner drives a grid continuously and serializes every engine call
// made by the stepping loop and by input handlers.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
)

var (
	// ErrAlreadyRunning is returned by Start while a loop is active.
	ErrAlreadyRunning = errors.New("runner already running")
	// ErrStagnant ends a run that settled into a still life or short cycle.
	ErrStagnant = errors.New("grid is stagnant")
)

const defaultInterval = time.Second / 12

// Snapshot is a copy of the grid state taken under the runner's lock.
type Snapshot struct {
	Generation int
	Width      int
	Height     int
	Topology   model.Topology
	Alive      []model.Coordinate
	Stagnant   bool
}

// Population returns the number of live cells in the snapshot.
func (s Snapshot) Population() int { return len(s.Alive) }

// Runner owns a grid. All access goes through its mutex.
type Runner struct {
	mu               sync.Mutex
	grid             *model.Grid
	history          model.History
	interval         time.Duration
	stopOnStagnation bool
	onStep           func(Snapshot)

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterval sets the delay between generations.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithStopOnStagnation makes Run return ErrStagnant once the grid repeats.
func WithStopOnStagnation(stop bool) Option {
	return func(r *Runner) { r.stopOnStagnation = stop }
}

// WithOnStep registers a callback invoked after every generation of Run,
// outside the runner's lock.
func WithOnStep(fn func(Snapshot)) Option {
	return func(r *Runner) { r.onStep = fn }
}

// New wraps grid. The grid must not be used directly afterwards.
func New(grid *model.Grid, opts ...Option) *Runner {
	r := &Runner{grid: grid, interval: defaultInterval}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn with exclusive access to the grid. Cycle detection starts over
// since fn may have changed the cells.
func (r *Runner) Do(fn func(g *model.Grid)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.grid)
	r.history.Reset()
}

// View runs fn with exclusive access to the grid for reading.
func (r *Runner) View(fn func(g *model.Grid)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.grid)
}

// Toggle flips one cell.
func (r *Runner) Toggle(row, col int) {
	r.Do(func(g *model.Grid) { g.Toggle(row, col) })
}

// Resize resizes the grid.
func (r *Runner) Resize(width, height int) {
	r.Do(func(g *model.Grid) { g.Resize(width, height) })
}

// Clear kills every cell.
func (r *Runner) Clear() {
	r.Do(func(g *model.Grid) { g.Clear() })
}

// SetToroidal switches the grid topology.
func (r *Runner) SetToroidal(toroidal bool) {
	r.Do(func(g *model.Grid) { g.SetToroidal(toroidal) })
}

// Step advances one generation and returns the resulting state.
func (r *Runner) Step() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history.Record(r.grid)
	r.grid.Step()
	snap := r.snapshotLocked()
	snap.Stagnant = r.history.IsStagnant(r.grid)
	return snap
}

// Snapshot copies the current state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Runner) snapshotLocked() Snapshot {
	w, h := r.grid.Dimension()
	return Snapshot{
		Generation: r.grid.Generation(),
		Width:      w,
		Height:     h,
		Topology:   r.grid.Topology(),
		Alive:      r.grid.AlivePoints(),
	}
}

// Interval returns the delay between generations.
func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// SetInterval changes the delay between generations; a running loop picks it
// up on its next tick.
func (r *Runner) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.interval = d
	r.mu.Unlock()
}

// Run steps the grid on every tick until ctx is done, maxGenerations steps
// have been taken (0 means no limit), or the grid stagnates with
// stop-on-stagnation enabled.
func (r *Runner) Run(ctx context.Context, maxGenerations int) error {
	interval := r.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for steps := 0; maxGenerations == 0 || steps < maxGenerations; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		snap := r.Step()
		steps++
		if r.onStep != nil {
			r.onStep(snap)
		}
		if snap.Stagnant && r.stopOnStagnation {
			return errors.Wrapf(ErrStagnant, "[Run] generation %d", snap.Generation)
		}
		if d := r.Interval(); d != interval {
			interval = d
			ticker.Reset(interval)
		}
	}
	return nil
}

// Start runs the loop in the background until Stop or ctx is done.
func (r *Runner) Start(ctx context.Context) error {
	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	if r.runningLocked() {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel, r.done, r.err = cancel, done, nil
	go func() {
		defer close(done)
		err := r.Run(ctx, 0)
		r.loopMu.Lock()
		r.err = err
		r.loopMu.Unlock()
	}()
	return nil
}

// Stop cancels a background loop and waits for it to exit. It returns the
// loop's error, or nil when it was stopped by this call.
func (r *Runner) Stop() error {
	r.loopMu.Lock()
	cancel, done := r.cancel, r.done
	r.loopMu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	err := r.err
	r.cancel, r.done = nil, nil
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// Running reports whether a background loop is active.
func (r *Runner) Running() bool {
	r.loopMu.Lock()
	defer r.loopMu.Unlock()
	return r.runningLocked()
}

func (r *Runner) runningLocked() bool {
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}
