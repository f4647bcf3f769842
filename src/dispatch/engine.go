// Package dispatch implements the single-car sweep dispatcher.
//
// All car state is owned by the goroutine running Engine.Run. The public methods
// may be called from any goroutine; each one is turned into a command that the
// engine goroutine executes between sweeps.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"monovator/src/config"
	"monovator/src/requests"
	"monovator/src/timer"
	"monovator/src/types"

	"github.com/tiendc/go-deepcopy"
)

// car is only touched by the engine goroutine.
type car struct {
	floor  int
	dir    types.Direction
	state  types.CarState
	target int
	up     *requests.Set
	down   *requests.Set
}

func (c *car) pending(dir types.Direction) *requests.Set {
	if dir == types.Down {
		return c.down
	}
	return c.up
}

// carCmd is executed by the engine goroutine, which closes done once the
// command has been applied and the resulting status published.
type carCmd struct {
	Exec func()
	done chan struct{}
}

type Engine struct {
	carID       string
	totalFloors int
	travel      time.Duration
	logger      *slog.Logger
	onEvent     func(types.Event)

	car         car
	runCtx      context.Context
	timerAction chan<- timer.TimerAction

	cmds     chan carCmd
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	running  atomic.Bool
	status   atomic.Pointer[types.Status]
}

type Option func(*Engine)

// WithEventHandler registers fn to receive every engine event. fn runs on the
// engine goroutine and must not call back into the engine.
func WithEventHandler(fn func(types.Event)) Option {
	return func(e *Engine) { e.onEvent = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	e := &Engine{
		carID:       cfg.CarID,
		totalFloors: cfg.NumFloors,
		travel:      cfg.TravelDuration,
		logger:      slog.Default(),
		car: car{
			floor: cfg.StartFloor,
			dir:   types.Up,
			state: types.Idle,
			up:    requests.New(types.Up),
			down:  requests.New(types.Down),
		},
		cmds: make(chan carCmd),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("car", e.carID)
	e.publish()
	return e, nil
}

// Run is the engine loop. It returns after Shutdown or when ctx is cancelled; either is final.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(e.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	travelTimeout, timerAction := timer.Init(ctx, e.travel)
	e.runCtx = ctx
	e.timerAction = timerAction

	e.logger.Info("Dispatch engine started", "floors", e.totalFloors, "floor", e.car.floor, "travel", e.travel)
	for {
		// Termination wins over queued commands.
		select {
		case <-e.quit:
			e.terminate("shutdown requested")
			return nil
		case <-ctx.Done():
			e.terminate("context cancelled")
			return nil
		default:
		}

		select {
		case <-e.quit:
			e.terminate("shutdown requested")
			return nil
		case <-ctx.Done():
			e.terminate("context cancelled")
			return nil
		case cmd := <-e.cmds:
			cmd.Exec()
			e.sweep()
			e.publish()
			close(cmd.done)
		case <-travelTimeout:
			e.arrive()
			e.sweep()
			e.publish()
		}
	}
}

// exec hands fn to the engine goroutine and waits until it has been applied.
// It reports false if the engine has terminated or is shutting down.
func (e *Engine) exec(fn func()) bool {
	cmd := carCmd{Exec: fn, done: make(chan struct{})}
	select {
	case e.cmds <- cmd:
	case <-e.quit:
		return false
	case <-e.done:
		return false
	}
	<-cmd.done
	return true
}

// SubmitRequest asks the car to visit floor. Out-of-range floors return an error wrapping
// ErrInvalidFloor and leave the engine untouched. Requests are accepted while emergency
// stopped and served after Resume.
func (e *Engine) SubmitRequest(floor int) (types.Ack, error) {
	if floor < 1 || floor > e.totalFloors {
		e.logger.Warn("Rejected floor request", "floor", floor)
		return types.Ack{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidFloor, floor, e.totalFloors)
	}
	var ack types.Ack
	if !e.exec(func() { ack = e.submit(floor) }) {
		return types.Ack{}, ErrTerminated
	}
	return ack, nil
}

// TriggerEmergencyStop freezes the car where it is. A trip in progress is aborted and its target kept pending.
func (e *Engine) TriggerEmergencyStop() {
	e.exec(e.emergencyStop)
}

// Resume continues serving requests after an emergency stop. It has no effect in any other state.
func (e *Engine) Resume() {
	e.exec(e.resume)
}

// Shutdown terminates the engine permanently. It does not wait for Run to return; use Done for that.
func (e *Engine) Shutdown() {
	e.quitOnce.Do(func() { close(e.quit) })
}

// Done is closed when Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Status returns a copy of the most recently published snapshot.
func (e *Engine) Status() types.Status {
	snapshot := new(types.Status)
	if err := deepcopy.Copy(snapshot, e.status.Load()); err != nil {
		panic(err)
	}
	return *snapshot
}

// setTimer drives the travel timer. The timer goroutine is gone once the run context is done.
func (e *Engine) setTimer(action timer.TimerAction) {
	select {
	case e.timerAction <- action:
	case <-e.runCtx.Done():
	}
}

func (e *Engine) publish() {
	c := &e.car
	e.status.Store(&types.Status{
		CarID:       e.carID,
		Floor:       c.floor,
		Dir:         c.dir,
		State:       c.state,
		Target:      c.target,
		PendingUp:   c.up.Floors(),
		PendingDown: c.down.Floors(),
	})
}

func (e *Engine) emit(kind types.EventKind, target int) {
	if e.onEvent == nil {
		return
	}
	e.onEvent(types.Event{Kind: kind, Floor: e.car.floor, Target: target, Dir: e.car.dir})
}
