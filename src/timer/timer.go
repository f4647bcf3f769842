package timer

import (
	"context"
	"log/slog"
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Init starts a stopped timer goroutine for the given duration and returns its timeout and action channels.
// The goroutine exits when ctx is cancelled.
func Init(ctx context.Context, duration time.Duration) (<-chan bool, chan<- TimerAction) {
	timeout := make(chan bool)
	action := make(chan TimerAction)
	t := time.NewTimer(duration)
	stopTimer(t)
	go Timer(ctx, t, duration, timeout, action)
	return timeout, action
}

// Timer restarts t on Start and cancels it on Stop. An expiry is delivered on timeout unless
// a Stop or Start arrives first, so the owner never sees a timeout from a cancelled run.
func Timer(ctx context.Context, t *time.Timer, duration time.Duration, timeout chan<- bool, action <-chan TimerAction) {
	var expired chan<- bool
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case a := <-action:
			expired = nil
			switch a {
			case Start:
				resetTimer(t, duration)
			case Stop:
				stopTimer(t)
			}
		case <-t.C:
			expired = timeout
			slog.Debug("Timer timed out")
		case expired <- true:
			expired = nil
		}
	}
}

// Stops the timer and drains a pending expiry.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, duration time.Duration) {
	stopTimer(t)
	t.Reset(duration)
}
