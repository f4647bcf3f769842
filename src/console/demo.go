package console

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"monovator/src/config"
	"monovator/src/dispatch"
)

// RunDemo submits the scripted requests, waiting each step's delay first.
// It stops early when ctx is cancelled or the car has terminated.
func RunDemo(ctx context.Context, car Car, steps []config.DemoStep, p *Printer) error {
	slog.Info("Starting request simulation", "steps", len(steps))
	for _, step := range steps {
		if step.Delay > 0 {
			t := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil
			case <-t.C:
			}
		}
		ack, err := car.SubmitRequest(step.Floor)
		p.Ack(step.Floor, ack, err)
		if errors.Is(err, dispatch.ErrTerminated) {
			return nil
		}
	}
	slog.Info("Request simulation finished")
	return nil
}
