package dispatch

import (
	"monovator/src/timer"
	"monovator/src/types"

	"github.com/google/uuid"
)

// The functions in this file run on the engine goroutine only.

func (e *Engine) submit(floor int) types.Ack {
	c := &e.car
	ack := types.Ack{ID: uuid.New(), Floor: floor}

	switch {
	case floor == c.floor:
		ack.Outcome = types.OC_AlreadyThere
		e.logger.Info("Already at floor", "floor", floor, "request_id", ack.ID)
		return ack
	case floor == c.target || c.up.Contains(floor) || c.down.Contains(floor):
		ack.Outcome = types.OC_AlreadyPending
		e.logger.Debug("Floor already pending", "floor", floor, "request_id", ack.ID)
		return ack
	case floor > c.floor:
		ack.Dir = types.Up
	default:
		ack.Dir = types.Down
	}

	c.pending(ack.Dir).Insert(floor)
	ack.Outcome = types.OC_Queued
	e.logger.Info("Floor queued", "floor", floor, "set", ack.Dir, "request_id", ack.ID)
	e.emit(types.EV_Queued, floor)
	return ack
}

func (e *Engine) emergencyStop() {
	c := &e.car
	if c.state != types.Idle && c.state != types.Moving {
		return
	}
	if c.target != 0 {
		e.setTimer(timer.Stop)
		c.pending(c.dir).Insert(c.target)
		e.logger.Warn("Trip aborted", "floor", c.floor, "target", c.target)
		c.target = 0
	}
	c.state = types.EmergencyStopped
	e.logger.Warn("Emergency stop", "floor", c.floor)
	e.emit(types.EV_EmergencyStop, 0)
}

func (e *Engine) resume() {
	c := &e.car
	if c.state != types.EmergencyStopped {
		return
	}
	c.state = types.Idle
	e.logger.Info("Resuming after emergency stop", "floor", c.floor)
	e.emit(types.EV_Resumed, 0)
}

func (e *Engine) arrive() {
	c := &e.car
	if c.target == 0 {
		return
	}
	c.floor = c.target
	c.target = 0
	e.logger.Info("Reached floor", "floor", c.floor)
	e.emit(types.EV_Arrived, c.floor)
}

// sweep starts the next trip when the car is free to move. The current direction's
// set is exhausted in its iteration order before the direction is reversed. With both
// sets empty the car idles and keeps its direction.
func (e *Engine) sweep() {
	c := &e.car
	if c.target != 0 || (c.state != types.Idle && c.state != types.Moving) {
		return
	}

	if c.pending(c.dir).IsEmpty() {
		if c.pending(c.dir.Opposite()).IsEmpty() {
			if c.state != types.Idle {
				c.state = types.Idle
				e.logger.Debug("Idle", "floor", c.floor, "direction", c.dir)
			}
			return
		}
		c.dir = c.dir.Opposite()
		e.logger.Debug("Reversing", "direction", c.dir)
		e.emit(types.EV_Reversed, 0)
	}

	next, err := c.pending(c.dir).PopNearest()
	if err != nil {
		panic(err)
	}
	c.target = next
	c.state = types.Moving
	e.setTimer(timer.Start)
	e.logger.Info("Moving", "from", c.floor, "to", next, "direction", c.dir)
	e.emit(types.EV_Departed, next)
}

func (e *Engine) terminate(reason string) {
	c := &e.car
	if c.target != 0 {
		c.pending(c.dir).Insert(c.target)
		c.target = 0
	}
	c.state = types.Terminated
	e.publish()
	e.logger.Info("Dispatch engine stopped", "reason", reason, "floor", c.floor)
	e.emit(types.EV_Terminated, 0)
}
