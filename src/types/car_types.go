package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Direction is the sweep direction of the car. The zero value is not a valid direction.
type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// CarState is the explicit state tag of the dispatch engine.
type CarState int

const (
	Idle CarState = iota
	Moving
	EmergencyStopped
	Terminated
)

func (s CarState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case EmergencyStopped:
		return "EmergencyStopped"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("CarState(%d)", int(s))
}

// Status is a point-in-time snapshot of the car.
type Status struct {
	CarID       string
	Floor       int
	Dir         Direction
	State       CarState
	Target      int // Floor in transit to, 0 when the car is standing
	PendingUp   []int
	PendingDown []int
}

type Outcome int

const (
	OC_Queued Outcome = iota
	OC_AlreadyThere
	OC_AlreadyPending
)

func (o Outcome) String() string {
	switch o {
	case OC_Queued:
		return "Queued"
	case OC_AlreadyThere:
		return "AlreadyThere"
	case OC_AlreadyPending:
		return "AlreadyPending"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Ack acknowledges an accepted floor request.
type Ack struct {
	ID      uuid.UUID
	Floor   int
	Outcome Outcome
	Dir     Direction // Set the floor was queued into, only meaningful for OC_Queued
}

type EventKind int

const (
	EV_Queued EventKind = iota
	EV_Departed
	EV_Arrived
	EV_Reversed
	EV_EmergencyStop
	EV_Resumed
	EV_Terminated
)

func (k EventKind) String() string {
	switch k {
	case EV_Queued:
		return "Queued"
	case EV_Departed:
		return "Departed"
	case EV_Arrived:
		return "Arrived"
	case EV_Reversed:
		return "Reversed"
	case EV_EmergencyStop:
		return "EmergencyStop"
	case EV_Resumed:
		return "Resumed"
	case EV_Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is emitted by the engine goroutine on every state change worth reporting.
type Event struct {
	Kind   EventKind
	Floor  int
	Target int
	Dir    Direction
}
