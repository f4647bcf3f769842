// Package console is the line-oriented operator interface: the command menu,
// the scripted demo and human-readable output of engine activity.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"monovator/src/dispatch"
	"monovator/src/types"
)

// Car is the part of the dispatch engine the console drives.
type Car interface {
	SubmitRequest(floor int) (types.Ack, error)
	TriggerEmergencyStop()
	Resume()
	Shutdown()
	Status() types.Status
}

// Printer serializes output from the menu, the demo and the engine goroutine.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// Ack reports the result of a floor request.
func (p *Printer) Ack(floor int, ack types.Ack, err error) {
	switch {
	case errors.Is(err, dispatch.ErrInvalidFloor):
		p.Printf("Invalid floor request.\n")
	case errors.Is(err, dispatch.ErrTerminated):
		p.Printf("Elevator has stopped, request for floor %d ignored.\n", floor)
	case err != nil:
		p.Printf("Request for floor %d failed: %v\n", floor, err)
	case ack.Outcome == types.OC_AlreadyThere:
		p.Printf("Elevator is already at floor %d.\n", floor)
	case ack.Outcome == types.OC_AlreadyPending:
		p.Printf("Floor %d is already requested.\n", floor)
	default:
		p.Printf("Floor %d added to %s requests.\n", floor, strings.ToLower(ack.Dir.String()))
	}
}

// Event prints engine events. It is meant to be passed to dispatch.WithEventHandler.
func (p *Printer) Event(ev types.Event) {
	switch ev.Kind {
	case types.EV_Departed:
		p.Printf("Moving from floor %d to floor %d.\n", ev.Floor, ev.Target)
	case types.EV_Arrived:
		p.Printf("Reached floor %d.\n", ev.Floor)
	case types.EV_Reversed:
		p.Printf("Direction changed to %s.\n", ev.Dir)
	case types.EV_EmergencyStop:
		p.Printf("Emergency stop triggered! Elevator stopping immediately.\n")
	case types.EV_Resumed:
		p.Printf("Elevator resuming from emergency stop.\n")
	case types.EV_Terminated:
		p.Printf("Elevator has stopped.\n")
	}
}

func (p *Printer) Status(s types.Status) {
	p.Printf("%s", FormatStatus(s))
}

func FormatStatus(s types.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Elevator %s is currently at floor %d.\n", s.CarID, s.Floor)
	fmt.Fprintf(&sb, "Direction: %s\n", s.Dir)
	if s.Target != 0 {
		fmt.Fprintf(&sb, "State: %s (to floor %d)\n", s.State, s.Target)
	} else {
		fmt.Fprintf(&sb, "State: %s\n", s.State)
	}
	fmt.Fprintf(&sb, "Pending up: %v | down: %v\n", s.PendingUp, s.PendingDown)
	return sb.String()
}
