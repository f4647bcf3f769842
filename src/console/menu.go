package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const menuText = `
Menu:
1. Request floor (request <floor>)
2. Check elevator status (status)
3. Trigger emergency stop (emergency)
4. Resume from emergency (resume)
5. Return to specific floor (return <floor>)
6. Quit (quit)
`

type Menu struct {
	car       Car
	numFloors int
	in        io.Reader
	p         *Printer

	// Command waiting for its floor on the next line.
	awaiting string
}

func NewMenu(car Car, numFloors int, in io.Reader, p *Printer) *Menu {
	return &Menu{car: car, numFloors: numFloors, in: in, p: p}
}

// Run reads commands line by line until quit, end of input or ctx is cancelled.
// quit shuts the car down.
func (m *Menu) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(m.in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	m.p.Printf("%s", menuText)
	m.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read command: %w", err)
				}
				return nil
			}
			if m.handle(line) {
				return nil
			}
			m.prompt()
		}
	}
}

func (m *Menu) prompt() {
	if m.awaiting != "" {
		m.p.Printf("Enter the floor number (1 to %d): ", m.numFloors)
		return
	}
	m.p.Printf("Enter command: ")
}

// handle executes one input line and reports whether the menu should stop.
func (m *Menu) handle(line string) bool {
	fields := strings.Fields(line)
	if m.awaiting != "" {
		m.awaiting = ""
		if len(fields) == 0 {
			m.p.Printf("Invalid floor request.\n")
			return false
		}
		m.request(fields[0])
		return false
	}
	if len(fields) == 0 {
		return false
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "request", "return":
		if len(fields) < 2 {
			m.awaiting = cmd
			return false
		}
		m.request(fields[1])
	case "status":
		m.p.Status(m.car.Status())
	case "emergency":
		m.car.TriggerEmergencyStop()
	case "resume":
		m.car.Resume()
	case "help":
		m.p.Printf("%s", menuText)
	case "quit":
		m.p.Printf("Stopping elevator as requested.\n")
		m.car.Shutdown()
		return true
	default:
		m.p.Printf("Invalid command.\n")
	}
	return false
}

func (m *Menu) request(arg string) {
	floor, err := strconv.Atoi(arg)
	if err != nil {
		m.p.Printf("Invalid floor request.\n")
		return
	}
	ack, err := m.car.SubmitRequest(floor)
	m.p.Ack(floor, ack, err)
}
