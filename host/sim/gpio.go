// Package sim provides host-side stand-ins for the board: a GPIO driver that
// records every edge and clocks that feed the loop its tick counter.
package sim

import (
	"fmt"
	"sync"

	"pulserelay/core"
)

// Edge is one recorded pin write
type Edge struct {
	Pin   core.GPIOPin
	Level bool
	Tick  uint32
}

// GPIO is a core.GPIODriver that keeps pin levels in memory
type GPIO struct {
	clock func() uint32

	mu         sync.Mutex
	levels     map[core.GPIOPin]bool
	configured map[core.GPIOPin]bool
	edges      []Edge
	onEdge     func(Edge)
}

// NewGPIO creates a simulated GPIO bank. clock stamps each edge and may be nil.
func NewGPIO(clock func() uint32) *GPIO {
	if clock == nil {
		clock = core.GetTime
	}
	return &GPIO{
		clock:      clock,
		levels:     make(map[core.GPIOPin]bool),
		configured: make(map[core.GPIOPin]bool),
	}
}

// OnEdge registers a callback run for every level change
func (g *GPIO) OnEdge(fn func(Edge)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onEdge = fn
}

// ConfigureOutput marks a pin as an output
func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configured[pin] = true
	return nil
}

// SetPin records the level. Writing an unconfigured pin is an error.
func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	if !g.configured[pin] {
		g.mu.Unlock()
		return fmt.Errorf("pin %d is not configured as output", pin)
	}
	prev, seen := g.levels[pin]
	g.levels[pin] = value
	var edge *Edge
	if !seen || prev != value {
		e := Edge{Pin: pin, Level: value, Tick: g.clock()}
		g.edges = append(g.edges, e)
		edge = &e
	}
	fn := g.onEdge
	g.mu.Unlock()

	if edge != nil && fn != nil {
		fn(*edge)
	}
	return nil
}

// GetPin returns the last level written to pin
func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.configured[pin] {
		return false, fmt.Errorf("pin %d is not configured", pin)
	}
	return g.levels[pin], nil
}

// Edges returns a copy of every recorded level change
func (g *GPIO) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Edge(nil), g.edges...)
}
