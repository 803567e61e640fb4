package sim

import (
	"math"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"pulserelay/core"
)

func TestGPIORecordsEdges(t *testing.T) {
	c := qt.New(t)
	clock := NewManualClock(0)
	gpio := NewGPIO(clock.Now)

	c.Assert(gpio.SetPin(8, true), qt.ErrorMatches, "pin 8 is not configured as output")
	c.Assert(gpio.ConfigureOutput(8), qt.IsNil)

	c.Assert(gpio.SetPin(8, true), qt.IsNil)
	c.Assert(gpio.SetPin(8, true), qt.IsNil) // same level, no edge
	clock.Advance(5)
	c.Assert(gpio.SetPin(8, false), qt.IsNil)

	c.Assert(gpio.Edges(), qt.DeepEquals, []Edge{
		{Pin: 8, Level: true, Tick: 0},
		{Pin: 8, Level: false, Tick: 5},
	})

	level, err := gpio.GetPin(8)
	c.Assert(err, qt.IsNil)
	c.Assert(level, qt.IsFalse)

	_, err = gpio.GetPin(9)
	c.Assert(err, qt.IsNotNil)
}

func TestLoopOnSimulatedBoard(t *testing.T) {
	c := qt.New(t)

	start := uint32(math.MaxUint32 - 1000)
	clock := NewManualClock(start)
	gpio := NewGPIO(clock.Now)

	var seen []Edge
	gpio.OnEdge(func(e Edge) { seen = append(seen, e) })

	loop := core.NewLoop(core.VariantPulse, gpio, nil, nil)
	c.Assert(loop.Init(clock.Now()), qt.IsNil)

	for i := 0; i < 545000; i++ {
		loop.Step(clock.Advance(1))
	}

	c.Assert(gpio.Edges(), qt.DeepEquals, []Edge{
		{Pin: 8, Level: true, Tick: start},
		{Pin: 8, Level: false, Tick: start + 270000},
		{Pin: 8, Level: true, Tick: start + 271000},
		{Pin: 8, Level: false, Tick: start + 541000},
		{Pin: 8, Level: true, Tick: start + 542000},
	})
	c.Assert(seen, qt.HasLen, 5)
}

func TestMillisClock(t *testing.T) {
	c := qt.New(t)
	clock := MillisClock(time.Now().Add(-1500*time.Millisecond), math.MaxUint32-999)
	// 1500ms after an offset 1000 ticks before the wrap point
	c.Assert(clock() >= 500, qt.IsTrue)
	c.Assert(clock() < 10000, qt.IsTrue)
}
