// Periodic pulse generation
// Drives one output pin away from its idle level for a fixed duration once per interval
package core

// PulseState is the phase of the pulse cycle
type PulseState uint8

const (
	PulseIdle    PulseState = iota // Pin held at idle level, waiting for the interval
	PulsePulsing                   // Pin held at active level, waiting for the duration
)

func (s PulseState) String() string {
	switch s {
	case PulseIdle:
		return "IDLE"
	case PulsePulsing:
		return "PULSING"
	default:
		return "UNKNOWN"
	}
}

// PulseConfig holds the fixed timing of a pulse generator
type PulseConfig struct {
	Interval uint32 // Ticks from the end of one pulse to the start of the next
	Duration uint32 // Ticks the pin spends at the active level

	// IdleLevel is the level held between pulses (true=HIGH).
	// The pulse drives the opposite level.
	IdleLevel bool

	// FireOnStart makes the first pulse start on the first poll
	// instead of one interval after Init.
	FireOnStart bool
}

// Validate checks that the timing can produce a pulse
func (c PulseConfig) Validate() error {
	if c.Interval == 0 || c.Duration == 0 {
		return ErrInvalidPulse
	}
	return nil
}

// ActiveLevel returns the level driven while pulsing
func (c PulseConfig) ActiveLevel() bool {
	return !c.IdleLevel
}

// PulseTimer is the mutable timing state of a pulse generator.
// The zero value is IDLE with the last pulse ending at tick 0.
type PulseTimer struct {
	LastPulse  uint32 // Time the previous pulse ended
	PulseStart uint32 // Time the current pulse started
	Pulsing    bool
}

// State returns the phase encoded by the timer
func (t PulseTimer) State() PulseState {
	if t.Pulsing {
		return PulsePulsing
	}
	return PulseIdle
}

// Level returns the pin level implied by the timer under this config
func (c PulseConfig) Level(t PulseTimer) bool {
	if t.Pulsing {
		return c.ActiveLevel()
	}
	return c.IdleLevel
}

// Tick advances the state machine to time now.
// It returns the new timer, the pin level to hold, and whether a transition fired.
// At most one transition fires per call; all comparisons use wrapping subtraction.
func (c PulseConfig) Tick(t PulseTimer, now uint32) (PulseTimer, bool, bool) {
	if !t.Pulsing {
		if Reached(now, t.LastPulse, c.Interval) {
			t.Pulsing = true
			t.PulseStart = now
			return t, c.ActiveLevel(), true
		}
		return t, c.IdleLevel, false
	}

	if Reached(now, t.PulseStart, c.Duration) {
		t.Pulsing = false
		t.LastPulse = now
		return t, c.IdleLevel, true
	}
	return t, c.ActiveLevel(), false
}

// PulseGenerator applies a PulseConfig to a GPIO pin
type PulseGenerator struct {
	Config PulseConfig
	Pin    GPIOPin
	Start  StartLevel

	timer  PulseTimer
	driver GPIODriver
	level  bool
	driven bool   // False until the pin has been written once
	pulses uint32 // Completed pulses
}

// NewPulseGenerator creates a generator for pin.
// A nil driver falls back to the globally registered GPIO driver at Init.
func NewPulseGenerator(cfg PulseConfig, pin GPIOPin, start StartLevel, driver GPIODriver) *PulseGenerator {
	return &PulseGenerator{
		Config: cfg,
		Pin:    pin,
		Start:  start,
		driver: driver,
	}
}

// Init configures the pin and applies the startup level.
// now becomes the reference point for the first interval.
func (g *PulseGenerator) Init(now uint32) error {
	if err := g.Config.Validate(); err != nil {
		return err
	}
	if g.driver == nil {
		g.driver = MustGPIO()
	}

	if err := g.driver.ConfigureOutput(g.Pin); err != nil {
		return err
	}

	g.timer = PulseTimer{LastPulse: now}
	if g.Config.FireOnStart {
		g.timer.LastPulse = now - g.Config.Interval
	}
	g.pulses = 0
	g.level = false
	g.driven = false

	switch g.Start {
	case StartHigh:
		return g.write(true)
	case StartLow:
		return g.write(false)
	}
	// StartUnset leaves the pin wherever the hardware reset it;
	// read it back so Level reports what the pin actually shows
	if level, err := g.driver.GetPin(g.Pin); err == nil {
		g.level = level
	}
	return nil
}

// Poll advances the generator to time now and writes the pin on a transition.
// A failed pin write is ignored; the level is retried on the next transition.
func (g *PulseGenerator) Poll(now uint32) {
	next, level, changed := g.Config.Tick(g.timer, now)
	g.timer = next
	if !changed {
		return
	}

	if next.Pulsing {
		RecordEvent(EvtPulseStart, now, uint32(g.Pin), g.pulses)
	} else {
		g.pulses++
		RecordEvent(EvtPulseEnd, now, uint32(g.Pin), g.pulses)
	}
	_ = g.write(level)

	if debugEnabled {
		DebugPrintln("[PULSE] " + next.State().String() + " pin=" + utoa(uint32(g.Pin)) +
			" level=" + levelString(level) + " t=" + utoa(now))
	}
}

func (g *PulseGenerator) write(level bool) error {
	if err := g.driver.SetPin(g.Pin, level); err != nil {
		return err
	}
	g.level = level
	g.driven = true
	return nil
}

// Timer returns a copy of the timing state
func (g *PulseGenerator) Timer() PulseTimer {
	return g.timer
}

// State returns the current phase
func (g *PulseGenerator) State() PulseState {
	return g.timer.State()
}

// Level returns the last level written (or read back at Init for StartUnset)
// and whether the pin has been written at all
func (g *PulseGenerator) Level() (level bool, driven bool) {
	return g.level, g.driven
}

// Pulses returns the number of completed pulses since Init
func (g *PulseGenerator) Pulses() uint32 {
	return g.pulses
}
