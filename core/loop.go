// Pulse-and-passthrough loop
// One non-blocking iteration relays any buffered serial bytes and advances the pulse generator
package core

// Loop multiplexes the byte relay and the pulse generator
type Loop struct {
	Variant Variant
	Pulse   *PulseGenerator
	Relay   *Relay // Nil when the variant has no relay

	iterations uint32
}

// NewLoop builds a loop for a variant.
// primary and secondary are only used when the variant relays; driver may be nil
// to use the registered GPIO driver.
func NewLoop(v Variant, driver GPIODriver, primary, secondary Channel) *Loop {
	l := &Loop{
		Variant: v,
		Pulse:   NewPulseGenerator(v.Pulse, v.Pin, v.Start, driver),
	}
	if v.Relay && primary != nil && secondary != nil {
		l.Relay = NewRelay(primary, secondary)
	}
	return l
}

// Init configures the pin and starts the pulse timing at now
func (l *Loop) Init(now uint32) error {
	SetTime(now)
	TimerInit()
	if err := l.Pulse.Init(now); err != nil {
		return err
	}
	l.iterations = 0
	RecordEvent(EvtBoot, now, uint32(variantIndex(l.Variant.Name)), 0)
	DebugPrintln("[LOOP] " + l.Variant.Name + " ready pin=" + utoa(uint32(l.Variant.Pin)))
	return nil
}

// Step runs one iteration at time now. It never blocks.
func (l *Loop) Step(now uint32) {
	SetTime(now)
	if l.Relay != nil {
		l.Relay.Poll()
	}

	pulses := l.Pulse.Pulses()
	l.Pulse.Poll(now)
	l.iterations++

	// One status line per completed pulse
	if debugEnabled && l.Pulse.Pulses() != pulses {
		DebugPrintln(l.Status())
	}
}

// Status summarizes pulses, uptime and relay counters in one log line
func (l *Loop) Status() string {
	line := "[LOOP] " + l.Variant.Name +
		" pulses=" + utoa(l.Pulse.Pulses()) +
		" uptime=" + utoa(GetUptime())
	if l.Relay != nil {
		stats := l.Relay.Stats()
		line += " relayed=" + utoa(stats.ToSecondary) + "/" + utoa(stats.ToPrimary) +
			" overruns=" + utoa(stats.PrimaryOverruns) + "/" + utoa(stats.SecondaryOverruns)
	}
	return line
}

// Run calls Step with the clock until stop is closed.
// yield is called between iterations and may be nil.
func (l *Loop) Run(clock func() uint32, yield func(), stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		l.Step(clock())

		if yield != nil {
			yield()
		}
	}
}

// Iterations returns the number of Step calls since Init
func (l *Loop) Iterations() uint32 {
	return l.iterations
}
