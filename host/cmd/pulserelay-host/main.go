package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulserelay/core"
	"pulserelay/host/bridge"
	"pulserelay/host/serial"
	"pulserelay/host/sim"
)

var (
	variantName = flag.String("variant", "pulse-relay", "Variant to run (blink, pulse, pulse-relay)")
	primary     = flag.String("primary", "/dev/ttyUSB0", "Primary (hardware) serial device")
	secondary   = flag.String("secondary", "/dev/ttyUSB1", "Secondary serial device standing in for the soft UART")
	baud        = flag.Int("baud", 0, "Baud rate for both channels (0 = variant default)")
	interval    = flag.Uint("interval", 0, "Pulse interval in ms (0 = variant default)")
	duration    = flag.Uint("duration", 0, "Pulse duration in ms (0 = variant default)")
	pin         = flag.Uint("pin", 0, "Output pin number reported in logs (0 = variant default)")
	noDelay     = flag.Bool("no-startup-delay", false, "Skip the variant's startup delay")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Fprintln(os.Stderr, "Pulse Relay Host - runs a firmware variant against host serial ports")

	variant, err := buildVariant()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	core.SetDebugWriter(func(s string) {
		fmt.Fprintf(os.Stderr, "%s %s\n", time.Now().Format("15:04:05.000"), s)
	})
	core.SetDebugEnabled(*verbose)

	var hw, sw *bridge.PortChannel
	if variant.Relay {
		hw, sw, err = openChannels(variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer hw.Close()
		defer sw.Close()
	}

	clock := sim.MillisClock(time.Now(), 0)
	gpio := sim.NewGPIO(clock)
	gpio.OnEdge(func(e sim.Edge) {
		fmt.Fprintf(os.Stderr, "%s pin %d -> %s at %d\n",
			time.Now().Format("15:04:05.000"), e.Pin, levelName(e.Level), e.Tick)
	})

	var loop *core.Loop
	if variant.Relay {
		loop = core.NewLoop(variant, gpio, hw, sw)
	} else {
		loop = core.NewLoop(variant, gpio, nil, nil)
	}

	if variant.StartupDelay > 0 && !*noDelay {
		time.Sleep(time.Duration(variant.StartupDelay) * time.Millisecond)
	}

	if err := loop.Init(clock()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start %s: %v\n", variant.Name, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Running %s: interval=%dms duration=%dms relay=%v\n",
		variant.Name, variant.Pulse.Interval, variant.Pulse.Duration, variant.Relay)

	stop := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		close(stop)
	}()

	loop.Run(clock, func() { time.Sleep(100 * time.Microsecond) }, stop)

	fmt.Fprintf(os.Stderr, "Stopped after %d iterations\n", loop.Iterations())
	fmt.Fprintln(os.Stderr, loop.Status())
	if *verbose {
		core.DumpEvents()
	}
}

// buildVariant applies the command line overrides to the selected variant
func buildVariant() (core.Variant, error) {
	v, err := core.VariantByName(*variantName)
	if err != nil {
		return v, fmt.Errorf("%w: %q", err, *variantName)
	}
	if *baud > 0 {
		v.Baud = uint32(*baud)
	}
	if *interval > 0 {
		v.Pulse.Interval = uint32(*interval)
	}
	if *duration > 0 {
		v.Pulse.Duration = uint32(*duration)
	}
	if *pin > 0 {
		v.Pin = core.GPIOPin(*pin)
	}
	if err := v.Pulse.Validate(); err != nil {
		return v, err
	}
	return v, nil
}

// openChannels opens both serial ports at the variant's baud rate.
// Bytes queued by the OS before startup are discarded.
func openChannels(v core.Variant) (*bridge.PortChannel, *bridge.PortChannel, error) {
	hwCfg := serial.DefaultConfig(*primary)
	hwCfg.Baud = int(v.Baud)
	hwPort, err := serial.Open(hwCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("primary channel: %w", err)
	}

	swCfg := serial.DefaultConfig(*secondary)
	swCfg.Baud = int(v.Baud)
	swPort, err := serial.Open(swCfg)
	if err != nil {
		hwPort.Close()
		return nil, nil, fmt.Errorf("secondary channel: %w", err)
	}

	for _, p := range []struct {
		name string
		port serial.Port
	}{{hwCfg.Device, hwPort}, {swCfg.Device, swPort}} {
		if err := p.port.Flush(); err != nil {
			hwPort.Close()
			swPort.Close()
			return nil, nil, fmt.Errorf("flush %s: %w", p.name, err)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "Opened %s at %d baud\n", p.name, v.Baud)
		}
	}

	return bridge.NewSerialChannel(hwPort, 0), bridge.NewSerialChannel(swPort, 0), nil
}

func levelName(level bool) string {
	if level {
		return "HIGH"
	}
	return "LOW"
}
