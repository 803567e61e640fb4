package core

// StartLevel is the pin level applied at Init, before the first transition
type StartLevel uint8

const (
	StartHigh  StartLevel = iota // Drive HIGH at startup
	StartLow                     // Drive LOW at startup
	StartUnset                   // Configure as output but leave the level alone
)

// Default timing and wiring shared by the pulse variants
const (
	DefaultPin           GPIOPin = 8
	DefaultPulseInterval uint32  = 270000 // 4.5 minutes
	DefaultPulseDuration uint32  = 1000
	DefaultRelayBaud     uint32  = 115200
	DefaultConsoleBaud   uint32  = 9600
	DefaultSoftRX        GPIOPin = 10
	DefaultSoftTX        GPIOPin = 11
)

// Variant bundles the compile-time configuration of one firmware build
type Variant struct {
	Name  string
	Pin   GPIOPin
	Pulse PulseConfig
	Start StartLevel

	// StartupDelay is waited once before the loop begins, in ticks
	StartupDelay uint32

	// Relay enables the byte relay between the hardware UART and the soft UART
	Relay  bool
	Baud   uint32
	SoftRX GPIOPin
	SoftTX GPIOPin
}

var (
	// VariantBlink holds the pin LOW for one second out of every minute,
	// starting with a pulse straight after a two second boot delay.
	VariantBlink = Variant{
		Name: "blink",
		Pin:  DefaultPin,
		Pulse: PulseConfig{
			Interval:    59000,
			Duration:    1000,
			IdleLevel:   true,
			FireOnStart: true,
		},
		Start:        StartUnset,
		StartupDelay: 2000,
		Baud:         DefaultConsoleBaud,
	}

	// VariantPulse holds the pin HIGH and pulls it LOW briefly every interval
	VariantPulse = Variant{
		Name: "pulse",
		Pin:  DefaultPin,
		Pulse: PulseConfig{
			Interval:  DefaultPulseInterval,
			Duration:  DefaultPulseDuration,
			IdleLevel: true,
		},
		Start: StartHigh,
		Baud:  DefaultConsoleBaud,
	}

	// VariantPulseRelay is VariantPulse plus the serial passthrough
	VariantPulseRelay = Variant{
		Name: "pulse-relay",
		Pin:  DefaultPin,
		Pulse: PulseConfig{
			Interval:  DefaultPulseInterval,
			Duration:  DefaultPulseDuration,
			IdleLevel: true,
		},
		Start:  StartHigh,
		Relay:  true,
		Baud:   DefaultRelayBaud,
		SoftRX: DefaultSoftRX,
		SoftTX: DefaultSoftTX,
	}
)

// Variants lists the known variants in a stable order
func Variants() []Variant {
	return []Variant{VariantBlink, VariantPulse, VariantPulseRelay}
}

// VariantByName looks up a variant by its Name
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, ErrUnknownVariant
}

// variantIndex returns the position of a variant in Variants, or -1
func variantIndex(name string) int {
	for i, v := range Variants() {
		if v.Name == name {
			return i
		}
	}
	return -1
}
