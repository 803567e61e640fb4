// Byte relay between two serial channels
package core

// Channel is a byte stream that can be polled without blocking.
// TinyGo's machine.UART satisfies it directly.
type Channel interface {
	// Buffered returns the number of bytes ready to read
	Buffered() int

	// ReadByte reads one buffered byte
	ReadByte() (byte, error)

	// WriteByte transmits one byte
	WriteByte(c byte) error
}

// Drain forwards bytes from src to dst until src reports nothing buffered.
// A read error ends the drain as if src were empty; a write error drops that byte.
// It returns the number of bytes read from src.
func Drain(src, dst Channel) int {
	n := 0
	for src.Buffered() > 0 {
		b, err := src.ReadByte()
		if err != nil {
			break
		}
		n++
		_ = dst.WriteByte(b)
	}
	return n
}

// OverrunCounter is implemented by channels that can lose received bytes
// before the relay gets to read them
type OverrunCounter interface {
	Overruns() uint32
}

// RelayStats holds cumulative relay counters
type RelayStats struct {
	ToSecondary uint32 // Bytes forwarded primary -> secondary
	ToPrimary   uint32 // Bytes forwarded secondary -> primary

	// Bytes lost inside each channel's receive buffer, when the channel reports it
	PrimaryOverruns   uint32
	SecondaryOverruns uint32
}

// Relay forwards bytes in both directions between a primary and a secondary channel
type Relay struct {
	Primary   Channel // Hardware serial
	Secondary Channel // Software-emulated serial

	stats RelayStats
}

// NewRelay creates a relay between two channels
func NewRelay(primary, secondary Channel) *Relay {
	return &Relay{
		Primary:   primary,
		Secondary: secondary,
	}
}

// Poll drains primary into secondary, then secondary into primary.
// It returns the byte counts forwarded in each direction.
func (r *Relay) Poll() (toSecondary, toPrimary int) {
	toSecondary = Drain(r.Primary, r.Secondary)
	if toSecondary > 0 {
		r.stats.ToSecondary += uint32(toSecondary)
		RecordEvent(EvtRelayToSoft, GetTime(), uint32(toSecondary), r.stats.ToSecondary)
	}

	toPrimary = Drain(r.Secondary, r.Primary)
	if toPrimary > 0 {
		r.stats.ToPrimary += uint32(toPrimary)
		RecordEvent(EvtRelayToHard, GetTime(), uint32(toPrimary), r.stats.ToPrimary)
	}
	return toSecondary, toPrimary
}

// Stats returns the cumulative counters
func (r *Relay) Stats() RelayStats {
	stats := r.stats
	if oc, ok := r.Primary.(OverrunCounter); ok {
		stats.PrimaryOverruns = oc.Overruns()
	}
	if oc, ok := r.Secondary.(OverrunCounter); ok {
		stats.SecondaryOverruns = oc.Overruns()
	}
	return stats
}
