// Package tracker models per-chip register state. Each chip type
// replays register writes into a shadow of the chip's register file and
// reports musically meaningful transitions (key-on, key-off, tone
// changes) as events, with frequencies computed from the chip's master
// clock.
package tracker

// EventKind classifies a state event.
type EventKind uint8

const (
	KeyOn EventKind = iota
	KeyOff
	ToneChange
)

func (k EventKind) String() string {
	switch k {
	case KeyOn:
		return "KeyOn"
	case KeyOff:
		return "KeyOff"
	case ToneChange:
		return "ToneChange"
	}
	return "unknown"
}

// ToneInfo carries a channel's raw frequency registers plus the pitch
// they encode at the chip's master clock. HasFreq is false when the
// register values do not encode a computable pitch (noise channels,
// zero dividers).
type ToneInfo struct {
	FNum    uint16
	Block   uint8
	FreqHz  float64
	HasFreq bool
}

// StateEvent is one channel transition observed during a write.
type StateEvent struct {
	Kind    EventKind
	Channel int
	Tone    ToneInfo
}

func keyOnEvent(ch int, tone ToneInfo) StateEvent {
	return StateEvent{Kind: KeyOn, Channel: ch, Tone: tone}
}

func keyOffEvent(ch int) StateEvent {
	return StateEvent{Kind: KeyOff, Channel: ch}
}

func toneChangeEvent(ch int, tone ToneInfo) StateEvent {
	return StateEvent{Kind: ToneChange, Channel: ch, Tone: tone}
}

// ChipState is the tracker interface. Addresses are chip-specific; for
// multi-port chips the port is folded into bits 8+ of the address.
type ChipState interface {
	// WriteRegister applies one register write and returns the channel
	// transitions it caused, in channel order. The returned slice is
	// owned by the caller and may be nil.
	WriteRegister(addr uint32, value uint8) []StateEvent

	// ReadRegister reports the last value written to an address, if any.
	ReadRegister(addr uint32) (uint8, bool)

	// Reset clears the register shadow and all channel state.
	Reset()

	// ChannelCount reports how many channels the chip has.
	ChannelCount() int
}

// RegisterStore is the fallback tracker for sample-playback chips: it
// shadows the register file for inspection but emits no events.
type RegisterStore struct {
	clock float64
	regs  map[uint32]uint8
}

// NewRegisterStore returns a store-only tracker.
func NewRegisterStore(clockHz float64) *RegisterStore {
	return &RegisterStore{clock: clockHz, regs: make(map[uint32]uint8)}
}

func (s *RegisterStore) WriteRegister(addr uint32, value uint8) []StateEvent {
	s.regs[addr] = value
	return nil
}

func (s *RegisterStore) ReadRegister(addr uint32) (uint8, bool) {
	v, ok := s.regs[addr]
	return v, ok
}

func (s *RegisterStore) Reset() {
	s.regs = make(map[uint32]uint8)
}

func (s *RegisterStore) ChannelCount() int { return 0 }
