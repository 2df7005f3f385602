// opn.go tracks the Yamaha OPN family (YM2203, YM2612, YM2608,
// YM2610). Six-channel members split their channels across two register
// ports; the port is folded into bits 8+ of the tracker address.

package tracker

import "math"

// OPN shadows an OPN-family register file. Channels 0-2 live on port 0
// and, on six-channel chips, channels 3-5 on port 1. Key state is
// driven by port-0 register 0x28; pitch by registers 0xA0-0xA2 (F-number
// low byte) and 0xA4-0xA6 (block and F-number high bits) on the owning
// port.
type OPN struct {
	clock    float64
	channels int
	regs     map[uint32]uint8
	slots    [6]uint8
}

func newOPN(clockHz float64, channels int) *OPN {
	return &OPN{clock: clockHz, channels: channels, regs: make(map[uint32]uint8)}
}

// NewYM2612 returns a tracker for the six-channel OPN2.
func NewYM2612(clockHz float64) *OPN { return newOPN(clockHz, 6) }

// NewYM2203 returns a tracker for the three-channel OPN.
func NewYM2203(clockHz float64) *OPN { return newOPN(clockHz, 3) }

// NewYM2608 returns a tracker for the OPNA's six FM channels.
func NewYM2608(clockHz float64) *OPN { return newOPN(clockHz, 6) }

// NewYM2610 returns a tracker for the OPNB's six FM channels.
func NewYM2610(clockHz float64) *OPN { return newOPN(clockHz, 6) }

func (o *OPN) WriteRegister(addr uint32, value uint8) []StateEvent {
	old, seen := o.regs[addr]
	o.regs[addr] = value

	port := uint8(addr >> 8)
	reg := uint8(addr)

	if port == 0 && reg == 0x28 {
		return o.writeKey(value)
	}

	if reg >= 0xA0 && reg <= 0xA2 || reg >= 0xA4 && reg <= 0xA6 {
		ch := o.pitchChannel(port, reg)
		if ch >= 0 && o.slots[ch] != 0 && (!seen || old != value) {
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	}
	return nil
}

// writeKey handles register 0x28: bits 0-2 select the channel (codes
// 4-6 map to the port-1 channels) and bits 4-7 are the slot mask.
func (o *OPN) writeKey(value uint8) []StateEvent {
	ch := keyChannel(value & 0x07)
	if ch < 0 || ch >= o.channels {
		return nil
	}
	was := o.slots[ch]
	o.slots[ch] = value >> 4
	switch {
	case was == 0 && o.slots[ch] != 0:
		return []StateEvent{keyOnEvent(ch, o.tone(ch))}
	case was != 0 && o.slots[ch] == 0:
		return []StateEvent{keyOffEvent(ch)}
	}
	return nil
}

func keyChannel(code uint8) int {
	switch {
	case code <= 2:
		return int(code)
	case code >= 4 && code <= 6:
		return int(code) - 1
	}
	return -1
}

func (o *OPN) pitchChannel(port, reg uint8) int {
	ch := int(reg & 0x03)
	if ch > 2 {
		return -1
	}
	if port == 1 {
		ch += 3
	}
	if ch >= o.channels {
		return -1
	}
	return ch
}

func (o *OPN) tone(ch int) ToneInfo {
	var port uint32
	off := uint32(ch)
	if ch >= 3 {
		port = 1 << 8
		off = uint32(ch - 3)
	}
	low := o.regs[port|0xA0+off]
	high := o.regs[port|0xA4+off]
	fnum := uint16(high&0x07)<<8 | uint16(low)
	block := (high >> 3) & 0x07
	t := ToneInfo{FNum: fnum, Block: block}
	if fnum != 0 {
		// fout = fnum * 2^(block-1) * clock / (144 * 2^20)
		t.FreqHz = float64(fnum) * math.Exp2(float64(block)-1) * o.clock / (144 * (1 << 20))
		t.HasFreq = true
	}
	return t
}

func (o *OPN) ReadRegister(addr uint32) (uint8, bool) {
	v, ok := o.regs[addr]
	return v, ok
}

func (o *OPN) Reset() {
	o.regs = make(map[uint32]uint8)
	o.slots = [6]uint8{}
}

func (o *OPN) ChannelCount() int { return o.channels }
