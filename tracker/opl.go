// opl.go tracks the Yamaha OPL family (YM3526, YM3812, Y8950, YMF262)
// and the OPLL (YM2413), which shares the A0/B0 pitch-plus-key register
// pattern with different bit positions.

package tracker

import "math"

// OPL shadows an OPL-family register file. Register 0xA0+ch holds the
// F-number low byte; 0xB0+ch holds the key bit (bit 5), block (bits
// 2-4), and F-number high bits (bits 0-1). The OPL3 doubles the channel
// bank behind port 1.
type OPL struct {
	clock    float64
	channels int
	divisor  float64 // clock divide to the 49716 Hz sample rate
	regs     map[uint32]uint8
	keyed    [18]bool
}

func newOPL(clockHz float64, channels int, divisor float64) *OPL {
	return &OPL{clock: clockHz, channels: channels, divisor: divisor, regs: make(map[uint32]uint8)}
}

// NewYM3812 returns a tracker for the nine-channel OPL2.
func NewYM3812(clockHz float64) *OPL { return newOPL(clockHz, 9, 72) }

// NewYM3526 returns a tracker for the nine-channel OPL.
func NewYM3526(clockHz float64) *OPL { return newOPL(clockHz, 9, 72) }

// NewY8950 returns a tracker for the Y8950's nine FM channels.
func NewY8950(clockHz float64) *OPL { return newOPL(clockHz, 9, 72) }

// NewYMF262 returns a tracker for the eighteen-channel OPL3.
func NewYMF262(clockHz float64) *OPL { return newOPL(clockHz, 18, 288) }

func (o *OPL) WriteRegister(addr uint32, value uint8) []StateEvent {
	old, seen := o.regs[addr]
	o.regs[addr] = value

	port := uint8(addr >> 8)
	reg := uint8(addr)

	switch {
	case reg >= 0xA0 && reg <= 0xA8:
		ch := o.channel(port, reg-0xA0)
		if ch >= 0 && o.keyed[ch] && (!seen || old != value) {
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	case reg >= 0xB0 && reg <= 0xB8:
		ch := o.channel(port, reg-0xB0)
		if ch < 0 {
			return nil
		}
		was := o.keyed[ch]
		o.keyed[ch] = value&0x20 != 0
		switch {
		case !was && o.keyed[ch]:
			return []StateEvent{keyOnEvent(ch, o.tone(ch))}
		case was && !o.keyed[ch]:
			return []StateEvent{keyOffEvent(ch)}
		case o.keyed[ch] && seen && old&0x1F != value&0x1F:
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	}
	return nil
}

func (o *OPL) channel(port, idx uint8) int {
	ch := int(idx)
	if port == 1 {
		ch += 9
	}
	if ch >= o.channels {
		return -1
	}
	return ch
}

func (o *OPL) tone(ch int) ToneInfo {
	var port uint32
	idx := uint32(ch)
	if ch >= 9 {
		port = 1 << 8
		idx = uint32(ch - 9)
	}
	low := o.regs[port|0xA0+idx]
	high := o.regs[port|0xB0+idx]
	fnum := uint16(high&0x03)<<8 | uint16(low)
	block := (high >> 2) & 0x07
	t := ToneInfo{FNum: fnum, Block: block}
	if fnum != 0 {
		// fout = fnum * clock / divisor / 2^(20-block)
		t.FreqHz = float64(fnum) * o.clock / o.divisor / math.Exp2(20-float64(block))
		t.HasFreq = true
	}
	return t
}

func (o *OPL) ReadRegister(addr uint32) (uint8, bool) {
	v, ok := o.regs[addr]
	return v, ok
}

func (o *OPL) Reset() {
	o.regs = make(map[uint32]uint8)
	o.keyed = [18]bool{}
}

func (o *OPL) ChannelCount() int { return o.channels }

// YM2413 shadows the OPLL register file. The nine-bit F-number spans
// register 0x10+ch and bit 0 of 0x20+ch; the key bit is bit 4 and the
// block bits 1-3 of 0x20+ch.
type YM2413 struct {
	clock float64
	regs  map[uint32]uint8
	keyed [9]bool
}

// NewYM2413 returns a tracker for the nine-channel OPLL.
func NewYM2413(clockHz float64) *YM2413 {
	return &YM2413{clock: clockHz, regs: make(map[uint32]uint8)}
}

func (o *YM2413) WriteRegister(addr uint32, value uint8) []StateEvent {
	old, seen := o.regs[addr]
	o.regs[addr] = value

	reg := uint8(addr)
	switch {
	case reg >= 0x10 && reg <= 0x18:
		ch := int(reg - 0x10)
		if o.keyed[ch] && (!seen || old != value) {
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	case reg >= 0x20 && reg <= 0x28:
		ch := int(reg - 0x20)
		was := o.keyed[ch]
		o.keyed[ch] = value&0x10 != 0
		switch {
		case !was && o.keyed[ch]:
			return []StateEvent{keyOnEvent(ch, o.tone(ch))}
		case was && !o.keyed[ch]:
			return []StateEvent{keyOffEvent(ch)}
		case o.keyed[ch] && seen && old&0x0F != value&0x0F:
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	}
	return nil
}

func (o *YM2413) tone(ch int) ToneInfo {
	low := o.regs[uint32(0x10+ch)]
	high := o.regs[uint32(0x20+ch)]
	fnum := uint16(high&0x01)<<8 | uint16(low)
	block := (high >> 1) & 0x07
	t := ToneInfo{FNum: fnum, Block: block}
	if fnum != 0 {
		// fout = fnum * 2^block * clock / (72 * 2^18)
		t.FreqHz = float64(fnum) * math.Exp2(float64(block)) * o.clock / (72 * (1 << 18))
		t.HasFreq = true
	}
	return t
}

func (o *YM2413) ReadRegister(addr uint32) (uint8, bool) {
	v, ok := o.regs[addr]
	return v, ok
}

func (o *YM2413) Reset() {
	o.regs = make(map[uint32]uint8)
	o.keyed = [9]bool{}
}

func (o *YM2413) ChannelCount() int { return 9 }
