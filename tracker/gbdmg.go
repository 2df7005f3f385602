// gbdmg.go tracks the Game Boy APU: two pulse channels, the wave
// channel, and noise. Addresses are offsets from 0xFF10, as carried by
// the file format's register operand.

package tracker

// GBDMG shadows the NR registers. A write to a channel's trigger
// register (NRx4) with bit 7 set restarts the channel; clearing the
// master enable (NR52 bit 7) silences everything.
type GBDMG struct {
	clock float64
	regs  [0x30]uint8
	on    [4]bool
}

// NewGBDMG returns a tracker for one Game Boy APU.
func NewGBDMG(clockHz float64) *GBDMG {
	return &GBDMG{clock: clockHz}
}

// nrx4 maps each channel to its trigger register offset.
var nrx4 = [4]uint8{0x04, 0x09, 0x0E, 0x13}

func (g *GBDMG) WriteRegister(addr uint32, value uint8) []StateEvent {
	if addr >= uint32(len(g.regs)) {
		return nil
	}
	reg := uint8(addr)
	g.regs[reg] = value

	// NR52 power-down kills all channels.
	if reg == 0x16 && value&0x80 == 0 {
		var events []StateEvent
		for ch := 0; ch < 4; ch++ {
			if g.on[ch] {
				g.on[ch] = false
				events = append(events, keyOffEvent(ch))
			}
		}
		return events
	}

	for ch, off := range nrx4 {
		if reg != off {
			continue
		}
		if value&0x80 != 0 {
			g.on[ch] = true
			return []StateEvent{keyOnEvent(ch, g.tone(ch))}
		}
		return nil
	}

	// Zeroing a pulse channel's envelope volume silences it.
	if (reg == 0x02 || reg == 0x07 || reg == 0x12) && value&0xF8 == 0 {
		ch := 0
		switch reg {
		case 0x07:
			ch = 1
		case 0x12:
			ch = 3
		}
		if g.on[ch] {
			g.on[ch] = false
			return []StateEvent{keyOffEvent(ch)}
		}
	}
	return nil
}

func (g *GBDMG) tone(ch int) ToneInfo {
	if ch == 3 {
		return ToneInfo{} // noise
	}
	low := g.regs[nrx4[ch]-1]
	high := g.regs[nrx4[ch]]
	period := uint16(high&0x07)<<8 | uint16(low)
	t := ToneInfo{FNum: period}
	if period < 2048 {
		div := float64(2048 - period)
		scale := g.clock / 4194304
		if ch == 2 {
			t.FreqHz = 65536 / div * scale
		} else {
			t.FreqHz = 131072 / div * scale
		}
		t.HasFreq = true
	}
	return t
}

func (g *GBDMG) ReadRegister(addr uint32) (uint8, bool) {
	if addr >= uint32(len(g.regs)) {
		return 0, false
	}
	return g.regs[addr], true
}

func (g *GBDMG) Reset() {
	g.regs = [0x30]uint8{}
	g.on = [4]bool{}
}

func (g *GBDMG) ChannelCount() int { return 4 }
