// nesapu.go tracks the NES APU: two pulse channels, triangle, and
// noise, addressed as offsets from 0x4000.

package tracker

// NESAPU shadows registers 0x00-0x17. The status register 0x15 gates
// each channel; a length-counter reload (0x03, 0x07, 0x0B, 0x0F) on an
// enabled channel restarts it.
type NESAPU struct {
	clock float64
	regs  [0x18]uint8
	on    [4]bool
}

// NewNESAPU returns a tracker for one NES APU.
func NewNESAPU(clockHz float64) *NESAPU {
	return &NESAPU{clock: clockHz}
}

func (n *NESAPU) WriteRegister(addr uint32, value uint8) []StateEvent {
	if addr >= uint32(len(n.regs)) {
		return nil
	}
	reg := uint8(addr)
	n.regs[reg] = value

	if reg == 0x15 {
		var events []StateEvent
		for ch := 0; ch < 4; ch++ {
			enabled := value&(1<<ch) != 0
			switch {
			case !n.on[ch] && enabled:
				n.on[ch] = true
				events = append(events, keyOnEvent(ch, n.tone(ch)))
			case n.on[ch] && !enabled:
				n.on[ch] = false
				events = append(events, keyOffEvent(ch))
			}
		}
		return events
	}

	switch reg {
	case 0x03, 0x07, 0x0B, 0x0F:
		ch := int(reg / 4)
		if n.regs[0x15]&(1<<ch) != 0 {
			n.on[ch] = true
			return []StateEvent{keyOnEvent(ch, n.tone(ch))}
		}
	case 0x02, 0x06, 0x0A:
		ch := int(reg / 4)
		if n.on[ch] {
			return []StateEvent{toneChangeEvent(ch, n.tone(ch))}
		}
	}
	return nil
}

func (n *NESAPU) tone(ch int) ToneInfo {
	if ch == 3 {
		return ToneInfo{} // noise
	}
	base := uint8(ch * 4)
	timer := uint16(n.regs[base+3]&0x07)<<8 | uint16(n.regs[base+2])
	t := ToneInfo{FNum: timer}
	if timer > 0 {
		div := float64(timer) + 1
		if ch == 2 {
			t.FreqHz = n.clock / (32 * div)
		} else {
			t.FreqHz = n.clock / (16 * div)
		}
		t.HasFreq = true
	}
	return t
}

func (n *NESAPU) ReadRegister(addr uint32) (uint8, bool) {
	if addr >= uint32(len(n.regs)) {
		return 0, false
	}
	return n.regs[addr], true
}

func (n *NESAPU) Reset() {
	n.regs = [0x18]uint8{}
	n.on = [4]bool{}
}

func (n *NESAPU) ChannelCount() int { return 4 }
