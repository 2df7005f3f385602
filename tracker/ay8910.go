// ay8910.go tracks the AY-3-8910 PSG: three tone channels gated by the
// mixer register and per-channel amplitude.

package tracker

// AY8910 shadows the sixteen PSG registers. Registers 0-5 hold the
// 12-bit tone periods, register 7 the mixer (tone enables active low in
// bits 0-2), registers 8-10 the amplitudes.
type AY8910 struct {
	clock float64
	regs  [16]uint8
	on    [3]bool
}

// NewAY8910 returns a tracker for one PSG.
func NewAY8910(clockHz float64) *AY8910 {
	return &AY8910{clock: clockHz}
}

func (a *AY8910) WriteRegister(addr uint32, value uint8) []StateEvent {
	reg := uint8(addr) & 0x0F
	old := a.regs[reg]
	a.regs[reg] = value

	switch {
	case reg <= 5:
		ch := int(reg / 2)
		if a.on[ch] && old != value {
			return []StateEvent{toneChangeEvent(ch, a.tone(ch))}
		}
	case reg == 7:
		var events []StateEvent
		for ch := 0; ch < 3; ch++ {
			events = append(events, a.update(ch)...)
		}
		return events
	case reg >= 8 && reg <= 10:
		return a.update(int(reg - 8))
	}
	return nil
}

// update recomputes a channel's audible state: tone enabled in the
// mixer and a nonzero amplitude (or envelope mode).
func (a *AY8910) update(ch int) []StateEvent {
	amp := a.regs[8+ch]
	audible := a.regs[7]&(1<<ch) == 0 && (amp&0x10 != 0 || amp&0x0F != 0)
	was := a.on[ch]
	a.on[ch] = audible
	switch {
	case !was && audible:
		return []StateEvent{keyOnEvent(ch, a.tone(ch))}
	case was && !audible:
		return []StateEvent{keyOffEvent(ch)}
	}
	return nil
}

func (a *AY8910) tone(ch int) ToneInfo {
	period := uint16(a.regs[ch*2+1]&0x0F)<<8 | uint16(a.regs[ch*2])
	t := ToneInfo{FNum: period}
	if period == 0 {
		period = 1
	}
	t.FreqHz = a.clock / (16 * float64(period))
	t.HasFreq = true
	return t
}

func (a *AY8910) ReadRegister(addr uint32) (uint8, bool) {
	if addr >= 16 {
		return 0, false
	}
	return a.regs[addr], true
}

func (a *AY8910) Reset() {
	a.regs = [16]uint8{}
	a.on = [3]bool{}
}

func (a *AY8910) ChannelCount() int { return 3 }
