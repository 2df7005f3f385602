// saa1099.go tracks the Philips SAA1099: six square channels with
// shared octave registers and per-channel frequency and amplitude.

package tracker

import "math"

// SAA1099 shadows the control registers: 0x00-0x05 amplitude, 0x08-0x0D
// frequency, 0x10-0x12 octaves (two channels per register), 0x14 the
// frequency enable bits, 0x1C the master enable.
type SAA1099 struct {
	clock float64
	regs  [32]uint8
	on    [6]bool
}

// NewSAA1099 returns a tracker for one SAA1099.
func NewSAA1099(clockHz float64) *SAA1099 {
	return &SAA1099{clock: clockHz}
}

func (s *SAA1099) WriteRegister(addr uint32, value uint8) []StateEvent {
	reg := uint8(addr) & 0x1F
	old := s.regs[reg]
	s.regs[reg] = value

	switch {
	case reg <= 0x05:
		return s.update(int(reg))
	case reg >= 0x08 && reg <= 0x0D:
		ch := int(reg - 0x08)
		if s.on[ch] && old != value {
			return []StateEvent{toneChangeEvent(ch, s.tone(ch))}
		}
	case reg >= 0x10 && reg <= 0x12:
		var events []StateEvent
		for _, ch := range []int{int(reg-0x10) * 2, int(reg-0x10)*2 + 1} {
			if s.on[ch] && old != value {
				events = append(events, toneChangeEvent(ch, s.tone(ch)))
			}
		}
		return events
	case reg == 0x14, reg == 0x1C:
		var events []StateEvent
		for ch := 0; ch < 6; ch++ {
			events = append(events, s.update(ch)...)
		}
		return events
	}
	return nil
}

func (s *SAA1099) update(ch int) []StateEvent {
	enabled := s.regs[0x1C]&0x01 != 0 && s.regs[0x14]&(1<<ch) != 0
	audible := enabled && s.regs[ch] != 0
	was := s.on[ch]
	s.on[ch] = audible
	switch {
	case !was && audible:
		return []StateEvent{keyOnEvent(ch, s.tone(ch))}
	case was && !audible:
		return []StateEvent{keyOffEvent(ch)}
	}
	return nil
}

func (s *SAA1099) tone(ch int) ToneInfo {
	freq := s.regs[0x08+ch]
	oct := s.regs[0x10+ch/2]
	if ch%2 == 1 {
		oct >>= 4
	}
	oct &= 0x07

	t := ToneInfo{FNum: uint16(freq), Block: oct}
	// freq_hz = clock / (256 * (511 - freq) * 2^(8 - octave))
	t.FreqHz = s.clock / (256 * float64(511-uint16(freq)) * math.Exp2(8-float64(oct)))
	t.HasFreq = true
	return t
}

func (s *SAA1099) ReadRegister(addr uint32) (uint8, bool) {
	if addr >= 32 {
		return 0, false
	}
	return s.regs[addr], true
}

func (s *SAA1099) Reset() {
	s.regs = [32]uint8{}
	s.on = [6]bool{}
}

func (s *SAA1099) ChannelCount() int { return 6 }
