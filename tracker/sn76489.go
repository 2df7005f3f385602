// sn76489.go tracks the TI SN76489 PSG: three square channels plus
// noise, driven by a latch-then-data write protocol.

package tracker

// SN76489 channel layout for ReadRegister: addresses 0-7 hold the tone
// dividers (channel n low nibble at n*2, high six bits at n*2+1) and
// addresses 8-11 hold the attenuation values.
type SN76489 struct {
	clock float64

	latchChannel uint8
	latchVolume  bool

	divider [4]uint16
	volume  [4]uint8 // attenuation, 0x0F = silence
}

// NewSN76489 returns a tracker for one PSG at the given clock.
func NewSN76489(clockHz float64) *SN76489 {
	s := &SN76489{clock: clockHz}
	s.Reset()
	return s
}

// WriteRegister applies one data-bus byte. The address is unused; the
// PSG decodes the target from the byte itself. A byte with the MSB set
// latches channel and type and carries the low four bits of the value;
// a data byte supplies the upper six bits of the latched tone divider.
func (s *SN76489) WriteRegister(_ uint32, value uint8) []StateEvent {
	if value&0x80 != 0 {
		s.latchChannel = (value >> 5) & 0x03
		s.latchVolume = value&0x10 != 0
		if s.latchVolume {
			return s.setVolume(s.latchChannel, value&0x0F)
		}
		return s.setDividerLow(s.latchChannel, value&0x0F)
	}
	if s.latchVolume {
		return s.setVolume(s.latchChannel, value&0x0F)
	}
	ch := s.latchChannel
	old := s.divider[ch]
	s.divider[ch] = old&0x000F | uint16(value&0x3F)<<4
	if s.divider[ch] != old && s.channelOn(ch) {
		return []StateEvent{toneChangeEvent(int(ch), s.tone(ch))}
	}
	return nil
}

func (s *SN76489) setDividerLow(ch, v uint8) []StateEvent {
	old := s.divider[ch]
	s.divider[ch] = old&0x3F0 | uint16(v)
	if s.divider[ch] != old && s.channelOn(ch) {
		return []StateEvent{toneChangeEvent(int(ch), s.tone(ch))}
	}
	return nil
}

func (s *SN76489) setVolume(ch, v uint8) []StateEvent {
	wasOn := s.channelOn(ch)
	s.volume[ch] = v
	on := s.channelOn(ch)
	switch {
	case !wasOn && on:
		return []StateEvent{keyOnEvent(int(ch), s.tone(ch))}
	case wasOn && !on:
		return []StateEvent{keyOffEvent(int(ch))}
	}
	return nil
}

func (s *SN76489) channelOn(ch uint8) bool {
	return s.volume[ch] != 0x0F
}

func (s *SN76489) tone(ch uint8) ToneInfo {
	t := ToneInfo{FNum: s.divider[ch]}
	// The noise channel's divider selects a rate, not a pitch.
	if ch < 3 && s.divider[ch] != 0 {
		t.FreqHz = s.clock / (32 * float64(s.divider[ch]))
		t.HasFreq = true
	}
	return t
}

func (s *SN76489) ReadRegister(addr uint32) (uint8, bool) {
	switch {
	case addr < 8:
		ch := addr / 2
		if addr%2 == 0 {
			return uint8(s.divider[ch] & 0x0F), true
		}
		return uint8(s.divider[ch] >> 4), true
	case addr < 12:
		return s.volume[addr-8], true
	}
	return 0, false
}

func (s *SN76489) Reset() {
	s.latchChannel = 0
	s.latchVolume = false
	for i := range s.divider {
		s.divider[i] = 0
		s.volume[i] = 0x0F
	}
}

func (s *SN76489) ChannelCount() int { return 4 }
