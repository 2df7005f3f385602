// ym2151.go tracks the Yamaha OPM: eight FM channels keyed through
// register 0x08, pitched by a key code and key fraction per channel.

package tracker

import "math"

// YM2151 shadows the OPM register file. Register 0x08 carries the slot
// mask (bits 3-6) and channel (bits 0-2); 0x28+ch holds the key code
// (octave and note) and 0x30+ch the key fraction.
type YM2151 struct {
	clock float64
	regs  map[uint32]uint8
	slots [8]uint8
}

// NewYM2151 returns a tracker for one OPM.
func NewYM2151(clockHz float64) *YM2151 {
	return &YM2151{clock: clockHz, regs: make(map[uint32]uint8)}
}

func (o *YM2151) WriteRegister(addr uint32, value uint8) []StateEvent {
	old, seen := o.regs[addr]
	o.regs[addr] = value

	reg := uint8(addr)
	switch {
	case reg == 0x08:
		ch := int(value & 0x07)
		was := o.slots[ch]
		o.slots[ch] = (value >> 3) & 0x0F
		switch {
		case was == 0 && o.slots[ch] != 0:
			return []StateEvent{keyOnEvent(ch, o.tone(ch))}
		case was != 0 && o.slots[ch] == 0:
			return []StateEvent{keyOffEvent(ch)}
		}
	case reg >= 0x28 && reg <= 0x2F, reg >= 0x30 && reg <= 0x37:
		ch := int(reg & 0x07)
		if o.slots[ch] != 0 && (!seen || old != value) {
			return []StateEvent{toneChangeEvent(ch, o.tone(ch))}
		}
	}
	return nil
}

// tone derives pitch from the key code. The note field skips every
// fourth code, so the semitone is note - note/4; the key fraction adds
// 1/64 semitone steps. The result scales with the clock relative to the
// nominal 3.579545 MHz part.
func (o *YM2151) tone(ch int) ToneInfo {
	kc := o.regs[uint32(0x28+ch)]
	kf := o.regs[uint32(0x30+ch)] >> 2

	octave := int(kc>>4) & 0x07
	note := int(kc) & 0x0F
	semitone := note - note/4

	t := ToneInfo{FNum: uint16(kc)<<8 | uint16(kf), Block: uint8(octave)}
	// C#1 through C#8; code 0 in octave 4 sounds C#4 at 277.18 Hz.
	base := 277.18 * math.Exp2(float64(octave-4)+(float64(semitone)+float64(kf)/64)/12)
	t.FreqHz = base * o.clock / 3579545
	t.HasFreq = o.clock > 0
	return t
}

func (o *YM2151) ReadRegister(addr uint32) (uint8, bool) {
	v, ok := o.regs[addr]
	return v, ok
}

func (o *YM2151) Reset() {
	o.regs = make(map[uint32]uint8)
	o.slots = [8]uint8{}
}

func (o *YM2151) ChannelCount() int { return 8 }
