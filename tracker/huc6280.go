// huc6280.go tracks the Hudson HuC6280 PSG: six wavetable channels
// addressed indirectly through a channel-select register.

package tracker

// HuC6280 shadows the PSG registers. Register 0 selects the channel the
// per-channel registers (2: frequency low, 3: frequency high, 4: on bit
// and volume) refer to.
type HuC6280 struct {
	clock    float64
	selected uint8
	global   [2]uint8
	chan2    [6][4]uint8 // registers 2-5 per channel
	on       [6]bool
}

// NewHuC6280 returns a tracker for one HuC6280 PSG.
func NewHuC6280(clockHz float64) *HuC6280 {
	return &HuC6280{clock: clockHz}
}

func (h *HuC6280) WriteRegister(addr uint32, value uint8) []StateEvent {
	reg := uint8(addr) & 0x0F
	switch reg {
	case 0:
		h.selected = value & 0x07
		h.global[0] = value
	case 1:
		h.global[1] = value
	case 2, 3, 4, 5:
		ch := int(h.selected)
		if ch >= 6 {
			return nil
		}
		old := h.chan2[ch][reg-2]
		h.chan2[ch][reg-2] = value
		switch reg {
		case 4:
			was := h.on[ch]
			h.on[ch] = value&0x80 != 0
			switch {
			case !was && h.on[ch]:
				return []StateEvent{keyOnEvent(ch, h.tone(ch))}
			case was && !h.on[ch]:
				return []StateEvent{keyOffEvent(ch)}
			}
		case 2, 3:
			if h.on[ch] && old != value {
				return []StateEvent{toneChangeEvent(ch, h.tone(ch))}
			}
		}
	}
	return nil
}

func (h *HuC6280) tone(ch int) ToneInfo {
	period := uint16(h.chan2[ch][1]&0x0F)<<8 | uint16(h.chan2[ch][0])
	t := ToneInfo{FNum: period}
	div := float64(period)
	if period == 0 {
		div = 4096
	}
	t.FreqHz = h.clock / (32 * div)
	t.HasFreq = true
	return t
}

// ReadRegister exposes the per-channel registers at ch*16 + reg, with
// the two global registers at their raw addresses.
func (h *HuC6280) ReadRegister(addr uint32) (uint8, bool) {
	if addr < 2 {
		return h.global[addr], true
	}
	ch := addr >> 4
	reg := addr & 0x0F
	if ch < 6 && reg >= 2 && reg <= 5 {
		return h.chan2[ch][reg-2], true
	}
	return 0, false
}

func (h *HuC6280) Reset() {
	*h = HuC6280{clock: h.clock}
}

func (h *HuC6280) ChannelCount() int { return 6 }
