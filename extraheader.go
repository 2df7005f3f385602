// extraheader.go implements the v1.70+ extra header: per-chip clock and
// volume overrides stored in a self-describing block after the main
// header.

package vgm

const extraHeaderProlog = 12

// ChipClockEntry overrides one chip's clock.
type ChipClockEntry struct {
	ChipID uint8
	Clock  uint32
}

// ChipVolumeEntry overrides one chip's volume. Flags bit 7 of ChipID
// selects the secondary instance; Flags bit 0 marks Volume as relative.
type ChipVolumeEntry struct {
	ChipID uint8
	Flags  uint8
	Volume uint16
}

// ExtraHeader is the optional v1.70+ header extension. Offsets are
// relative to the extra header's own start.
type ExtraHeader struct {
	HeaderSize      uint32
	ChipClockOffset uint32
	ChipVolOffset   uint32
	ChipClocks      []ChipClockEntry
	ChipVolumes     []ChipVolumeEntry
}

// canonicalSize is the size of the prologue plus both count-prefixed
// blocks when laid out back to back.
func (x *ExtraHeader) canonicalSize() int {
	n := extraHeaderProlog
	if len(x.ChipClocks) > 0 {
		n += 1 + 5*len(x.ChipClocks)
	}
	if len(x.ChipVolumes) > 0 {
		n += 1 + 4*len(x.ChipVolumes)
	}
	return n
}

// ParseExtraHeader decodes an extra header from the start of data.
// Offsets pointing inside the 12-byte prologue are a known defect in
// real files and are normalized to the canonical position instead of
// being rejected. After parsing, HeaderSize and the offsets are
// rewritten to their canonical values so a round trip is stable.
func ParseExtraHeader(data []byte) (*ExtraHeader, error) {
	x := &ExtraHeader{}
	var err error
	if x.HeaderSize, err = readU32(data, 0, "extra header size"); err != nil {
		return nil, err
	}
	if x.ChipClockOffset, err = readU32(data, 4, "extra header chip clock offset"); err != nil {
		return nil, err
	}
	if x.ChipVolOffset, err = readU32(data, 8, "extra header chip volume offset"); err != nil {
		return nil, err
	}

	if x.ChipClockOffset > 0 && x.ChipClockOffset < extraHeaderProlog {
		x.ChipClockOffset = extraHeaderProlog
	}
	if x.ChipClockOffset > 0 {
		off := int(x.ChipClockOffset)
		count, err := readU8(data, off, "chip clock count")
		if err != nil {
			return nil, err
		}
		off++
		for i := 0; i < int(count); i++ {
			id, err := readU8(data, off, "chip clock entry")
			if err != nil {
				return nil, err
			}
			clock, err := readU32(data, off+1, "chip clock entry")
			if err != nil {
				return nil, err
			}
			x.ChipClocks = append(x.ChipClocks, ChipClockEntry{ChipID: id, Clock: clock})
			off += 5
		}
	}

	if x.ChipVolOffset > 0 && x.ChipVolOffset < extraHeaderProlog {
		canonical := extraHeaderProlog
		if len(x.ChipClocks) > 0 {
			canonical += 1 + 5*len(x.ChipClocks)
		}
		x.ChipVolOffset = uint32(canonical)
	}
	if x.ChipVolOffset > 0 {
		off := int(x.ChipVolOffset)
		count, err := readU8(data, off, "chip volume count")
		if err != nil {
			return nil, err
		}
		off++
		for i := 0; i < int(count); i++ {
			id, err := readU8(data, off, "chip volume entry")
			if err != nil {
				return nil, err
			}
			flags, err := readU8(data, off+1, "chip volume entry")
			if err != nil {
				return nil, err
			}
			vol, err := readU16(data, off+2, "chip volume entry")
			if err != nil {
				return nil, err
			}
			x.ChipVolumes = append(x.ChipVolumes, ChipVolumeEntry{ChipID: id, Flags: flags, Volume: vol})
			off += 4
		}
	}

	x.normalize()
	return x, nil
}

// normalize rewrites size and offsets to the canonical layout.
func (x *ExtraHeader) normalize() {
	x.HeaderSize = uint32(x.canonicalSize())
	if len(x.ChipClocks) > 0 {
		x.ChipClockOffset = extraHeaderProlog
	} else {
		x.ChipClockOffset = 0
	}
	if len(x.ChipVolumes) > 0 {
		off := extraHeaderProlog
		if len(x.ChipClocks) > 0 {
			off += 1 + 5*len(x.ChipClocks)
		}
		x.ChipVolOffset = uint32(off)
	} else {
		x.ChipVolOffset = 0
	}
}

// serializedSize is the byte length appendTo will emit.
func (x *ExtraHeader) serializedSize() int {
	if int(x.HeaderSize) >= x.canonicalSize() {
		return int(x.HeaderSize)
	}
	return x.canonicalSize()
}

// appendTo serializes the extra header. A stored HeaderSize larger than
// the canonical layout is honored (the gap stays zero); anything smaller
// is replaced by the canonical layout.
func (x *ExtraHeader) appendTo(out []byte) []byte {
	size := x.serializedSize()
	buf := make([]byte, size)

	clockOff := 0
	if len(x.ChipClocks) > 0 {
		clockOff = extraHeaderProlog
		if int(x.ChipClockOffset) >= extraHeaderProlog &&
			int(x.ChipClockOffset)+1+5*len(x.ChipClocks) <= size {
			clockOff = int(x.ChipClockOffset)
		}
	}
	volOff := 0
	if len(x.ChipVolumes) > 0 {
		volOff = extraHeaderProlog
		if len(x.ChipClocks) > 0 {
			volOff = clockOff + 1 + 5*len(x.ChipClocks)
		}
		if int(x.ChipVolOffset) >= extraHeaderProlog &&
			int(x.ChipVolOffset)+1+4*len(x.ChipVolumes) <= size {
			volOff = int(x.ChipVolOffset)
		}
	}

	putU32(buf, 0, uint32(size))
	putU32(buf, 4, uint32(clockOff))
	putU32(buf, 8, uint32(volOff))

	if clockOff > 0 {
		off := clockOff
		buf[off] = byte(len(x.ChipClocks))
		off++
		for _, e := range x.ChipClocks {
			buf[off] = e.ChipID
			putU32(buf, off+1, e.Clock)
			off += 5
		}
	}
	if volOff > 0 {
		off := volOff
		buf[off] = byte(len(x.ChipVolumes))
		off++
		for _, e := range x.ChipVolumes {
			buf[off] = e.ChipID
			buf[off+1] = e.Flags
			putU16(buf, off+2, e.Volume)
			off += 4
		}
	}
	return append(out, buf...)
}
