// header.go implements parsing and serialization of the main VGM header,
// including the version-dependent field availability rules.

package vgm

// Version constants in the header's packed BCD form (0x00000172 = v1.72).
const (
	Version100 uint32 = 0x100
	Version101 uint32 = 0x101
	Version110 uint32 = 0x110
	Version150 uint32 = 0x150
	Version151 uint32 = 0x151
	Version160 uint32 = 0x160
	Version161 uint32 = 0x161
	Version170 uint32 = 0x170
	Version171 uint32 = 0x171
	Version172 uint32 = 0x172
)

const (
	headerMinSize = 0x34
	headerMaxSize = 0x100

	// secondaryClockBit marks a chip clock field as carrying a second
	// chip instance; the low 31 bits hold the clock in Hz.
	secondaryClockBit = 0x80000000
)

// Header is the main VGM header. Multi-byte fields are little-endian in
// the file; offsets relative to specific header bytes (GD3Offset from
// 0x14, LoopOffset from 0x1C, DataOffset from 0x34, ExtraHeaderOffset
// from 0xBC) are stored raw, exactly as read.
type Header struct {
	Version      uint32
	EOFOffset    uint32
	GD3Offset    uint32
	TotalSamples uint32
	LoopOffset   uint32
	LoopSamples  uint32
	Rate         uint32

	SN76489Feedback   uint16
	SN76489ShiftWidth uint8
	SN76489Flags      uint8

	DataOffset uint32

	SegaPCMInterface uint32

	AY8910Type    uint8
	AY8910Flags   uint8
	YM2203AYFlags uint8
	YM2610AYFlags uint8

	VolumeModifier uint8
	LoopBase       uint8
	LoopModifier   uint8

	OKIM6258Flags uint8
	K054539Flags  uint8
	C140Type      uint8

	ExtraHeaderOffset uint32

	ES5503Channels   uint8
	ES5506Channels   uint8
	C352ClockDivider uint8

	// Clocks holds the raw per-chip clock fields indexed by Chip. Bit 31
	// set means a secondary instance exists; the low 31 bits are Hz.
	Clocks [chipCount]uint32
}

// headerField describes one header field: its byte range, the first
// version that defines it, and accessors into Header.
type headerField struct {
	off  int
	size int
	min  uint32
	load func(h *Header, v uint32)
	save func(h *Header) uint32
}

func clockField(off int, min uint32, chip Chip) headerField {
	return headerField{off: off, size: 4, min: min,
		load: func(h *Header, v uint32) { h.Clocks[chip] = v },
		save: func(h *Header) uint32 { return h.Clocks[chip] },
	}
}

// headerFields lists every field after the ident, in file order. The
// version field itself is decoded before the table is applied.
var headerFields = []headerField{
	{off: 0x04, size: 4, min: Version100,
		load: func(h *Header, v uint32) { h.EOFOffset = v },
		save: func(h *Header) uint32 { return h.EOFOffset }},
	clockField(0x0C, Version100, ChipSN76489),
	clockField(0x10, Version100, ChipYM2413),
	{off: 0x14, size: 4, min: Version100,
		load: func(h *Header, v uint32) { h.GD3Offset = v },
		save: func(h *Header) uint32 { return h.GD3Offset }},
	{off: 0x18, size: 4, min: Version100,
		load: func(h *Header, v uint32) { h.TotalSamples = v },
		save: func(h *Header) uint32 { return h.TotalSamples }},
	{off: 0x1C, size: 4, min: Version100,
		load: func(h *Header, v uint32) { h.LoopOffset = v },
		save: func(h *Header) uint32 { return h.LoopOffset }},
	{off: 0x20, size: 4, min: Version100,
		load: func(h *Header, v uint32) { h.LoopSamples = v },
		save: func(h *Header) uint32 { return h.LoopSamples }},
	{off: 0x24, size: 4, min: Version101,
		load: func(h *Header, v uint32) { h.Rate = v },
		save: func(h *Header) uint32 { return h.Rate }},
	{off: 0x28, size: 2, min: Version110,
		load: func(h *Header, v uint32) { h.SN76489Feedback = uint16(v) },
		save: func(h *Header) uint32 { return uint32(h.SN76489Feedback) }},
	{off: 0x2A, size: 1, min: Version110,
		load: func(h *Header, v uint32) { h.SN76489ShiftWidth = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.SN76489ShiftWidth) }},
	{off: 0x2B, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.SN76489Flags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.SN76489Flags) }},
	clockField(0x2C, Version110, ChipYM2612),
	clockField(0x30, Version110, ChipYM2151),
	{off: 0x34, size: 4, min: Version150,
		load: func(h *Header, v uint32) { h.DataOffset = v },
		save: func(h *Header) uint32 { return h.DataOffset }},
	clockField(0x38, Version151, ChipSegaPCM),
	{off: 0x3C, size: 4, min: Version151,
		load: func(h *Header, v uint32) { h.SegaPCMInterface = v },
		save: func(h *Header) uint32 { return h.SegaPCMInterface }},
	clockField(0x40, Version151, ChipRF5C68),
	clockField(0x44, Version151, ChipYM2203),
	clockField(0x48, Version151, ChipYM2608),
	clockField(0x4C, Version151, ChipYM2610),
	clockField(0x50, Version151, ChipYM3812),
	clockField(0x54, Version151, ChipYM3526),
	clockField(0x58, Version151, ChipY8950),
	clockField(0x5C, Version151, ChipYMF262),
	clockField(0x60, Version151, ChipYMF278B),
	clockField(0x64, Version151, ChipYMF271),
	clockField(0x68, Version151, ChipYMZ280B),
	clockField(0x6C, Version151, ChipRF5C164),
	clockField(0x70, Version151, ChipPWM),
	clockField(0x74, Version151, ChipAY8910),
	{off: 0x78, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.AY8910Type = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.AY8910Type) }},
	{off: 0x79, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.AY8910Flags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.AY8910Flags) }},
	{off: 0x7A, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.YM2203AYFlags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.YM2203AYFlags) }},
	{off: 0x7B, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.YM2610AYFlags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.YM2610AYFlags) }},
	{off: 0x7C, size: 1, min: Version160,
		load: func(h *Header, v uint32) { h.VolumeModifier = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.VolumeModifier) }},
	{off: 0x7E, size: 1, min: Version160,
		load: func(h *Header, v uint32) { h.LoopBase = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.LoopBase) }},
	{off: 0x7F, size: 1, min: Version151,
		load: func(h *Header, v uint32) { h.LoopModifier = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.LoopModifier) }},
	clockField(0x80, Version161, ChipGBDMG),
	clockField(0x84, Version161, ChipNESAPU),
	clockField(0x88, Version161, ChipMultiPCM),
	clockField(0x8C, Version161, ChipUPD7759),
	clockField(0x90, Version161, ChipOKIM6258),
	{off: 0x94, size: 1, min: Version161,
		load: func(h *Header, v uint32) { h.OKIM6258Flags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.OKIM6258Flags) }},
	{off: 0x95, size: 1, min: Version161,
		load: func(h *Header, v uint32) { h.K054539Flags = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.K054539Flags) }},
	{off: 0x96, size: 1, min: Version161,
		load: func(h *Header, v uint32) { h.C140Type = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.C140Type) }},
	clockField(0x98, Version161, ChipOKIM6295),
	clockField(0x9C, Version161, ChipK051649),
	clockField(0xA0, Version161, ChipK054539),
	clockField(0xA4, Version161, ChipHuC6280),
	clockField(0xA8, Version161, ChipC140),
	clockField(0xAC, Version161, ChipK053260),
	clockField(0xB0, Version161, ChipPOKEY),
	clockField(0xB4, Version161, ChipQSound),
	clockField(0xB8, Version171, ChipSCSP),
	{off: 0xBC, size: 4, min: Version170,
		load: func(h *Header, v uint32) { h.ExtraHeaderOffset = v },
		save: func(h *Header) uint32 { return h.ExtraHeaderOffset }},
	clockField(0xC0, Version171, ChipWonderSwan),
	clockField(0xC4, Version171, ChipVSU),
	clockField(0xC8, Version171, ChipSAA1099),
	clockField(0xCC, Version171, ChipES5503),
	clockField(0xD0, Version171, ChipES5506),
	{off: 0xD4, size: 1, min: Version171,
		load: func(h *Header, v uint32) { h.ES5503Channels = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.ES5503Channels) }},
	{off: 0xD5, size: 1, min: Version171,
		load: func(h *Header, v uint32) { h.ES5506Channels = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.ES5506Channels) }},
	{off: 0xD6, size: 1, min: Version171,
		load: func(h *Header, v uint32) { h.C352ClockDivider = uint8(v) },
		save: func(h *Header) uint32 { return uint32(h.C352ClockDivider) }},
	clockField(0xD8, Version171, ChipX1010),
	clockField(0xDC, Version171, ChipC352),
	clockField(0xE0, Version171, ChipGA20),
	clockField(0xE4, Version172, ChipMikey),
}

// versionHeaderSize returns the maximum header size defined by a given
// format version. Unknown (future) versions get the full 0x100 bytes.
func versionHeaderSize(version uint32) int {
	switch version {
	case Version100:
		return 0x24
	case Version101:
		return 0x28
	case Version110:
		return 0x34
	case Version150:
		return 0x38
	case Version151, Version160:
		return 0x83
	case Version170:
		return 0xC0
	case Version171:
		return 0xE4
	case Version172:
		return 0xE8
	default:
		return headerMaxSize
	}
}

// ParseHeader decodes the main header from the start of data. It returns
// the header and the total header size, which is where the command
// stream (or extra header) begins.
//
// Fields that lie beyond the version-defined header size, beyond the
// declared data offset, or that were introduced after the file's version
// are left zero, per the format's availability rules.
func ParseHeader(data []byte) (*Header, int, error) {
	if len(data) < headerMinSize {
		return nil, 0, &HeaderTooShortError{Context: "main header", Needed: headerMinSize, Available: len(data)}
	}
	if string(data[0:4]) != "Vgm " {
		var ident [4]byte
		copy(ident[:], data[0:4])
		return nil, 0, &InvalidIdentError{Ident: ident}
	}

	h := &Header{}
	h.Version, _ = readU32(data, 0x08, "header version")

	var dataOffset uint32
	if h.Version >= Version150 && len(data) >= 0x38 {
		dataOffset, _ = readU32(data, 0x34, "header data offset")
	}

	versionMax := versionHeaderSize(h.Version)
	dataStart := versionMax
	if dataOffset != 0 {
		dataStart = 0x34 + int(dataOffset)
	}

	// Upper bound for field decoding: bytes overlapping the command
	// stream read as zero, and so do fields past the version's header.
	fieldBound := dataStart
	if versionMax < fieldBound {
		fieldBound = versionMax
	}

	for _, f := range headerFields {
		if !headerFieldReadable(f, h.Version, fieldBound) {
			continue
		}
		var v uint32
		switch f.size {
		case 1:
			b, err := readU8(data, f.off, "header field")
			if err != nil {
				return nil, 0, err
			}
			v = uint32(b)
		case 2:
			w, err := readU16(data, f.off, "header field")
			if err != nil {
				return nil, 0, err
			}
			v = uint32(w)
		default:
			u, err := readU32(data, f.off, "header field")
			if err != nil {
				return nil, 0, err
			}
			v = u
		}
		f.load(h, v)
	}

	if len(data) < dataStart {
		return nil, 0, &HeaderTooShortError{Context: "header data start", Needed: dataStart, Available: len(data)}
	}
	return h, dataStart, nil
}

// headerFieldReadable applies the availability rule: the field's bytes
// must fit below the bound, and files older than v1.50 additionally
// never expose fields introduced after their own version.
func headerFieldReadable(f headerField, version uint32, fieldBound int) bool {
	if f.off+f.size > fieldBound {
		return false
	}
	return version >= Version150 || version >= f.min
}

// appendTo serializes the first size bytes of the header. gd3Offset and
// dataOffset override the stored fields; they depend on what follows the
// header and are computed by the document serializer. With an extra
// header present, size stays at the version-defined length while
// dataOffset points past both headers.
func (h *Header) appendTo(out []byte, gd3Offset, dataOffset uint32, size int) []byte {
	buf := make([]byte, headerMaxSize)
	copy(buf, "Vgm ")
	putU32(buf, 0x08, h.Version)
	for _, f := range headerFields {
		v := f.save(h)
		switch f.off {
		case 0x14:
			v = gd3Offset
		case 0x34:
			v = dataOffset
		}
		switch f.size {
		case 1:
			buf[f.off] = byte(v)
		case 2:
			putU16(buf, f.off, uint16(v))
		default:
			putU32(buf, f.off, v)
		}
	}
	if size > headerMaxSize {
		size = headerMaxSize
	}
	return append(out, buf[:size]...)
}

// Clock returns the clock of a chip instance in Hz, and whether that
// instance is present. A Secondary instance is present only when the
// clock field has bit 31 set.
func (h *Header) Clock(chip Chip, inst Instance) (uint32, bool) {
	if int(chip) >= chipCount {
		return 0, false
	}
	raw := h.Clocks[chip]
	hz := raw &^ uint32(secondaryClockBit)
	if hz == 0 {
		return 0, false
	}
	if inst == Secondary && raw&secondaryClockBit == 0 {
		return 0, false
	}
	return hz, true
}

// SetClock records a chip's master clock. Registering the Secondary
// instance sets bit 31 of the field; the clock itself is shared by both
// instances.
func (h *Header) SetClock(chip Chip, inst Instance, hz uint32) {
	if int(chip) >= chipCount {
		return
	}
	raw := hz &^ uint32(secondaryClockBit)
	if inst == Secondary || h.Clocks[chip]&secondaryClockBit != 0 {
		raw |= secondaryClockBit
	}
	h.Clocks[chip] = raw
}
