// command.go defines the Command interface and the non-chip command
// variants: waits, DAC stream control, data blocks, seek, reserved
// ranges, and the end-of-data terminator.

package vgm

// SamplesPerSecond is the time base of the format: every wait is
// denominated in 44100 Hz samples regardless of any chip's clock.
const SamplesPerSecond = 44100

// Command is one entry of the command stream. The set of
// implementations is closed; forward compatibility is handled by the
// UnknownCommand and reserved variants rather than by open extension.
type Command interface {
	// Opcode returns the command's leading byte.
	Opcode() byte
	// appendTo serializes opcode and payload.
	appendTo(out []byte) []byte

	isCommand()
}

// commandSize returns the serialized length of a command in bytes.
func commandSize(c Command) int {
	return len(c.appendTo(nil))
}

// WaitSamples pauses playback for Samples samples (opcode 0x61).
type WaitSamples struct {
	Samples uint16
}

func (WaitSamples) isCommand()   {}
func (WaitSamples) Opcode() byte { return 0x61 }
func (c WaitSamples) appendTo(out []byte) []byte {
	return appendU16(append(out, 0x61), c.Samples)
}

// Wait735 pauses for 735 samples, one NTSC frame (opcode 0x62).
type Wait735 struct{}

func (Wait735) isCommand()   {}
func (Wait735) Opcode() byte { return 0x62 }
func (Wait735) appendTo(out []byte) []byte {
	return append(out, 0x62)
}

// Wait882 pauses for 882 samples, one PAL frame (opcode 0x63).
type Wait882 struct{}

func (Wait882) isCommand()   {}
func (Wait882) Opcode() byte { return 0x63 }
func (Wait882) appendTo(out []byte) []byte {
	return append(out, 0x63)
}

// WaitNibble pauses for N+1 samples (opcodes 0x70-0x7F; N is the low
// nibble, 0 means 1 sample).
type WaitNibble struct {
	N uint8
}

func (WaitNibble) isCommand()     {}
func (c WaitNibble) Opcode() byte { return 0x70 | c.N&0x0F }
func (c WaitNibble) appendTo(out []byte) []byte {
	return append(out, c.Opcode())
}

// Samples returns the wait duration.
func (c WaitNibble) Samples() uint32 { return uint32(c.N&0x0F) + 1 }

// YM2612DACWait writes one byte from the type-0x00 data bank to the
// YM2612 DAC (port 0, register 0x2A) and then pauses for N+1 samples
// (opcodes 0x80-0x8F). The byte comes from the current PCM read cursor,
// which advances by one.
type YM2612DACWait struct {
	N uint8
}

func (YM2612DACWait) isCommand()     {}
func (c YM2612DACWait) Opcode() byte { return 0x80 | c.N&0x0F }
func (c YM2612DACWait) appendTo(out []byte) []byte {
	return append(out, c.Opcode())
}

// Samples returns the wait duration.
func (c YM2612DACWait) Samples() uint32 { return uint32(c.N&0x0F) + 1 }

// EndOfData terminates the command stream (opcode 0x66).
type EndOfData struct{}

func (EndOfData) isCommand()   {}
func (EndOfData) Opcode() byte { return 0x66 }
func (EndOfData) appendTo(out []byte) []byte {
	return append(out, 0x66)
}

// DataBlock embeds a block of data (opcode 0x67): PCM banks for DAC
// streams, compressed streams, decompression tables, or ROM/RAM images,
// classified by DataType. The Secondary instance is encoded as bit 31 of
// the on-disk size field.
type DataBlock struct {
	Inst     Instance
	DataType uint8
	Data     []byte
}

func (DataBlock) isCommand()   {}
func (DataBlock) Opcode() byte { return 0x67 }
func (c DataBlock) appendTo(out []byte) []byte {
	out = append(out, 0x67, 0x66, c.DataType)
	size := uint32(len(c.Data))
	if c.Inst == Secondary {
		size |= secondaryClockBit
	}
	out = appendU32(out, size)
	return append(out, c.Data...)
}

// PCMRAMWrite copies Size bytes from a data bank into chip RAM (opcode
// 0x68). A stored size of zero means 0x0100_0000 bytes.
type PCMRAMWrite struct {
	ChipType    uint8
	ReadOffset  uint32
	WriteOffset uint32
	Size        uint32
}

func (PCMRAMWrite) isCommand()   {}
func (PCMRAMWrite) Opcode() byte { return 0x68 }
func (c PCMRAMWrite) appendTo(out []byte) []byte {
	out = append(out, 0x68, 0x66, c.ChipType)
	out = appendU24(out, c.ReadOffset)
	out = appendU24(out, c.WriteOffset)
	return appendU24(out, c.Size)
}

// EffectiveSize resolves the size-zero special value.
func (c PCMRAMWrite) EffectiveSize() uint32 {
	if c.Size&0xFFFFFF == 0 {
		return 0x01000000
	}
	return c.Size & 0xFFFFFF
}

// SetupStreamControl binds a DAC stream to a chip, port, and register
// (opcode 0x90). Bit 7 of ChipType selects the Secondary instance.
type SetupStreamControl struct {
	StreamID uint8
	ChipType uint8
	Port     uint8
	Command  uint8
}

func (SetupStreamControl) isCommand()   {}
func (SetupStreamControl) Opcode() byte { return 0x90 }
func (c SetupStreamControl) appendTo(out []byte) []byte {
	return append(out, 0x90, c.StreamID, c.ChipType, c.Port, c.Command)
}

// SetStreamData binds a DAC stream to a data bank (opcode 0x91).
// StepSize and StepBase address interleaved banks.
type SetStreamData struct {
	StreamID   uint8
	DataBankID uint8
	StepSize   uint8
	StepBase   uint8
}

func (SetStreamData) isCommand()   {}
func (SetStreamData) Opcode() byte { return 0x91 }
func (c SetStreamData) appendTo(out []byte) []byte {
	return append(out, 0x91, c.StreamID, c.DataBankID, c.StepSize, c.StepBase)
}

// SetStreamFrequency sets a DAC stream's playback rate in Hz
// (opcode 0x92).
type SetStreamFrequency struct {
	StreamID  uint8
	Frequency uint32
}

func (SetStreamFrequency) isCommand()   {}
func (SetStreamFrequency) Opcode() byte { return 0x92 }
func (c SetStreamFrequency) appendTo(out []byte) []byte {
	return appendU32(append(out, 0x92, c.StreamID), c.Frequency)
}

// StartStream activates a DAC stream (opcode 0x93). StartOffset of
// 0xFFFFFFFF keeps the current position. LengthMode: 0 ignore, 1 play
// DataLength commands, 2 play DataLength milliseconds, 3 play to the end
// of the bank.
type StartStream struct {
	StreamID    uint8
	StartOffset uint32
	LengthMode  uint8
	DataLength  uint32
}

func (StartStream) isCommand()   {}
func (StartStream) Opcode() byte { return 0x93 }
func (c StartStream) appendTo(out []byte) []byte {
	out = appendU32(append(out, 0x93, c.StreamID), c.StartOffset)
	return appendU32(append(out, c.LengthMode), c.DataLength)
}

// StopStream stops one stream, or every stream when StreamID is 0xFF
// (opcode 0x94).
type StopStream struct {
	StreamID uint8
}

func (StopStream) isCommand()   {}
func (StopStream) Opcode() byte { return 0x94 }
func (c StopStream) appendTo(out []byte) []byte {
	return append(out, 0x94, c.StreamID)
}

// StartStreamFastCall starts a stream at a previously seen data block,
// addressed by its ordinal among all data blocks (opcode 0x95). Flags
// bit 0 loops the block, bit 4 reverses it.
type StartStreamFastCall struct {
	StreamID uint8
	BlockID  uint16
	Flags    uint8
}

func (StartStreamFastCall) isCommand()   {}
func (StartStreamFastCall) Opcode() byte { return 0x95 }
func (c StartStreamFastCall) appendTo(out []byte) []byte {
	return append(appendU16(append(out, 0x95, c.StreamID), c.BlockID), c.Flags)
}

// SeekOffset repositions the PCM read cursor of the type-0x00 data bank
// (opcode 0xE0).
type SeekOffset struct {
	Offset uint32
}

func (SeekOffset) isCommand()   {}
func (SeekOffset) Opcode() byte { return 0xE0 }
func (c SeekOffset) appendTo(out []byte) []byte {
	return appendU32(append(out, 0xE0), c.Offset)
}

// ReservedU8 is an opcode in a reserved range carrying one payload byte
// (0x30-0x3F after chip dispatch fails).
type ReservedU8 struct {
	Op    byte
	Value uint8
}

func (ReservedU8) isCommand()     {}
func (c ReservedU8) Opcode() byte { return c.Op }
func (c ReservedU8) appendTo(out []byte) []byte {
	return append(out, c.Op, c.Value)
}

// ReservedU16 is a reserved opcode carrying two payload bytes
// (0x41-0x4E). Value holds them little-endian.
type ReservedU16 struct {
	Op    byte
	Value uint16
}

func (ReservedU16) isCommand()     {}
func (c ReservedU16) Opcode() byte { return c.Op }
func (c ReservedU16) appendTo(out []byte) []byte {
	return appendU16(append(out, c.Op), c.Value)
}

// ReservedU24 is a reserved opcode carrying three payload bytes
// (0xC9-0xCF, 0xD7-0xDF). Value holds them little-endian.
type ReservedU24 struct {
	Op    byte
	Value uint32
}

func (ReservedU24) isCommand()     {}
func (c ReservedU24) Opcode() byte { return c.Op }
func (c ReservedU24) appendTo(out []byte) []byte {
	return appendU24(append(out, c.Op), c.Value)
}

// ReservedU32 is a reserved opcode carrying four payload bytes
// (0xE2-0xFF). Value holds them little-endian.
type ReservedU32 struct {
	Op    byte
	Value uint32
}

func (ReservedU32) isCommand()     {}
func (c ReservedU32) Opcode() byte { return c.Op }
func (c ReservedU32) appendTo(out []byte) []byte {
	return appendU32(append(out, c.Op), c.Value)
}

// UnknownCommand preserves an opcode outside every known and reserved
// range. Only the opcode byte is consumed; if a future format revision
// gave the opcode payload bytes, those bytes will be misparsed as
// further commands, so re-saving such a file may corrupt what follows.
type UnknownCommand struct {
	Op byte
}

func (UnknownCommand) isCommand()     {}
func (c UnknownCommand) Opcode() byte { return c.Op }
func (c UnknownCommand) appendTo(out []byte) []byte {
	return append(out, c.Op)
}

// waitDuration reports the number of samples a command pauses for and
// whether it is a wait at all.
func waitDuration(c Command) (uint32, bool) {
	switch w := c.(type) {
	case Wait735:
		return 735, true
	case Wait882:
		return 882, true
	case WaitSamples:
		return uint32(w.Samples), true
	case WaitNibble:
		return w.Samples(), true
	case YM2612DACWait:
		return w.Samples(), true
	default:
		return 0, false
	}
}
