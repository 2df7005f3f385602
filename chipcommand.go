// chipcommand.go defines one command variant per supported chip and the
// opcode mapping rules, including the paired primary/secondary opcode
// forms and the operand-high-bit instance encoding used by the 0xB0,
// 0xC0, 0xD0 and 0xE1 command groups.

package vgm

// ChipWriteCommand is implemented by every chip register write variant.
// The set of implementations is sealed; the callback harness dispatches
// on the concrete type.
type ChipWriteCommand interface {
	Command
	// WriteChip identifies the target chip.
	WriteChip() Chip
	// WriteInstance reports which instance of the chip is addressed.
	WriteInstance() Instance
}

// ymOpcode returns the opcode for a YM-family command with a primary
// base in 0x51-0x5F; the secondary form is base+0x50 (0xA1-0xAF).
func ymOpcode(base byte, inst Instance) byte {
	if inst == Secondary {
		return base + 0x50
	}
	return base
}

// instBit folds an Instance into bit 7 of an operand byte.
func instBit(v uint8, inst Instance) uint8 {
	if inst == Secondary {
		return v | 0x80
	}
	return v &^ 0x80
}

// SN76489Write sends one byte through the PSG's latch/data protocol
// (opcode 0x50; secondary 0x30).
type SN76489Write struct {
	Inst  Instance
	Value uint8
}

func (SN76489Write) isCommand()                {}
func (c SN76489Write) WriteChip() Chip         { return ChipSN76489 }
func (c SN76489Write) WriteInstance() Instance { return c.Inst }
func (c SN76489Write) Opcode() byte {
	if c.Inst == Secondary {
		return 0x30
	}
	return 0x50
}
func (c SN76489Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Value)
}

// GameGearStereoWrite sets the Game Gear PSG stereo mask (opcode 0x4F;
// secondary 0x3F).
type GameGearStereoWrite struct {
	Inst  Instance
	Value uint8
}

func (GameGearStereoWrite) isCommand()                {}
func (c GameGearStereoWrite) WriteChip() Chip         { return ChipSN76489 }
func (c GameGearStereoWrite) WriteInstance() Instance { return c.Inst }
func (c GameGearStereoWrite) Opcode() byte {
	if c.Inst == Secondary {
		return 0x3F
	}
	return 0x4F
}
func (c GameGearStereoWrite) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Value)
}

// YM2413Write writes an OPLL register (opcode 0x51).
type YM2413Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YM2413Write) isCommand()                {}
func (c YM2413Write) WriteChip() Chip         { return ChipYM2413 }
func (c YM2413Write) WriteInstance() Instance { return c.Inst }
func (c YM2413Write) Opcode() byte            { return ymOpcode(0x51, c.Inst) }
func (c YM2413Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM2612Write writes an OPN2 register on port 0 or 1 (opcodes
// 0x52/0x53).
type YM2612Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YM2612Write) isCommand()                {}
func (c YM2612Write) WriteChip() Chip         { return ChipYM2612 }
func (c YM2612Write) WriteInstance() Instance { return c.Inst }
func (c YM2612Write) Opcode() byte            { return ymOpcode(0x52+c.Port&1, c.Inst) }
func (c YM2612Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM2151Write writes an OPM register (opcode 0x54).
type YM2151Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YM2151Write) isCommand()                {}
func (c YM2151Write) WriteChip() Chip         { return ChipYM2151 }
func (c YM2151Write) WriteInstance() Instance { return c.Inst }
func (c YM2151Write) Opcode() byte            { return ymOpcode(0x54, c.Inst) }
func (c YM2151Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM2203Write writes an OPN register (opcode 0x55).
type YM2203Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YM2203Write) isCommand()                {}
func (c YM2203Write) WriteChip() Chip         { return ChipYM2203 }
func (c YM2203Write) WriteInstance() Instance { return c.Inst }
func (c YM2203Write) Opcode() byte            { return ymOpcode(0x55, c.Inst) }
func (c YM2203Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM2608Write writes an OPNA register on port 0 or 1 (opcodes
// 0x56/0x57).
type YM2608Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YM2608Write) isCommand()                {}
func (c YM2608Write) WriteChip() Chip         { return ChipYM2608 }
func (c YM2608Write) WriteInstance() Instance { return c.Inst }
func (c YM2608Write) Opcode() byte            { return ymOpcode(0x56+c.Port&1, c.Inst) }
func (c YM2608Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM2610Write writes an OPNB register on port 0 or 1 (opcodes
// 0x58/0x59).
type YM2610Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YM2610Write) isCommand()                {}
func (c YM2610Write) WriteChip() Chip         { return ChipYM2610 }
func (c YM2610Write) WriteInstance() Instance { return c.Inst }
func (c YM2610Write) Opcode() byte            { return ymOpcode(0x58+c.Port&1, c.Inst) }
func (c YM2610Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM3812Write writes an OPL2 register (opcode 0x5A).
type YM3812Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YM3812Write) isCommand()                {}
func (c YM3812Write) WriteChip() Chip         { return ChipYM3812 }
func (c YM3812Write) WriteInstance() Instance { return c.Inst }
func (c YM3812Write) Opcode() byte            { return ymOpcode(0x5A, c.Inst) }
func (c YM3812Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YM3526Write writes an OPL register (opcode 0x5B).
type YM3526Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YM3526Write) isCommand()                {}
func (c YM3526Write) WriteChip() Chip         { return ChipYM3526 }
func (c YM3526Write) WriteInstance() Instance { return c.Inst }
func (c YM3526Write) Opcode() byte            { return ymOpcode(0x5B, c.Inst) }
func (c YM3526Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// Y8950Write writes an MSX-Audio register (opcode 0x5C).
type Y8950Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (Y8950Write) isCommand()                {}
func (c Y8950Write) WriteChip() Chip         { return ChipY8950 }
func (c Y8950Write) WriteInstance() Instance { return c.Inst }
func (c Y8950Write) Opcode() byte            { return ymOpcode(0x5C, c.Inst) }
func (c Y8950Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YMZ280BWrite writes a PCMD8 register (opcode 0x5D).
type YMZ280BWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (YMZ280BWrite) isCommand()                {}
func (c YMZ280BWrite) WriteChip() Chip         { return ChipYMZ280B }
func (c YMZ280BWrite) WriteInstance() Instance { return c.Inst }
func (c YMZ280BWrite) Opcode() byte            { return ymOpcode(0x5D, c.Inst) }
func (c YMZ280BWrite) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// YMF262Write writes an OPL3 register on port 0 or 1 (opcodes
// 0x5E/0x5F).
type YMF262Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YMF262Write) isCommand()                {}
func (c YMF262Write) WriteChip() Chip         { return ChipYMF262 }
func (c YMF262Write) WriteInstance() Instance { return c.Inst }
func (c YMF262Write) Opcode() byte            { return ymOpcode(0x5E+c.Port&1, c.Inst) }
func (c YMF262Write) appendTo(out []byte) []byte {
	return append(out, c.Opcode(), c.Register, c.Value)
}

// AY8910Write writes a PSG register (opcode 0xA0). The Secondary
// instance is bit 7 of the register operand.
type AY8910Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (AY8910Write) isCommand()                {}
func (c AY8910Write) WriteChip() Chip         { return ChipAY8910 }
func (c AY8910Write) WriteInstance() Instance { return c.Inst }
func (c AY8910Write) Opcode() byte            { return 0xA0 }
func (c AY8910Write) appendTo(out []byte) []byte {
	return append(out, 0xA0, instBit(c.Register, c.Inst), c.Value)
}

// appendRegValue emits the 0xB0-range shape: one register operand with
// the instance in its high bit, one value operand.
func appendRegValue(out []byte, op byte, inst Instance, reg, val uint8) []byte {
	return append(out, op, instBit(reg, inst), val)
}

// RF5C68Write writes an RF5C68 register (opcode 0xB0).
type RF5C68Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (RF5C68Write) isCommand()                {}
func (c RF5C68Write) WriteChip() Chip         { return ChipRF5C68 }
func (c RF5C68Write) WriteInstance() Instance { return c.Inst }
func (c RF5C68Write) Opcode() byte            { return 0xB0 }
func (c RF5C68Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB0, c.Inst, c.Register, c.Value)
}

// RF5C164Write writes an RF5C164 register (opcode 0xB1).
type RF5C164Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (RF5C164Write) isCommand()                {}
func (c RF5C164Write) WriteChip() Chip         { return ChipRF5C164 }
func (c RF5C164Write) WriteInstance() Instance { return c.Inst }
func (c RF5C164Write) Opcode() byte            { return 0xB1 }
func (c RF5C164Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB1, c.Inst, c.Register, c.Value)
}

// PWMWrite writes a 12-bit value to one of the 32X PWM registers
// (opcode 0xB2). The register is the high nibble of the first operand.
type PWMWrite struct {
	Register uint8
	Value    uint16
}

func (PWMWrite) isCommand()                {}
func (c PWMWrite) WriteChip() Chip         { return ChipPWM }
func (c PWMWrite) WriteInstance() Instance { return Primary }
func (c PWMWrite) Opcode() byte            { return 0xB2 }
func (c PWMWrite) appendTo(out []byte) []byte {
	return append(out, 0xB2, c.Register<<4|uint8(c.Value>>8)&0x0F, byte(c.Value))
}

// GBDMGWrite writes a Game Boy APU register (opcode 0xB3). The register
// operand is the address minus 0xFF10.
type GBDMGWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (GBDMGWrite) isCommand()                {}
func (c GBDMGWrite) WriteChip() Chip         { return ChipGBDMG }
func (c GBDMGWrite) WriteInstance() Instance { return c.Inst }
func (c GBDMGWrite) Opcode() byte            { return 0xB3 }
func (c GBDMGWrite) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB3, c.Inst, c.Register, c.Value)
}

// NESAPUWrite writes a 2A03 APU register (opcode 0xB4). The register
// operand is the address minus 0x4000.
type NESAPUWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (NESAPUWrite) isCommand()                {}
func (c NESAPUWrite) WriteChip() Chip         { return ChipNESAPU }
func (c NESAPUWrite) WriteInstance() Instance { return c.Inst }
func (c NESAPUWrite) Opcode() byte            { return 0xB4 }
func (c NESAPUWrite) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB4, c.Inst, c.Register, c.Value)
}

// MultiPCMWrite writes a MultiPCM register (opcode 0xB5).
type MultiPCMWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (MultiPCMWrite) isCommand()                {}
func (c MultiPCMWrite) WriteChip() Chip         { return ChipMultiPCM }
func (c MultiPCMWrite) WriteInstance() Instance { return c.Inst }
func (c MultiPCMWrite) Opcode() byte            { return 0xB5 }
func (c MultiPCMWrite) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB5, c.Inst, c.Register, c.Value)
}

// UPD7759Write writes a uPD7759 register (opcode 0xB6).
type UPD7759Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (UPD7759Write) isCommand()                {}
func (c UPD7759Write) WriteChip() Chip         { return ChipUPD7759 }
func (c UPD7759Write) WriteInstance() Instance { return c.Inst }
func (c UPD7759Write) Opcode() byte            { return 0xB6 }
func (c UPD7759Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB6, c.Inst, c.Register, c.Value)
}

// OKIM6258Write writes an OKIM6258 register (opcode 0xB7).
type OKIM6258Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (OKIM6258Write) isCommand()                {}
func (c OKIM6258Write) WriteChip() Chip         { return ChipOKIM6258 }
func (c OKIM6258Write) WriteInstance() Instance { return c.Inst }
func (c OKIM6258Write) Opcode() byte            { return 0xB7 }
func (c OKIM6258Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB7, c.Inst, c.Register, c.Value)
}

// OKIM6295Write writes an OKIM6295 register (opcode 0xB8).
type OKIM6295Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (OKIM6295Write) isCommand()                {}
func (c OKIM6295Write) WriteChip() Chip         { return ChipOKIM6295 }
func (c OKIM6295Write) WriteInstance() Instance { return c.Inst }
func (c OKIM6295Write) Opcode() byte            { return 0xB8 }
func (c OKIM6295Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB8, c.Inst, c.Register, c.Value)
}

// HuC6280Write writes a PC Engine PSG register (opcode 0xB9).
type HuC6280Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (HuC6280Write) isCommand()                {}
func (c HuC6280Write) WriteChip() Chip         { return ChipHuC6280 }
func (c HuC6280Write) WriteInstance() Instance { return c.Inst }
func (c HuC6280Write) Opcode() byte            { return 0xB9 }
func (c HuC6280Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xB9, c.Inst, c.Register, c.Value)
}

// K053260Write writes a K053260 register (opcode 0xBA).
type K053260Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (K053260Write) isCommand()                {}
func (c K053260Write) WriteChip() Chip         { return ChipK053260 }
func (c K053260Write) WriteInstance() Instance { return c.Inst }
func (c K053260Write) Opcode() byte            { return 0xBA }
func (c K053260Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBA, c.Inst, c.Register, c.Value)
}

// POKEYWrite writes a POKEY register (opcode 0xBB).
type POKEYWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (POKEYWrite) isCommand()                {}
func (c POKEYWrite) WriteChip() Chip         { return ChipPOKEY }
func (c POKEYWrite) WriteInstance() Instance { return c.Inst }
func (c POKEYWrite) Opcode() byte            { return 0xBB }
func (c POKEYWrite) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBB, c.Inst, c.Register, c.Value)
}

// WonderSwanWrite writes a WonderSwan sound register (opcode 0xBC).
type WonderSwanWrite struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (WonderSwanWrite) isCommand()                {}
func (c WonderSwanWrite) WriteChip() Chip         { return ChipWonderSwan }
func (c WonderSwanWrite) WriteInstance() Instance { return c.Inst }
func (c WonderSwanWrite) Opcode() byte            { return 0xBC }
func (c WonderSwanWrite) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBC, c.Inst, c.Register, c.Value)
}

// SAA1099Write writes an SAA1099 register (opcode 0xBD).
type SAA1099Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (SAA1099Write) isCommand()                {}
func (c SAA1099Write) WriteChip() Chip         { return ChipSAA1099 }
func (c SAA1099Write) WriteInstance() Instance { return c.Inst }
func (c SAA1099Write) Opcode() byte            { return 0xBD }
func (c SAA1099Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBD, c.Inst, c.Register, c.Value)
}

// ES5506Write8 writes the low byte of an ES5506 register (opcode 0xBE).
type ES5506Write8 struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (ES5506Write8) isCommand()                {}
func (c ES5506Write8) WriteChip() Chip         { return ChipES5506 }
func (c ES5506Write8) WriteInstance() Instance { return c.Inst }
func (c ES5506Write8) Opcode() byte            { return 0xBE }
func (c ES5506Write8) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBE, c.Inst, c.Register, c.Value)
}

// GA20Write writes an Irem GA20 register (opcode 0xBF).
type GA20Write struct {
	Inst     Instance
	Register uint8
	Value    uint8
}

func (GA20Write) isCommand()                {}
func (c GA20Write) WriteChip() Chip         { return ChipGA20 }
func (c GA20Write) WriteInstance() Instance { return c.Inst }
func (c GA20Write) Opcode() byte            { return 0xBF }
func (c GA20Write) appendTo(out []byte) []byte {
	return appendRegValue(out, 0xBF, c.Inst, c.Register, c.Value)
}

// SegaPCMWrite writes a byte into SegaPCM waveform memory (opcode
// 0xC0). The Secondary instance is bit 15 of the offset.
type SegaPCMWrite struct {
	Inst   Instance
	Offset uint16
	Value  uint8
}

func (SegaPCMWrite) isCommand()                {}
func (c SegaPCMWrite) WriteChip() Chip         { return ChipSegaPCM }
func (c SegaPCMWrite) WriteInstance() Instance { return c.Inst }
func (c SegaPCMWrite) Opcode() byte            { return 0xC0 }
func (c SegaPCMWrite) appendTo(out []byte) []byte {
	off := c.Offset &^ 0x8000
	if c.Inst == Secondary {
		off |= 0x8000
	}
	return append(appendU16(append(out, 0xC0), off), c.Value)
}

// RF5C68MemWrite writes a byte into RF5C68 sample memory (opcode 0xC1).
type RF5C68MemWrite struct {
	Offset uint16
	Value  uint8
}

func (RF5C68MemWrite) isCommand()                {}
func (c RF5C68MemWrite) WriteChip() Chip         { return ChipRF5C68 }
func (c RF5C68MemWrite) WriteInstance() Instance { return Primary }
func (c RF5C68MemWrite) Opcode() byte            { return 0xC1 }
func (c RF5C68MemWrite) appendTo(out []byte) []byte {
	return append(appendU16(append(out, 0xC1), c.Offset), c.Value)
}

// RF5C164MemWrite writes a byte into RF5C164 sample memory (opcode
// 0xC2).
type RF5C164MemWrite struct {
	Offset uint16
	Value  uint8
}

func (RF5C164MemWrite) isCommand()                {}
func (c RF5C164MemWrite) WriteChip() Chip         { return ChipRF5C164 }
func (c RF5C164MemWrite) WriteInstance() Instance { return Primary }
func (c RF5C164MemWrite) Opcode() byte            { return 0xC2 }
func (c RF5C164MemWrite) appendTo(out []byte) []byte {
	return append(appendU16(append(out, 0xC2), c.Offset), c.Value)
}

// MultiPCMBankWrite sets a MultiPCM channel's bank offset (opcode 0xC3).
// The Secondary instance is bit 7 of the channel operand.
type MultiPCMBankWrite struct {
	Inst    Instance
	Channel uint8
	Offset  uint16
}

func (MultiPCMBankWrite) isCommand()                {}
func (c MultiPCMBankWrite) WriteChip() Chip         { return ChipMultiPCM }
func (c MultiPCMBankWrite) WriteInstance() Instance { return c.Inst }
func (c MultiPCMBankWrite) Opcode() byte            { return 0xC3 }
func (c MultiPCMBankWrite) appendTo(out []byte) []byte {
	return appendU16(append(out, 0xC3, instBit(c.Channel, c.Inst)), c.Offset)
}

// QSoundWrite writes a 16-bit value to a QSound register (opcode 0xC4;
// the value is stored big-endian, then the register byte).
type QSoundWrite struct {
	Register uint8
	Value    uint16
}

func (QSoundWrite) isCommand()                {}
func (c QSoundWrite) WriteChip() Chip         { return ChipQSound }
func (c QSoundWrite) WriteInstance() Instance { return Primary }
func (c QSoundWrite) Opcode() byte            { return 0xC4 }
func (c QSoundWrite) appendTo(out []byte) []byte {
	return append(out, 0xC4, byte(c.Value>>8), byte(c.Value), c.Register)
}

// appendOffsetValue emits the 0xC5-0xC8 shape: a big-endian 16-bit
// offset with the instance in its top bit, then a value byte.
func appendOffsetValue(out []byte, op byte, inst Instance, off uint16, val uint8) []byte {
	return append(out, op, instBit(uint8(off>>8), inst), byte(off), val)
}

// SCSPWrite writes a byte into SCSP register memory (opcode 0xC5).
type SCSPWrite struct {
	Inst   Instance
	Offset uint16
	Value  uint8
}

func (SCSPWrite) isCommand()                {}
func (c SCSPWrite) WriteChip() Chip         { return ChipSCSP }
func (c SCSPWrite) WriteInstance() Instance { return c.Inst }
func (c SCSPWrite) Opcode() byte            { return 0xC5 }
func (c SCSPWrite) appendTo(out []byte) []byte {
	return appendOffsetValue(out, 0xC5, c.Inst, c.Offset, c.Value)
}

// WonderSwanMemWrite writes a byte into WonderSwan sample memory
// (opcode 0xC6).
type WonderSwanMemWrite struct {
	Inst   Instance
	Offset uint16
	Value  uint8
}

func (WonderSwanMemWrite) isCommand()                {}
func (c WonderSwanMemWrite) WriteChip() Chip         { return ChipWonderSwan }
func (c WonderSwanMemWrite) WriteInstance() Instance { return c.Inst }
func (c WonderSwanMemWrite) Opcode() byte            { return 0xC6 }
func (c WonderSwanMemWrite) appendTo(out []byte) []byte {
	return appendOffsetValue(out, 0xC6, c.Inst, c.Offset, c.Value)
}

// VSUWrite writes a Virtual Boy VSU register (opcode 0xC7).
type VSUWrite struct {
	Inst   Instance
	Offset uint16
	Value  uint8
}

func (VSUWrite) isCommand()                {}
func (c VSUWrite) WriteChip() Chip         { return ChipVSU }
func (c VSUWrite) WriteInstance() Instance { return c.Inst }
func (c VSUWrite) Opcode() byte            { return 0xC7 }
func (c VSUWrite) appendTo(out []byte) []byte {
	return appendOffsetValue(out, 0xC7, c.Inst, c.Offset, c.Value)
}

// X1010Write writes a Seta X1-010 register (opcode 0xC8).
type X1010Write struct {
	Inst   Instance
	Offset uint16
	Value  uint8
}

func (X1010Write) isCommand()                {}
func (c X1010Write) WriteChip() Chip         { return ChipX1010 }
func (c X1010Write) WriteInstance() Instance { return c.Inst }
func (c X1010Write) Opcode() byte            { return 0xC8 }
func (c X1010Write) appendTo(out []byte) []byte {
	return appendOffsetValue(out, 0xC8, c.Inst, c.Offset, c.Value)
}

// appendPortRegValue emits the 0xD0-0xD2 shape: port, register, value,
// with the instance in the port's high bit.
func appendPortRegValue(out []byte, op byte, inst Instance, port, reg, val uint8) []byte {
	return append(out, op, instBit(port, inst), reg, val)
}

// YMF278BWrite writes an OPL4 register (opcode 0xD0).
type YMF278BWrite struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YMF278BWrite) isCommand()                {}
func (c YMF278BWrite) WriteChip() Chip         { return ChipYMF278B }
func (c YMF278BWrite) WriteInstance() Instance { return c.Inst }
func (c YMF278BWrite) Opcode() byte            { return 0xD0 }
func (c YMF278BWrite) appendTo(out []byte) []byte {
	return appendPortRegValue(out, 0xD0, c.Inst, c.Port, c.Register, c.Value)
}

// YMF271Write writes an OPX register (opcode 0xD1).
type YMF271Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (YMF271Write) isCommand()                {}
func (c YMF271Write) WriteChip() Chip         { return ChipYMF271 }
func (c YMF271Write) WriteInstance() Instance { return c.Inst }
func (c YMF271Write) Opcode() byte            { return 0xD1 }
func (c YMF271Write) appendTo(out []byte) []byte {
	return appendPortRegValue(out, 0xD1, c.Inst, c.Port, c.Register, c.Value)
}

// K051649Write writes an SCC1 register (opcode 0xD2).
type K051649Write struct {
	Inst     Instance
	Port     uint8
	Register uint8
	Value    uint8
}

func (K051649Write) isCommand()                {}
func (c K051649Write) WriteChip() Chip         { return ChipK051649 }
func (c K051649Write) WriteInstance() Instance { return c.Inst }
func (c K051649Write) Opcode() byte            { return 0xD2 }
func (c K051649Write) appendTo(out []byte) []byte {
	return appendPortRegValue(out, 0xD2, c.Inst, c.Port, c.Register, c.Value)
}

// appendWideReg emits the 0xD3-0xD5 shape: a big-endian 16-bit register
// address with the instance in its top bit, then a value byte.
func appendWideReg(out []byte, op byte, inst Instance, reg uint16, val uint8) []byte {
	return append(out, op, instBit(uint8(reg>>8), inst), byte(reg), val)
}

// K054539Write writes a K054539 register (opcode 0xD3).
type K054539Write struct {
	Inst     Instance
	Register uint16
	Value    uint8
}

func (K054539Write) isCommand()                {}
func (c K054539Write) WriteChip() Chip         { return ChipK054539 }
func (c K054539Write) WriteInstance() Instance { return c.Inst }
func (c K054539Write) Opcode() byte            { return 0xD3 }
func (c K054539Write) appendTo(out []byte) []byte {
	return appendWideReg(out, 0xD3, c.Inst, c.Register, c.Value)
}

// C140Write writes a C140 register (opcode 0xD4).
type C140Write struct {
	Inst     Instance
	Register uint16
	Value    uint8
}

func (C140Write) isCommand()                {}
func (c C140Write) WriteChip() Chip         { return ChipC140 }
func (c C140Write) WriteInstance() Instance { return c.Inst }
func (c C140Write) Opcode() byte            { return 0xD4 }
func (c C140Write) appendTo(out []byte) []byte {
	return appendWideReg(out, 0xD4, c.Inst, c.Register, c.Value)
}

// ES5503Write writes an Ensoniq DOC register (opcode 0xD5).
type ES5503Write struct {
	Inst     Instance
	Register uint16
	Value    uint8
}

func (ES5503Write) isCommand()                {}
func (c ES5503Write) WriteChip() Chip         { return ChipES5503 }
func (c ES5503Write) WriteInstance() Instance { return c.Inst }
func (c ES5503Write) Opcode() byte            { return 0xD5 }
func (c ES5503Write) appendTo(out []byte) []byte {
	return appendWideReg(out, 0xD5, c.Inst, c.Register, c.Value)
}

// ES5506Write16 writes a full 16-bit ES5506 register (opcode 0xD6). The
// Secondary instance is bit 7 of the register operand.
type ES5506Write16 struct {
	Inst     Instance
	Register uint8
	Value    uint16
}

func (ES5506Write16) isCommand()                {}
func (c ES5506Write16) WriteChip() Chip         { return ChipES5506 }
func (c ES5506Write16) WriteInstance() Instance { return c.Inst }
func (c ES5506Write16) Opcode() byte            { return 0xD6 }
func (c ES5506Write16) appendTo(out []byte) []byte {
	return append(out, 0xD6, instBit(c.Register, c.Inst), byte(c.Value>>8), byte(c.Value))
}

// C352Write writes a 16-bit value to a C352 register (opcode 0xE1; both
// register and value are stored big-endian). The Secondary instance is
// bit 15 of the register.
type C352Write struct {
	Inst     Instance
	Register uint16
	Value    uint16
}

func (C352Write) isCommand()                {}
func (c C352Write) WriteChip() Chip         { return ChipC352 }
func (c C352Write) WriteInstance() Instance { return c.Inst }
func (c C352Write) Opcode() byte            { return 0xE1 }
func (c C352Write) appendTo(out []byte) []byte {
	return append(out, 0xE1,
		instBit(uint8(c.Register>>8), c.Inst), byte(c.Register),
		byte(c.Value>>8), byte(c.Value))
}

// MikeyWrite writes an Atari Lynx Mikey register (opcode 0x40, v1.72).
type MikeyWrite struct {
	Register uint8
	Value    uint8
}

func (MikeyWrite) isCommand()                {}
func (c MikeyWrite) WriteChip() Chip         { return ChipMikey }
func (c MikeyWrite) WriteInstance() Instance { return Primary }
func (c MikeyWrite) Opcode() byte            { return 0x40 }
func (c MikeyWrite) appendTo(out []byte) []byte {
	return append(out, 0x40, c.Register, c.Value)
}
