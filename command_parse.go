// command_parse.go implements the single-command parser: a dispatch
// over the opcode byte covering every documented command, the paired
// secondary opcode forms, the reserved ranges, and the one-byte
// unknown-opcode fallback.

package vgm

// parseCommand decodes one command starting at data[off]. It returns
// the command and the number of bytes consumed, including the opcode.
func parseCommand(data []byte, off int) (Command, int, error) {
	op, err := readU8(data, off, "command opcode")
	if err != nil {
		return nil, 0, err
	}

	switch {
	case op == 0x30:
		v, err := readU8(data, off+1, "SN76489 write")
		if err != nil {
			return nil, 0, err
		}
		return SN76489Write{Inst: Secondary, Value: v}, 2, nil

	case op == 0x3F:
		v, err := readU8(data, off+1, "Game Gear stereo write")
		if err != nil {
			return nil, 0, err
		}
		return GameGearStereoWrite{Inst: Secondary, Value: v}, 2, nil

	case op >= 0x31 && op <= 0x3E:
		v, err := readU8(data, off+1, "reserved command")
		if err != nil {
			return nil, 0, err
		}
		return ReservedU8{Op: op, Value: v}, 2, nil

	case op == 0x40:
		reg, val, err := readOperandPair(data, off, "Mikey write")
		if err != nil {
			return nil, 0, err
		}
		return MikeyWrite{Register: reg, Value: val}, 3, nil

	case op >= 0x41 && op <= 0x4E:
		v, err := readU16(data, off+1, "reserved command")
		if err != nil {
			return nil, 0, err
		}
		return ReservedU16{Op: op, Value: v}, 3, nil

	case op == 0x4F:
		v, err := readU8(data, off+1, "Game Gear stereo write")
		if err != nil {
			return nil, 0, err
		}
		return GameGearStereoWrite{Inst: Primary, Value: v}, 2, nil

	case op == 0x50:
		v, err := readU8(data, off+1, "SN76489 write")
		if err != nil {
			return nil, 0, err
		}
		return SN76489Write{Inst: Primary, Value: v}, 2, nil

	case op >= 0x51 && op <= 0x5F:
		return parseYMWrite(data, off, op, Primary)

	case op == 0x61:
		n, err := readU16(data, off+1, "wait samples")
		if err != nil {
			return nil, 0, err
		}
		return WaitSamples{Samples: n}, 3, nil

	case op == 0x62:
		return Wait735{}, 1, nil

	case op == 0x63:
		return Wait882{}, 1, nil

	case op == 0x66:
		return EndOfData{}, 1, nil

	case op == 0x67:
		return parseDataBlock(data, off)

	case op == 0x68:
		return parsePCMRAMWrite(data, off)

	case op >= 0x70 && op <= 0x7F:
		return WaitNibble{N: op & 0x0F}, 1, nil

	case op >= 0x80 && op <= 0x8F:
		return YM2612DACWait{N: op & 0x0F}, 1, nil

	case op >= 0x90 && op <= 0x95:
		return parseStreamControl(data, off, op)

	case op == 0xA0:
		reg, val, err := readOperandPair(data, off, "AY8910 write")
		if err != nil {
			return nil, 0, err
		}
		inst, reg := operandInstance(reg)
		return AY8910Write{Inst: inst, Register: reg, Value: val}, 3, nil

	case op >= 0xA1 && op <= 0xAF:
		return parseYMWrite(data, off, op-0x50, Secondary)

	case op >= 0xB0 && op <= 0xBF:
		return parseRegValueWrite(data, off, op)

	case op >= 0xC0 && op <= 0xC8:
		return parseOffsetWrite(data, off, op)

	case op >= 0xC9 && op <= 0xCF || op >= 0xD7 && op <= 0xDF:
		v, err := readU24(data, off+1, "reserved command")
		if err != nil {
			return nil, 0, err
		}
		return ReservedU24{Op: op, Value: v}, 4, nil

	case op >= 0xD0 && op <= 0xD6:
		return parseWideWrite(data, off, op)

	case op == 0xE0:
		v, err := readU32(data, off+1, "seek offset")
		if err != nil {
			return nil, 0, err
		}
		return SeekOffset{Offset: v}, 5, nil

	case op == 0xE1:
		b, err := readBytes(data, off+1, 4, "C352 write")
		if err != nil {
			return nil, 0, err
		}
		inst, hi := operandInstance(b[0])
		return C352Write{
			Inst:     inst,
			Register: uint16(hi)<<8 | uint16(b[1]),
			Value:    uint16(b[2])<<8 | uint16(b[3]),
		}, 5, nil

	case op >= 0xE2:
		v, err := readU32(data, off+1, "reserved command")
		if err != nil {
			return nil, 0, err
		}
		return ReservedU32{Op: op, Value: v}, 5, nil

	default:
		return UnknownCommand{Op: op}, 1, nil
	}
}

// readOperandPair reads the two operand bytes following an opcode.
func readOperandPair(data []byte, off int, context string) (uint8, uint8, error) {
	b, err := readBytes(data, off+1, 2, context)
	if err != nil {
		return 0, 0, err
	}
	return b[0], b[1], nil
}

// operandInstance splits the instance flag out of an operand's high bit.
func operandInstance(b uint8) (Instance, uint8) {
	if b&0x80 != 0 {
		return Secondary, b & 0x7F
	}
	return Primary, b
}

// parseYMWrite handles the 0x51-0x5F primary bases (and their 0xA1-0xAF
// secondary forms, mapped back to the base by the caller).
func parseYMWrite(data []byte, off int, base byte, inst Instance) (Command, int, error) {
	reg, val, err := readOperandPair(data, off, "YM-family write")
	if err != nil {
		return nil, 0, err
	}
	switch base {
	case 0x51:
		return YM2413Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x52, 0x53:
		return YM2612Write{Inst: inst, Port: base - 0x52, Register: reg, Value: val}, 3, nil
	case 0x54:
		return YM2151Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x55:
		return YM2203Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x56, 0x57:
		return YM2608Write{Inst: inst, Port: base - 0x56, Register: reg, Value: val}, 3, nil
	case 0x58, 0x59:
		return YM2610Write{Inst: inst, Port: base - 0x58, Register: reg, Value: val}, 3, nil
	case 0x5A:
		return YM3812Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x5B:
		return YM3526Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x5C:
		return Y8950Write{Inst: inst, Register: reg, Value: val}, 3, nil
	case 0x5D:
		return YMZ280BWrite{Inst: inst, Register: reg, Value: val}, 3, nil
	default: // 0x5E, 0x5F
		return YMF262Write{Inst: inst, Port: base - 0x5E, Register: reg, Value: val}, 3, nil
	}
}

// parseRegValueWrite handles the 0xB0-0xBF group: register operand with
// the instance in its high bit, then a value operand.
func parseRegValueWrite(data []byte, off int, op byte) (Command, int, error) {
	b0, b1, err := readOperandPair(data, off, "chip register write")
	if err != nil {
		return nil, 0, err
	}
	if op == 0xB2 {
		return PWMWrite{Register: b0 >> 4, Value: uint16(b0&0x0F)<<8 | uint16(b1)}, 3, nil
	}
	inst, reg := operandInstance(b0)
	switch op {
	case 0xB0:
		return RF5C68Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB1:
		return RF5C164Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB3:
		return GBDMGWrite{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB4:
		return NESAPUWrite{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB5:
		return MultiPCMWrite{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB6:
		return UPD7759Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB7:
		return OKIM6258Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB8:
		return OKIM6295Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xB9:
		return HuC6280Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xBA:
		return K053260Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xBB:
		return POKEYWrite{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xBC:
		return WonderSwanWrite{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xBD:
		return SAA1099Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	case 0xBE:
		return ES5506Write8{Inst: inst, Register: reg, Value: b1}, 3, nil
	default: // 0xBF
		return GA20Write{Inst: inst, Register: reg, Value: b1}, 3, nil
	}
}

// parseOffsetWrite handles the 0xC0-0xC8 group.
func parseOffsetWrite(data []byte, off int, op byte) (Command, int, error) {
	b, err := readBytes(data, off+1, 3, "chip offset write")
	if err != nil {
		return nil, 0, err
	}
	switch op {
	case 0xC0:
		offset := uint16(b[0]) | uint16(b[1])<<8
		inst := Primary
		if offset&0x8000 != 0 {
			inst = Secondary
			offset &^= 0x8000
		}
		return SegaPCMWrite{Inst: inst, Offset: offset, Value: b[2]}, 4, nil
	case 0xC1:
		return RF5C68MemWrite{Offset: uint16(b[0]) | uint16(b[1])<<8, Value: b[2]}, 4, nil
	case 0xC2:
		return RF5C164MemWrite{Offset: uint16(b[0]) | uint16(b[1])<<8, Value: b[2]}, 4, nil
	case 0xC3:
		inst, ch := operandInstance(b[0])
		return MultiPCMBankWrite{Inst: inst, Channel: ch, Offset: uint16(b[1]) | uint16(b[2])<<8}, 4, nil
	case 0xC4:
		return QSoundWrite{Register: b[2], Value: uint16(b[0])<<8 | uint16(b[1])}, 4, nil
	}
	inst, hi := operandInstance(b[0])
	offset := uint16(hi)<<8 | uint16(b[1])
	switch op {
	case 0xC5:
		return SCSPWrite{Inst: inst, Offset: offset, Value: b[2]}, 4, nil
	case 0xC6:
		return WonderSwanMemWrite{Inst: inst, Offset: offset, Value: b[2]}, 4, nil
	case 0xC7:
		return VSUWrite{Inst: inst, Offset: offset, Value: b[2]}, 4, nil
	default: // 0xC8
		return X1010Write{Inst: inst, Offset: offset, Value: b[2]}, 4, nil
	}
}

// parseWideWrite handles the 0xD0-0xD6 group.
func parseWideWrite(data []byte, off int, op byte) (Command, int, error) {
	b, err := readBytes(data, off+1, 3, "chip port write")
	if err != nil {
		return nil, 0, err
	}
	inst, hi := operandInstance(b[0])
	switch op {
	case 0xD0:
		return YMF278BWrite{Inst: inst, Port: hi, Register: b[1], Value: b[2]}, 4, nil
	case 0xD1:
		return YMF271Write{Inst: inst, Port: hi, Register: b[1], Value: b[2]}, 4, nil
	case 0xD2:
		return K051649Write{Inst: inst, Port: hi, Register: b[1], Value: b[2]}, 4, nil
	case 0xD3:
		return K054539Write{Inst: inst, Register: uint16(hi)<<8 | uint16(b[1]), Value: b[2]}, 4, nil
	case 0xD4:
		return C140Write{Inst: inst, Register: uint16(hi)<<8 | uint16(b[1]), Value: b[2]}, 4, nil
	case 0xD5:
		return ES5503Write{Inst: inst, Register: uint16(hi)<<8 | uint16(b[1]), Value: b[2]}, 4, nil
	default: // 0xD6
		return ES5506Write16{Inst: inst, Register: hi, Value: uint16(b[1])<<8 | uint16(b[2])}, 4, nil
	}
}

// parseStreamControl handles the DAC stream control opcodes 0x90-0x95.
func parseStreamControl(data []byte, off int, op byte) (Command, int, error) {
	switch op {
	case 0x90:
		b, err := readBytes(data, off+1, 4, "stream control setup")
		if err != nil {
			return nil, 0, err
		}
		return SetupStreamControl{StreamID: b[0], ChipType: b[1], Port: b[2], Command: b[3]}, 5, nil
	case 0x91:
		b, err := readBytes(data, off+1, 4, "stream data setup")
		if err != nil {
			return nil, 0, err
		}
		return SetStreamData{StreamID: b[0], DataBankID: b[1], StepSize: b[2], StepBase: b[3]}, 5, nil
	case 0x92:
		id, err := readU8(data, off+1, "stream frequency")
		if err != nil {
			return nil, 0, err
		}
		freq, err := readU32(data, off+2, "stream frequency")
		if err != nil {
			return nil, 0, err
		}
		return SetStreamFrequency{StreamID: id, Frequency: freq}, 6, nil
	case 0x93:
		b, err := readBytes(data, off+1, 10, "stream start")
		if err != nil {
			return nil, 0, err
		}
		return StartStream{
			StreamID:    b[0],
			StartOffset: uint32(b[1]) | uint32(b[2])<<8 | uint32(b[3])<<16 | uint32(b[4])<<24,
			LengthMode:  b[5],
			DataLength:  uint32(b[6]) | uint32(b[7])<<8 | uint32(b[8])<<16 | uint32(b[9])<<24,
		}, 11, nil
	case 0x94:
		id, err := readU8(data, off+1, "stream stop")
		if err != nil {
			return nil, 0, err
		}
		return StopStream{StreamID: id}, 2, nil
	default: // 0x95
		b, err := readBytes(data, off+1, 4, "stream fast call")
		if err != nil {
			return nil, 0, err
		}
		return StartStreamFastCall{
			StreamID: b[0],
			BlockID:  uint16(b[1]) | uint16(b[2])<<8,
			Flags:    b[3],
		}, 5, nil
	}
}

// parseDataBlock handles opcode 0x67. Bit 31 of the size selects the
// Secondary instance.
func parseDataBlock(data []byte, off int) (Command, int, error) {
	marker, err := readU8(data, off+1, "data block marker")
	if err != nil {
		return nil, 0, err
	}
	if marker != 0x66 {
		return nil, 0, dataInconsistencyf("data block at 0x%X: marker 0x%02X, want 0x66", off, marker)
	}
	dataType, err := readU8(data, off+2, "data block type")
	if err != nil {
		return nil, 0, err
	}
	rawSize, err := readU32(data, off+3, "data block size")
	if err != nil {
		return nil, 0, err
	}
	inst := Primary
	if rawSize&secondaryClockBit != 0 {
		inst = Secondary
	}
	size := int(rawSize &^ uint32(secondaryClockBit))
	payload, err := readBytes(data, off+7, size, "data block payload")
	if err != nil {
		return nil, 0, err
	}
	blk := DataBlock{Inst: inst, DataType: dataType, Data: make([]byte, size)}
	copy(blk.Data, payload)
	return blk, 7 + size, nil
}

// parsePCMRAMWrite handles opcode 0x68.
func parsePCMRAMWrite(data []byte, off int) (Command, int, error) {
	marker, err := readU8(data, off+1, "pcm ram write marker")
	if err != nil {
		return nil, 0, err
	}
	if marker != 0x66 {
		return nil, 0, dataInconsistencyf("pcm ram write at 0x%X: marker 0x%02X, want 0x66", off, marker)
	}
	b, err := readBytes(data, off+2, 10, "pcm ram write")
	if err != nil {
		return nil, 0, err
	}
	return PCMRAMWrite{
		ChipType:    b[0],
		ReadOffset:  uint32(b[1]) | uint32(b[2])<<8 | uint32(b[3])<<16,
		WriteOffset: uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16,
		Size:        uint32(b[7]) | uint32(b[8])<<8 | uint32(b[9])<<16,
	}, 12, nil
}
