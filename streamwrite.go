// streamwrite.go maps a DAC stream's (chip, port, command, data) tuple
// onto the concrete chip-write command the stream processor emits.

package vgm

// streamWriteCommand builds the chip write a DAC stream generates for
// one data byte. port and command come from the stream's setup; for
// single-port chips the command byte is the target register and the
// port byte is ignored or folded into a wide register address. Chips
// whose writes cannot be driven one byte at a time report ok = false
// and the byte is skipped.
func streamWriteCommand(chip Chip, inst Instance, port, command, data uint8) (Command, bool) {
	switch chip {
	case ChipSN76489:
		return SN76489Write{Inst: inst, Value: data}, true
	case ChipYM2413:
		return YM2413Write{Inst: inst, Register: command, Value: data}, true
	case ChipYM2612:
		return YM2612Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYM2151:
		return YM2151Write{Inst: inst, Register: command, Value: data}, true
	case ChipSegaPCM:
		return SegaPCMWrite{Inst: inst, Offset: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipRF5C68:
		return RF5C68Write{Inst: inst, Register: command, Value: data}, true
	case ChipYM2203:
		return YM2203Write{Inst: inst, Register: command, Value: data}, true
	case ChipYM2608:
		return YM2608Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYM2610:
		return YM2610Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYM3812:
		return YM3812Write{Inst: inst, Register: command, Value: data}, true
	case ChipYM3526:
		return YM3526Write{Inst: inst, Register: command, Value: data}, true
	case ChipY8950:
		return Y8950Write{Inst: inst, Register: command, Value: data}, true
	case ChipYMF262:
		return YMF262Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYMF278B:
		return YMF278BWrite{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYMF271:
		return YMF271Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipYMZ280B:
		return YMZ280BWrite{Inst: inst, Register: command, Value: data}, true
	case ChipRF5C164:
		return RF5C164Write{Inst: inst, Register: command, Value: data}, true
	case ChipPWM:
		return PWMWrite{Register: port & 0x0F, Value: uint16(command&0x0F)<<8 | uint16(data)}, true
	case ChipAY8910:
		return AY8910Write{Inst: inst, Register: command, Value: data}, true
	case ChipGBDMG:
		return GBDMGWrite{Inst: inst, Register: command, Value: data}, true
	case ChipNESAPU:
		return NESAPUWrite{Inst: inst, Register: command, Value: data}, true
	case ChipMultiPCM:
		return MultiPCMWrite{Inst: inst, Register: command, Value: data}, true
	case ChipUPD7759:
		return UPD7759Write{Inst: inst, Register: command, Value: data}, true
	case ChipOKIM6258:
		return OKIM6258Write{Inst: inst, Register: command, Value: data}, true
	case ChipOKIM6295:
		return OKIM6295Write{Inst: inst, Register: command, Value: data}, true
	case ChipK051649:
		return K051649Write{Inst: inst, Port: port, Register: command, Value: data}, true
	case ChipK054539:
		return K054539Write{Inst: inst, Register: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipHuC6280:
		return HuC6280Write{Inst: inst, Register: command, Value: data}, true
	case ChipC140:
		return C140Write{Inst: inst, Register: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipK053260:
		return K053260Write{Inst: inst, Register: command, Value: data}, true
	case ChipPOKEY:
		return POKEYWrite{Inst: inst, Register: command, Value: data}, true
	case ChipSCSP:
		return SCSPWrite{Inst: inst, Offset: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipWonderSwan:
		return WonderSwanWrite{Inst: inst, Register: command, Value: data}, true
	case ChipVSU:
		return VSUWrite{Inst: inst, Offset: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipSAA1099:
		return SAA1099Write{Inst: inst, Register: command, Value: data}, true
	case ChipES5503:
		return ES5503Write{Inst: inst, Register: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipES5506:
		return ES5506Write8{Inst: inst, Register: command, Value: data}, true
	case ChipX1010:
		return X1010Write{Inst: inst, Offset: uint16(port)<<8 | uint16(command), Value: data}, true
	case ChipGA20:
		return GA20Write{Inst: inst, Register: command, Value: data}, true
	case ChipMikey:
		return MikeyWrite{Register: command, Value: data}, true
	}
	// QSound and C352 take 16-bit values per write; a one-byte stream
	// cannot drive them.
	return nil, false
}
