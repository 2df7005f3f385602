// builder.go implements fluent document assembly: register chips,
// append commands, set the loop point, attach the extra header and GD3
// chunk, then finalize offsets and totals.

package vgm

// Builder assembles a Document. Calls may be chained; Finalize returns
// the completed document. A Builder is good for one document.
type Builder struct {
	doc       *Document
	loopIndex int
}

// NewBuilder starts an empty document at the given format version.
func NewBuilder(version uint32) *Builder {
	return &Builder{doc: NewDocument(version), loopIndex: -1}
}

// RegisterChip records a chip's master clock in the header. Registering
// a Secondary instance sets the clock field's high bit.
func (b *Builder) RegisterChip(chip Chip, inst Instance, clockHz uint32) *Builder {
	b.doc.Header.SetClock(chip, inst, clockHz)
	return b
}

// Append adds any command to the stream.
func (b *Builder) Append(c Command) *Builder {
	b.doc.AppendCommand(c)
	return b
}

// Wait appends a wait. Durations of exactly 735 or 882 samples use the
// dedicated one-byte opcodes; durations up to 16 use the short form;
// longer waits split into as many 0x61 commands as needed.
func (b *Builder) Wait(samples uint32) *Builder {
	for samples > 0 {
		switch {
		case samples == 735:
			b.Append(Wait735{})
			return b
		case samples == 882:
			b.Append(Wait882{})
			return b
		case samples <= 16:
			b.Append(WaitNibble{N: uint8(samples - 1)})
			return b
		case samples <= 0xFFFF:
			b.Append(WaitSamples{Samples: uint16(samples)})
			return b
		default:
			b.Append(WaitSamples{Samples: 0xFFFF})
			samples -= 0xFFFF
		}
	}
	return b
}

// WriteSN76489 appends a PSG data byte for the given instance.
func (b *Builder) WriteSN76489(inst Instance, value uint8) *Builder {
	return b.Append(SN76489Write{Inst: inst, Value: value})
}

// WriteYM2413 appends an OPLL register write.
func (b *Builder) WriteYM2413(inst Instance, reg, value uint8) *Builder {
	return b.Append(YM2413Write{Inst: inst, Register: reg, Value: value})
}

// WriteYM2612 appends an OPN2 register write on the given port.
func (b *Builder) WriteYM2612(inst Instance, port, reg, value uint8) *Builder {
	return b.Append(YM2612Write{Inst: inst, Port: port, Register: reg, Value: value})
}

// WriteYM2151 appends an OPM register write.
func (b *Builder) WriteYM2151(inst Instance, reg, value uint8) *Builder {
	return b.Append(YM2151Write{Inst: inst, Register: reg, Value: value})
}

// WriteAY8910 appends a PSG register write.
func (b *Builder) WriteAY8910(inst Instance, reg, value uint8) *Builder {
	return b.Append(AY8910Write{Inst: inst, Register: reg, Value: value})
}

// AddDataBlock appends an embedded data block.
func (b *Builder) AddDataBlock(inst Instance, dataType uint8, data []byte) *Builder {
	return b.Append(DataBlock{Inst: inst, DataType: dataType, Data: data})
}

// SetLoopIndex marks the index of the next appended command (or an
// explicit earlier index) as the loop point. The byte offset is
// computed at Finalize.
func (b *Builder) SetLoopIndex(i int) *Builder {
	b.loopIndex = i
	return b
}

// LoopHere marks the current end of the stream as the loop point, so
// the next appended command is the loop target.
func (b *Builder) LoopHere() *Builder {
	b.loopIndex = len(b.doc.Commands)
	return b
}

// SetExtraHeader attaches a per-chip clock/volume override block.
func (b *Builder) SetExtraHeader(x *ExtraHeader) *Builder {
	b.doc.Extra = x
	return b
}

// SetGD3 attaches the metadata chunk.
func (b *Builder) SetGD3(g *GD3) *Builder {
	b.doc.GD3 = g
	return b
}

// SetLoopSamples records the loop duration header field.
func (b *Builder) SetLoopSamples(n uint32) *Builder {
	b.doc.Header.LoopSamples = n
	return b
}

// SetSampleRate records the recording rate header field (Hz, commonly
// 50 or 60; 0 means unknown).
func (b *Builder) SetSampleRate(hz uint32) *Builder {
	b.doc.Header.Rate = hz
	return b
}

// Finalize terminates the stream with EndOfData if absent, fixes the
// loop index, and fills the header's total-samples field from the wait
// commands. The returned document serializes with recomputed offsets.
func (b *Builder) Finalize() *Document {
	doc := b.doc
	n := len(doc.Commands)
	if n == 0 {
		doc.AppendCommand(EndOfData{})
	} else if _, isEnd := doc.Commands[n-1].(EndOfData); !isEnd {
		doc.AppendCommand(EndOfData{})
	}
	doc.SetLoopIndex(b.loopIndex)
	doc.Header.TotalSamples = uint32(doc.TotalSamples())
	return doc
}
