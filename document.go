// document.go implements the in-memory document model: header, optional
// extra header, the ordered command sequence, and the optional GD3
// chunk, with parsing from and serialization to the file layout.

package vgm

import "github.com/pkg/errors"

// Document is the parsed or built representation of one file. It owns
// its commands and embedded data; file offsets (EOF, GD3, data, loop)
// are recomputed on serialization, so the stored header offsets are
// advisory once a Document exists.
type Document struct {
	Header *Header
	Extra  *ExtraHeader
	GD3    *GD3

	Commands []Command

	// loopIndex is the command index playback resumes at after
	// EndOfData, or -1 when the file does not loop.
	loopIndex int
}

// CommandSpan is one entry of the sourcemap: the absolute byte range a
// command occupies in the serialized file.
type CommandSpan struct {
	Offset int
	Length int
}

// NewDocument returns an empty document at the given format version.
func NewDocument(version uint32) *Document {
	return &Document{
		Header:    &Header{Version: version},
		loopIndex: -1,
	}
}

// ParseDocument decodes a whole file: main header, optional extra
// header, command stream, and optional trailing GD3 chunk.
func ParseDocument(data []byte) (*Document, error) {
	h, dataStart, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	doc := &Document{Header: h, loopIndex: -1}

	if h.ExtraHeaderOffset != 0 {
		extraStart := 0xBC + int(h.ExtraHeaderOffset)
		if extraStart >= len(data) {
			return nil, &OffsetOutOfRangeError{Offset: extraStart, Needed: extraHeaderProlog, Available: len(data), Context: "extra header"}
		}
		doc.Extra, err = ParseExtraHeader(data[extraStart:])
		if err != nil {
			return nil, errors.Wrapf(err, "extra header at 0x%X", extraStart)
		}
	}

	cmdEnd := len(data)
	gd3Start := 0
	if h.GD3Offset != 0 {
		gd3Start = 0x14 + int(h.GD3Offset)
		if gd3Start < cmdEnd {
			cmdEnd = gd3Start
		}
	}

	loopTarget := -1
	if h.LoopOffset != 0 {
		loopTarget = 0x1C + int(h.LoopOffset)
	}

	off := dataStart
	for off < cmdEnd {
		if off == loopTarget {
			doc.loopIndex = len(doc.Commands)
		}
		cmd, n, err := parseCommand(data[:cmdEnd], off)
		if err != nil {
			return nil, errors.Wrapf(err, "command at 0x%X", off)
		}
		doc.Commands = append(doc.Commands, cmd)
		off += n
		if _, isEnd := cmd.(EndOfData); isEnd {
			break
		}
	}

	if h.GD3Offset != 0 {
		if gd3Start >= len(data) {
			return nil, &OffsetOutOfRangeError{Offset: gd3Start, Needed: 12, Available: len(data), Context: "gd3 chunk"}
		}
		doc.GD3, err = ParseGD3(data[gd3Start:])
		if err != nil {
			return nil, errors.Wrapf(err, "gd3 chunk at 0x%X", gd3Start)
		}
	}
	return doc, nil
}

// AppendCommand adds a command to the end of the stream.
func (d *Document) AppendCommand(c Command) {
	d.Commands = append(d.Commands, c)
}

// SetLoopIndex marks the command index playback resumes at after
// EndOfData. A negative index clears the loop.
func (d *Document) SetLoopIndex(i int) {
	if i < 0 || i >= len(d.Commands) {
		d.loopIndex = -1
		return
	}
	d.loopIndex = i
}

// LoopIndex reports the loop command index, if the document loops.
func (d *Document) LoopIndex() (int, bool) {
	if d.loopIndex < 0 || d.loopIndex >= len(d.Commands) {
		return 0, false
	}
	return d.loopIndex, true
}

// TotalSamples sums the duration of every wait command.
func (d *Document) TotalSamples() uint64 {
	var total uint64
	for _, c := range d.Commands {
		if n, ok := waitDuration(c); ok {
			total += uint64(n)
		}
	}
	return total
}

// headerSizes returns the serialized main-header and extra-header
// lengths. The main header always serializes at its version-defined
// size; a nonstandard parsed size is normalized away.
func (d *Document) headerSizes() (int, int) {
	mainSize := versionHeaderSize(d.Header.Version)
	extraSize := 0
	if d.Extra != nil {
		extraSize = d.Extra.serializedSize()
	}
	return mainSize, extraSize
}

// CommandOffsets returns the sourcemap: the byte range each command
// occupies in the canonical serialized layout, index-aligned with
// Commands.
func (d *Document) CommandOffsets() []CommandSpan {
	mainSize, extraSize := d.headerSizes()
	spans := make([]CommandSpan, len(d.Commands))
	off := mainSize + extraSize
	for i, c := range d.Commands {
		n := commandSize(c)
		spans[i] = CommandSpan{Offset: off, Length: n}
		off += n
	}
	return spans
}

// LoopByteOffset returns the value the header's loop offset field
// (relative to 0x1C) takes for the current loop index, or 0 when the
// document does not loop.
func (d *Document) LoopByteOffset() uint32 {
	i, ok := d.LoopIndex()
	if !ok {
		return 0
	}
	mainSize, extraSize := d.headerSizes()
	off := mainSize + extraSize
	for _, c := range d.Commands[:i] {
		off += commandSize(c)
	}
	return uint32(off - 0x1C)
}

// Validate performs a light structural check: at most one EndOfData,
// and only as the last command.
func (d *Document) Validate() error {
	for i, c := range d.Commands {
		if _, isEnd := c.(EndOfData); isEnd && i != len(d.Commands)-1 {
			return dataInconsistencyf("EndOfData at index %d is not the last command", i)
		}
	}
	return nil
}

// Bytes serializes the document. The EOF, GD3, data, and loop offset
// fields are recomputed from the actual layout; everything else is
// emitted as stored.
func (d *Document) Bytes() []byte {
	mainSize, extraSize := d.headerSizes()

	cmdLen := 0
	for _, c := range d.Commands {
		cmdLen += commandSize(c)
	}

	var dataOffset uint32
	if mainSize+extraSize > 0x34 {
		dataOffset = uint32(mainSize + extraSize - 0x34)
	}

	var gd3Offset uint32
	if d.GD3 != nil {
		gd3Offset = uint32(mainSize + extraSize + cmdLen - 0x14)
	}

	if _, ok := d.LoopIndex(); ok {
		d.Header.LoopOffset = d.LoopByteOffset()
	}
	if d.Extra != nil {
		d.Header.ExtraHeaderOffset = uint32(mainSize - 0xBC)
	} else {
		d.Header.ExtraHeaderOffset = 0
	}

	out := make([]byte, 0, mainSize+extraSize+cmdLen+12)
	out = d.Header.appendTo(out, gd3Offset, dataOffset, mainSize)
	if d.Extra != nil {
		out = d.Extra.appendTo(out)
	}
	for _, c := range d.Commands {
		out = c.appendTo(out)
	}
	if d.GD3 != nil {
		out = d.GD3.appendTo(out)
	}
	putU32(out, 0x04, uint32(len(out)-4))
	return out
}
