// player.go implements the stream processor: a pull-based iterator over
// a document or an incrementally fed byte buffer that executes DAC
// stream control, expands waits around generated chip writes, and
// honors the loop point, loop count, and fadeout window.

package vgm

import (
	stderrors "errors"
	"io"
)

// DefaultMaxDataBlockSize caps the total bytes of embedded data a
// player will accumulate before failing.
const DefaultMaxDataBlockSize = 32 << 20

// streamState is the per-stream control block for the 0x90-0x95 family.
type streamState struct {
	chip    Chip
	inst    Instance
	port    uint8
	command uint8

	dataBankID uint8
	stepSize   uint8
	stepBase   uint8
	frequency  uint32

	active      bool
	startOffset uint32
	lengthMode  uint8
	dataPos     int
	blockEnd    int // -1 when no block boundary applies

	remaining    uint32
	hasRemaining bool

	nextWriteSample uint64
	sampleFraction  float64
}

// blockRef records where one data block landed, in order of appearance,
// so a fast-call start can resolve a block id to a bank position.
type blockRef struct {
	dataType uint8
	offset   int
	size     int
}

// Player yields the processed command sequence. Next returns io.EOF at
// end of stream; a byte-fed player returns ErrNeedsMoreData when the
// buffered input ends mid-command, and resumes after Feed.
type Player struct {
	doc      *Document
	cmdIndex int

	buf          []byte
	pos          int
	headerParsed bool
	header       *Header
	cmdEnd       int // 0 until a GD3 bound is known

	currentSample uint64
	pcmOffset     int

	banks    map[uint8][]byte
	tables   map[uint16]*decompressionTable
	blockIDs []blockRef

	streams     map[uint8]*streamState
	streamOrder []uint8

	pendingWrites  []Command
	pendingWait    uint64
	hasPendingWait bool

	loopCount      uint32 // total passes; 0 means play once
	currentLoops   uint32
	fadeoutSamples uint64
	loopEndSample  uint64
	fadeJumpSample uint64
	inFadeout      bool
	ended          bool

	maxBlockSize   int
	totalBlockSize int
}

func newPlayer() *Player {
	return &Player{
		banks:        make(map[uint8][]byte),
		tables:       make(map[uint16]*decompressionTable),
		streams:      make(map[uint8]*streamState),
		maxBlockSize: DefaultMaxDataBlockSize,
	}
}

// NewPlayer returns a player over a parsed or built document.
func NewPlayer(doc *Document) *Player {
	p := newPlayer()
	p.doc = doc
	p.header = doc.Header
	return p
}

// NewStreamPlayer returns an empty byte-fed player. Push file bytes
// with Feed, starting from the file header.
func NewStreamPlayer() *Player {
	return newPlayer()
}

// Feed appends a chunk of file bytes to a byte-fed player.
func (p *Player) Feed(chunk []byte) {
	p.buf = append(p.buf, chunk...)
}

// SetLoopCount sets the total number of passes through the command
// stream, counting the first. Zero (the default) plays once.
func (p *Player) SetLoopCount(n uint32) { p.loopCount = n }

// SetFadeoutSamples opens a grace window of n samples after the final
// pass, during which playback continues from the loop point (or waits
// are synthesized when the file does not loop) before end of stream.
func (p *Player) SetFadeoutSamples(n uint64) { p.fadeoutSamples = n }

// SetMaxDataBlockSize overrides the embedded-data accumulation cap.
func (p *Player) SetMaxDataBlockSize(n int) { p.maxBlockSize = n }

// CurrentSample reports the playback position in 44100 Hz samples.
func (p *Player) CurrentSample() uint64 { return p.currentSample }

// Header returns the file header, or nil when a byte-fed player has not
// seen enough input yet.
func (p *Player) Header() *Header { return p.header }

// errEndOfInput is an internal fetch result: the source is exhausted
// without an explicit EndOfData command.
var errEndOfInput = stderrors.New("vgm: end of input")

// Next returns the next processed command. It returns io.EOF at end of
// stream and ErrNeedsMoreData when a byte-fed player must be fed.
func (p *Player) Next() (Command, error) {
	for {
		if len(p.pendingWrites) > 0 {
			c := p.pendingWrites[0]
			p.pendingWrites = p.pendingWrites[1:]
			return c, nil
		}
		if p.hasPendingWait {
			n := p.pendingWait
			p.pendingWait, p.hasPendingWait = 0, false
			if c, ok := p.expandWait(n); ok {
				return c, nil
			}
			continue
		}
		if p.ended {
			return nil, io.EOF
		}

		cmd, err := p.fetch()
		if err == errEndOfInput {
			p.handleEndOfData()
			continue
		}
		if err != nil {
			return nil, err
		}

		switch c := cmd.(type) {
		case EndOfData:
			p.handleEndOfData()

		case DataBlock:
			if err := p.handleDataBlock(c); err != nil {
				return nil, err
			}
			if c.Kind() == BlockROMDump || c.Kind() == BlockRAMWrite {
				return c, nil
			}

		case SetupStreamControl:
			s := p.stream(c.StreamID)
			s.chip, s.inst = streamChipType(c.ChipType)
			s.port, s.command = c.Port, c.Command

		case SetStreamData:
			s := p.stream(c.StreamID)
			s.dataBankID, s.stepSize, s.stepBase = c.DataBankID, c.StepSize, c.StepBase

		case SetStreamFrequency:
			p.stream(c.StreamID).frequency = c.Frequency

		case StartStream:
			p.startStream(c)

		case StopStream:
			if c.StreamID == 0xFF {
				for _, s := range p.streams {
					s.active = false
				}
			} else if s, ok := p.streams[c.StreamID]; ok {
				s.active = false
			}

		case StartStreamFastCall:
			if err := p.startStreamFastCall(c); err != nil {
				return nil, err
			}

		case SeekOffset:
			p.pcmOffset = int(c.Offset)

		case YM2612DACWait:
			if bank := p.banks[0x00]; p.pcmOffset < len(bank) {
				p.pendingWrites = append(p.pendingWrites, YM2612Write{
					Inst: Primary, Port: 0, Register: 0x2A, Value: bank[p.pcmOffset],
				})
			}
			p.pcmOffset++
			p.addPendingWait(uint64(c.Samples()))

		default:
			if n, isWait := waitDuration(cmd); isWait {
				if out, ok := p.expandWait(uint64(n)); ok {
					return out, nil
				}
				continue
			}
			return cmd, nil
		}
	}
}

// fetch pulls the next raw command from the source without processing.
func (p *Player) fetch() (Command, error) {
	if p.doc != nil {
		if p.cmdIndex >= len(p.doc.Commands) {
			return nil, errEndOfInput
		}
		c := p.doc.Commands[p.cmdIndex]
		p.cmdIndex++
		return c, nil
	}

	if !p.headerParsed {
		h, dataStart, err := ParseHeader(p.buf)
		if err != nil {
			var short *HeaderTooShortError
			if stderrors.As(err, &short) {
				return nil, ErrNeedsMoreData
			}
			return nil, err
		}
		p.header = h
		p.headerParsed = true
		p.pos = dataStart
		if h.GD3Offset != 0 {
			p.cmdEnd = 0x14 + int(h.GD3Offset)
		}
	}

	bound := len(p.buf)
	if p.cmdEnd > 0 && p.cmdEnd < bound {
		bound = p.cmdEnd
	}
	if p.cmdEnd > 0 && p.pos >= p.cmdEnd {
		return nil, errEndOfInput
	}
	if p.pos >= len(p.buf) {
		return nil, ErrNeedsMoreData
	}
	cmd, n, err := parseCommand(p.buf[:bound], p.pos)
	if err != nil {
		if stderrors.Is(err, ErrUnexpectedEOF) && (p.cmdEnd == 0 || bound < p.cmdEnd) {
			return nil, ErrNeedsMoreData
		}
		return nil, err
	}
	p.pos += n
	return cmd, nil
}

// loopTarget reports whether the source has a usable loop point.
func (p *Player) loopTarget() bool {
	if p.doc != nil {
		_, ok := p.doc.LoopIndex()
		return ok
	}
	return p.header != nil && p.header.LoopOffset != 0
}

// jumpToLoop rewinds the source to the loop point and resets the data
// cursors. Stream schedules keep running across the seam.
func (p *Player) jumpToLoop() {
	if p.doc != nil {
		if i, ok := p.doc.LoopIndex(); ok {
			p.cmdIndex = i
		}
	} else {
		p.pos = 0x1C + int(p.header.LoopOffset)
	}
	p.pcmOffset = 0
	for _, s := range p.streams {
		s.dataPos = int(s.startOffset) + int(s.stepBase)
	}
}

// handleEndOfData runs the loop/fadeout controller when the command
// stream ends. It returns true when the stream is over.
func (p *Player) handleEndOfData() bool {
	hasLoop := p.loopTarget()

	if p.inFadeout {
		fadeEnd := p.loopEndSample + p.fadeoutSamples
		if p.currentSample >= fadeEnd {
			p.ended = true
			return true
		}
		// Re-enter the loop body only while it advances time; a silent
		// loop would never close the window.
		if hasLoop && p.currentSample > p.fadeJumpSample {
			p.fadeJumpSample = p.currentSample
			p.jumpToLoop()
			return false
		}
		p.addPendingWait(fadeEnd - p.currentSample)
		p.ended = true
		return false
	}

	p.currentLoops++
	limit := p.loopCount
	if limit == 0 {
		limit = 1
	}
	if p.currentLoops < limit && hasLoop {
		p.jumpToLoop()
		return false
	}

	if p.fadeoutSamples > 0 {
		p.inFadeout = true
		p.loopEndSample = p.currentSample
		p.fadeJumpSample = p.currentSample
		if hasLoop {
			p.jumpToLoop()
		} else {
			p.addPendingWait(p.fadeoutSamples)
			p.ended = true
		}
		return false
	}

	p.ended = true
	return true
}

func (p *Player) addPendingWait(n uint64) {
	if n == 0 {
		return
	}
	p.pendingWait += n
	p.hasPendingWait = true
}

// expandWait advances time by n samples, interleaving due stream
// writes. It returns the command to yield now, or false when nothing is
// due and the caller should continue.
func (p *Player) expandWait(n uint64) (Command, bool) {
	if p.inFadeout {
		fadeEnd := p.loopEndSample + p.fadeoutSamples
		if p.currentSample >= fadeEnd {
			p.ended = true
			return nil, false
		}
		if p.currentSample+n > fadeEnd {
			n = fadeEnd - p.currentSample
		}
	}
	if n == 0 {
		return nil, false
	}

	chunk := n
	if chunk > 0xFFFF {
		chunk = 0xFFFF
	}
	rest := n - chunk
	target := p.currentSample + chunk

	if t, due := p.earliestStreamWrite(target); due {
		gap := t - p.currentSample
		p.currentSample = t
		p.generateStreamWrites()
		p.addPendingWait(target - t + rest)
		if gap > 0 {
			return WaitSamples{Samples: uint16(gap)}, true
		}
		if len(p.pendingWrites) > 0 {
			c := p.pendingWrites[0]
			p.pendingWrites = p.pendingWrites[1:]
			return c, true
		}
		return nil, false
	}

	p.currentSample = target
	p.addPendingWait(rest)
	return WaitSamples{Samples: uint16(chunk)}, true
}

// earliestStreamWrite finds the earliest due write time of any active
// stream within [currentSample, target]. An overdue schedule is due
// immediately.
func (p *Player) earliestStreamWrite(target uint64) (uint64, bool) {
	var best uint64
	found := false
	for _, id := range p.streamOrder {
		s := p.streams[id]
		if !s.active || s.frequency == 0 {
			continue
		}
		t := s.nextWriteSample
		if t < p.currentSample {
			t = p.currentSample
		}
		if t > target {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	return best, found
}

// generateStreamWrites emits one write for every active stream whose
// schedule has come due, in stream-id order.
func (p *Player) generateStreamWrites() {
	for _, id := range p.streamOrder {
		s := p.streams[id]
		if !s.active || s.frequency == 0 || s.nextWriteSample > p.currentSample {
			continue
		}
		p.generateStreamWrite(s)
	}
}

func (p *Player) generateStreamWrite(s *streamState) {
	if s.lengthMode == 1 && s.hasRemaining && s.remaining == 0 {
		s.active = false
		return
	}
	if s.lengthMode == 3 && s.blockEnd >= 0 && s.dataPos >= s.blockEnd {
		s.active = false
		return
	}
	bank := p.banks[s.dataBankID]
	if s.dataPos >= len(bank) {
		s.active = false
		return
	}

	if c, ok := streamWriteCommand(s.chip, s.inst, s.port, s.command, bank[s.dataPos]); ok {
		p.pendingWrites = append(p.pendingWrites, c)
	}

	step := int(s.stepSize)
	if step == 0 {
		step = 1
	}
	s.dataPos += step
	if s.lengthMode == 1 && s.hasRemaining {
		s.remaining--
	}

	interval := float64(SamplesPerSecond) / float64(s.frequency)
	whole := uint64(interval)
	s.sampleFraction += interval - float64(whole)
	if s.sampleFraction >= 1.0 {
		whole++
		s.sampleFraction -= 1.0
	}
	s.nextWriteSample += whole
	if s.nextWriteSample < p.currentSample {
		s.nextWriteSample = p.currentSample
	}
}

// stream returns the control block for a stream id, creating it on
// first reference and keeping the id-ordered visit list.
func (p *Player) stream(id uint8) *streamState {
	if s, ok := p.streams[id]; ok {
		return s
	}
	s := &streamState{blockEnd: -1}
	p.streams[id] = s
	i := 0
	for i < len(p.streamOrder) && p.streamOrder[i] < id {
		i++
	}
	p.streamOrder = append(p.streamOrder, 0)
	copy(p.streamOrder[i+1:], p.streamOrder[i:])
	p.streamOrder[i] = id
	return s
}

func (p *Player) startStream(c StartStream) {
	s := p.stream(c.StreamID)
	if c.StartOffset != 0xFFFFFFFF {
		s.startOffset = c.StartOffset
		s.dataPos = int(c.StartOffset) + int(s.stepBase)
	}
	s.blockEnd = -1
	s.lengthMode = c.LengthMode & 0x03
	s.hasRemaining = false
	switch s.lengthMode {
	case 1:
		s.remaining, s.hasRemaining = c.DataLength, true
	case 2:
		// Length in milliseconds; convert to a command count at the
		// stream's current rate.
		s.remaining = uint32(uint64(s.frequency) * uint64(c.DataLength) / 1000)
		s.hasRemaining = true
		s.lengthMode = 1
	}
	s.active = true
	s.nextWriteSample = p.currentSample
	s.sampleFraction = 0
}

func (p *Player) startStreamFastCall(c StartStreamFastCall) error {
	s := p.stream(c.StreamID)
	if int(c.BlockID) >= len(p.blockIDs) {
		return dataInconsistencyf("fast-call start: block id %d but only %d blocks seen", c.BlockID, len(p.blockIDs))
	}
	ref := p.blockIDs[c.BlockID]
	if ref.dataType != s.dataBankID {
		return dataInconsistencyf("fast-call start: block %d is in bank 0x%02X, stream %s uses bank 0x%02X",
			c.BlockID, ref.dataType, s.chip, s.dataBankID)
	}
	s.startOffset = uint32(ref.offset)
	s.dataPos = ref.offset + int(s.stepBase)
	s.blockEnd = ref.offset + ref.size
	s.lengthMode = 3
	s.hasRemaining = false
	s.active = true
	s.nextWriteSample = p.currentSample
	s.sampleFraction = 0
	return nil
}

// handleDataBlock internalizes stored block variants and records every
// block in the id map. ROM and RAM variants pass through to the caller.
func (p *Player) handleDataBlock(c DataBlock) error {
	if p.totalBlockSize+len(c.Data) > p.maxBlockSize {
		return &DataBlockSizeExceededError{
			Current:   p.totalBlockSize,
			Limit:     p.maxBlockSize,
			Attempted: len(c.Data),
		}
	}

	switch c.Kind() {
	case BlockUncompressed:
		bank := p.banks[c.DataType]
		p.blockIDs = append(p.blockIDs, blockRef{c.DataType, len(bank), len(c.Data)})
		p.banks[c.DataType] = append(bank, c.Data...)
		p.totalBlockSize += len(c.Data)

	case BlockCompressed:
		h, _, err := parseCompressedHeader(c.Data)
		if err != nil {
			return err
		}
		table := p.tables[tableKey(h.compressionType, h.subType)]
		decoded, err := decodeCompressedStream(c.Data, table)
		if err != nil {
			return err
		}
		bankID := c.DataType - 0x40
		bank := p.banks[bankID]
		p.blockIDs = append(p.blockIDs, blockRef{bankID, len(bank), len(decoded)})
		p.banks[bankID] = append(bank, decoded...)
		p.totalBlockSize += len(decoded)

	case BlockDecompressionTable:
		t, err := parseDecompressionTable(c.Data)
		if err != nil {
			return err
		}
		p.tables[tableKey(t.compressionType, t.subType)] = t
		p.blockIDs = append(p.blockIDs, blockRef{c.DataType, 0, 0})

	default: // ROM dump or RAM write, passed through
		p.blockIDs = append(p.blockIDs, blockRef{c.DataType, 0, len(c.Data)})
	}
	return nil
}

// tableKey identifies a decompression table by the scheme and sub-type
// it decodes; a later table for the same pair replaces the earlier one.
func tableKey(compressionType, subType uint8) uint16 {
	return uint16(compressionType)<<8 | uint16(subType)
}
