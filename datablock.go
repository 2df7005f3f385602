// datablock.go classifies embedded data blocks and decodes the two
// compression schemes (bit packing and DPCM) used by compressed PCM
// streams, including the shared decompression tables they reference.

package vgm

import "github.com/pkg/errors"

// DataBlockKind classifies a data block by its type byte.
type DataBlockKind uint8

const (
	// BlockUncompressed (types 0x00-0x3F) is raw PCM appended to the
	// bank matching the type byte.
	BlockUncompressed DataBlockKind = iota
	// BlockCompressed (types 0x40-0x7E) is a compressed PCM stream;
	// decoded data lands in the bank for type-0x40.
	BlockCompressed
	// BlockDecompressionTable (type 0x7F) is a value table referenced
	// by compressed streams.
	BlockDecompressionTable
	// BlockROMDump (types 0x80-0xBF) is a ROM image addressed by
	// offset; it passes through the stream processor unchanged.
	BlockROMDump
	// BlockRAMWrite (types 0xC0-0xFF) is a RAM image with a 16- or
	// 32-bit write address; it passes through unchanged.
	BlockRAMWrite
)

// Kind classifies the block by its DataType byte.
func (c DataBlock) Kind() DataBlockKind {
	switch {
	case c.DataType <= 0x3F:
		return BlockUncompressed
	case c.DataType <= 0x7E:
		return BlockCompressed
	case c.DataType == 0x7F:
		return BlockDecompressionTable
	case c.DataType <= 0xBF:
		return BlockROMDump
	default:
		return BlockRAMWrite
	}
}

// Compression schemes of a compressed stream block.
const (
	compressionBitPacking = 0x00
	compressionDPCM       = 0x01
)

// Bit-packing sub-types.
const (
	bitPackCopy     = 0x00
	bitPackShift    = 0x01
	bitPackUseTable = 0x02
)

// compressedHeader is the 10-byte prologue of a compressed stream
// block's payload.
type compressedHeader struct {
	compressionType  uint8
	uncompressedSize uint32
	bitsDecompressed uint8
	bitsCompressed   uint8
	subType          uint8
	addValue         uint16
}

func parseCompressedHeader(payload []byte) (compressedHeader, []byte, error) {
	var h compressedHeader
	if len(payload) < 10 {
		return h, nil, &OffsetOutOfRangeError{Offset: 0, Needed: 10, Available: len(payload), Context: "compressed stream header"}
	}
	h.compressionType = payload[0]
	h.uncompressedSize, _ = readU32(payload, 1, "compressed stream size")
	h.bitsDecompressed = payload[5]
	h.bitsCompressed = payload[6]
	h.subType = payload[7]
	h.addValue, _ = readU16(payload, 8, "compressed stream add value")
	return h, payload[10:], nil
}

// decompressionTable is the type-0x7F lookup table. Values are stored
// widened to uint16 regardless of their on-disk width.
type decompressionTable struct {
	compressionType  uint8
	subType          uint8
	bitsDecompressed uint8
	bitsCompressed   uint8
	values           []uint16
}

// parseDecompressionTable decodes a type-0x7F block payload: a 6-byte
// header (scheme, sub-type, bit widths, value count) followed by the
// values, each occupying ceil(bitsDecompressed/8) bytes little-endian.
func parseDecompressionTable(payload []byte) (*decompressionTable, error) {
	if len(payload) < 6 {
		return nil, &OffsetOutOfRangeError{Offset: 0, Needed: 6, Available: len(payload), Context: "decompression table header"}
	}
	t := &decompressionTable{
		compressionType:  payload[0],
		subType:          payload[1],
		bitsDecompressed: payload[2],
		bitsCompressed:   payload[3],
	}
	count := int(payload[4]) | int(payload[5])<<8
	width := valueWidth(t.bitsDecompressed)
	if width == 0 {
		return nil, dataInconsistencyf("decompression table: unsupported value width %d bits", t.bitsDecompressed)
	}
	if len(payload) < 6+count*width {
		return nil, &OffsetOutOfRangeError{Offset: 6, Needed: count * width, Available: len(payload) - 6, Context: "decompression table values"}
	}
	t.values = make([]uint16, count)
	for i := 0; i < count; i++ {
		off := 6 + i*width
		v := uint16(payload[off])
		if width == 2 {
			v |= uint16(payload[off+1]) << 8
		}
		t.values[i] = v
	}
	return t, nil
}

// valueWidth returns the byte width of a decoded value, or 0 when the
// bit width is unsupported.
func valueWidth(bits uint8) int {
	switch {
	case bits == 0 || bits > 16:
		return 0
	case bits <= 8:
		return 1
	default:
		return 2
	}
}

// bitReader reads MSB-first codewords from a compressed payload.
type bitReader struct {
	data []byte
	pos  int // bit position
}

func (r *bitReader) read(bits uint8) (uint16, bool) {
	if r.pos+int(bits) > len(r.data)*8 {
		return 0, false
	}
	var v uint16
	for i := uint8(0); i < bits; i++ {
		byteIdx := r.pos >> 3
		bitIdx := uint(7 - r.pos&7)
		v = v<<1 | uint16(r.data[byteIdx]>>bitIdx&1)
		r.pos++
	}
	return v, true
}

// decodeCompressedStream expands a compressed stream block payload.
// table may be nil; it is required by the DPCM scheme and by the
// bit-packing UseTable sub-type.
func decodeCompressedStream(payload []byte, table *decompressionTable) ([]byte, error) {
	h, body, err := parseCompressedHeader(payload)
	if err != nil {
		return nil, err
	}
	switch h.compressionType {
	case compressionBitPacking:
		return decodeBitPacking(h, body, table)
	case compressionDPCM:
		return decodeDPCM(h, body, table)
	default:
		return nil, dataInconsistencyf("compressed stream: unknown compression type 0x%02X", h.compressionType)
	}
}

func decodeBitPacking(h compressedHeader, body []byte, table *decompressionTable) ([]byte, error) {
	width := valueWidth(h.bitsDecompressed)
	if width == 0 || h.bitsCompressed == 0 || h.bitsCompressed > 16 {
		return nil, dataInconsistencyf("bit-packed stream: bad widths %d->%d", h.bitsCompressed, h.bitsDecompressed)
	}
	if h.subType == bitPackUseTable && table == nil {
		return nil, dataInconsistencyf("bit-packed stream: sub-type requires a decompression table but none was seen")
	}
	out := make([]byte, 0, h.uncompressedSize)
	r := &bitReader{data: body}
	for uint32(len(out)) < h.uncompressedSize {
		code, ok := r.read(h.bitsCompressed)
		if !ok {
			return nil, errors.Wrapf(ErrUnexpectedEOF, "bit-packed stream truncated at %d of %d bytes", len(out), h.uncompressedSize)
		}
		var v uint16
		switch h.subType {
		case bitPackCopy:
			v = code + h.addValue
		case bitPackShift:
			v = code << (h.bitsDecompressed - h.bitsCompressed)
		case bitPackUseTable:
			if int(code) >= len(table.values) {
				return nil, dataInconsistencyf("bit-packed stream: code %d outside table of %d values", code, len(table.values))
			}
			v = table.values[code]
		default:
			return nil, dataInconsistencyf("bit-packed stream: unknown sub-type 0x%02X", h.subType)
		}
		out = append(out, byte(v))
		if width == 2 {
			out = append(out, byte(v>>8))
		}
	}
	return out, nil
}

func decodeDPCM(h compressedHeader, body []byte, table *decompressionTable) ([]byte, error) {
	width := valueWidth(h.bitsDecompressed)
	if width == 0 || h.bitsCompressed == 0 || h.bitsCompressed > 16 {
		return nil, dataInconsistencyf("dpcm stream: bad widths %d->%d", h.bitsCompressed, h.bitsDecompressed)
	}
	if table == nil {
		return nil, dataInconsistencyf("dpcm stream: requires a decompression table but none was seen")
	}
	out := make([]byte, 0, h.uncompressedSize)
	acc := h.addValue
	r := &bitReader{data: body}
	for uint32(len(out)) < h.uncompressedSize {
		code, ok := r.read(h.bitsCompressed)
		if !ok {
			return nil, errors.Wrapf(ErrUnexpectedEOF, "dpcm stream truncated at %d of %d bytes", len(out), h.uncompressedSize)
		}
		if int(code) >= len(table.values) {
			return nil, dataInconsistencyf("dpcm stream: code %d outside table of %d values", code, len(table.values))
		}
		acc += table.values[code]
		out = append(out, byte(acc))
		if width == 2 {
			out = append(out, byte(acc>>8))
		}
	}
	return out, nil
}
