package vgm

import (
	"bytes"
	"testing"
)

func TestDataBlockKinds(t *testing.T) {
	tests := []struct {
		dataType uint8
		want     DataBlockKind
	}{
		{0x00, BlockUncompressed},
		{0x3F, BlockUncompressed},
		{0x40, BlockCompressed},
		{0x7E, BlockCompressed},
		{0x7F, BlockDecompressionTable},
		{0x80, BlockROMDump},
		{0xBF, BlockROMDump},
		{0xC0, BlockRAMWrite},
		{0xFF, BlockRAMWrite},
	}
	for _, tt := range tests {
		blk := DataBlock{DataType: tt.dataType}
		if got := blk.Kind(); got != tt.want {
			t.Errorf("type 0x%02X: kind = %v, want %v", tt.dataType, got, tt.want)
		}
	}
}

func TestBitReaderMSBFirst(t *testing.T) {
	r := &bitReader{data: []byte{0b10110100, 0b01000000}}
	for i, want := range []uint16{0b101, 0b101, 0b000, 0b100} {
		got, ok := r.read(3)
		if !ok {
			t.Fatalf("read %d: unexpected end", i)
		}
		if got != want {
			t.Errorf("read %d = %03b, want %03b", i, got, want)
		}
	}
	if _, ok := r.read(8); ok {
		t.Error("read past end succeeded")
	}
}

// compressedPayload builds a compressed-block payload: the 10-byte
// header followed by codewords packed MSB-first.
func compressedPayload(scheme, bitsDec, bitsCmp, subType uint8, addValue uint16, uncompressed uint32, codes []uint16) []byte {
	out := []byte{scheme}
	out = appendU32(out, uncompressed)
	out = append(out, bitsDec, bitsCmp, subType)
	out = appendU16(out, addValue)

	var acc uint32
	var nbits uint8
	for _, c := range codes {
		acc = acc<<bitsCmp | uint32(c)
		nbits += bitsCmp
		for nbits >= 8 {
			out = append(out, byte(acc>>(nbits-8)))
			nbits -= 8
		}
	}
	if nbits > 0 {
		out = append(out, byte(acc<<(8-nbits)))
	}
	return out
}

func TestDecodeBitPackingCopy(t *testing.T) {
	// 4-bit codes widened to 8 bits with an add value of 0x10.
	payload := compressedPayload(compressionBitPacking, 8, 4, bitPackCopy, 0x10, 4, []uint16{1, 2, 3, 4})
	got, err := decodeCompressedStream(payload, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []byte{0x11, 0x12, 0x13, 0x14}; !bytes.Equal(got, want) {
		t.Errorf("decoded % X, want % X", got, want)
	}
}

func TestDecodeBitPackingShift(t *testing.T) {
	// Shift sub-type left-aligns codes without the add value.
	payload := compressedPayload(compressionBitPacking, 8, 4, bitPackShift, 0x10, 2, []uint16{0x0F, 0x01})
	got, err := decodeCompressedStream(payload, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []byte{0xF0, 0x10}; !bytes.Equal(got, want) {
		t.Errorf("decoded % X, want % X", got, want)
	}
}

func TestDecodeBitPackingUseTable(t *testing.T) {
	table := &decompressionTable{
		compressionType:  compressionBitPacking,
		subType:          bitPackUseTable,
		bitsDecompressed: 8,
		bitsCompressed:   2,
		values:           []uint16{0x80, 0x90, 0xA0, 0xB0},
	}
	payload := compressedPayload(compressionBitPacking, 8, 2, bitPackUseTable, 0, 4, []uint16{3, 0, 2, 1})
	got, err := decodeCompressedStream(payload, table)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []byte{0xB0, 0x80, 0xA0, 0x90}; !bytes.Equal(got, want) {
		t.Errorf("decoded % X, want % X", got, want)
	}

	if _, err := decodeCompressedStream(payload, nil); err == nil {
		t.Error("decode without table succeeded, want error")
	}
}

func TestDecodeDPCM(t *testing.T) {
	table := &decompressionTable{
		compressionType:  compressionDPCM,
		subType:          0,
		bitsDecompressed: 8,
		bitsCompressed:   2,
		values:           []uint16{0, 1, 2, 4},
	}
	// Accumulator starts at the add value and integrates table deltas.
	payload := compressedPayload(compressionDPCM, 8, 2, 0, 0x40, 4, []uint16{1, 1, 3, 0})
	got, err := decodeCompressedStream(payload, table)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []byte{0x41, 0x42, 0x46, 0x46}; !bytes.Equal(got, want) {
		t.Errorf("decoded % X, want % X", got, want)
	}
}

func TestParseDecompressionTable(t *testing.T) {
	raw := []byte{
		compressionBitPacking, bitPackUseTable, 8, 2, // scheme, sub, widths
		0x03, 0x00, // value count
		0x11, 0x22, 0x33,
	}
	tbl, err := parseDecompressionTable(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.values) != 3 || tbl.values[0] != 0x11 || tbl.values[2] != 0x33 {
		t.Errorf("values = %v", tbl.values)
	}

	// 16-bit values occupy two bytes each.
	raw16 := []byte{
		compressionDPCM, 0, 16, 4,
		0x02, 0x00,
		0x34, 0x12, 0x78, 0x56,
	}
	tbl16, err := parseDecompressionTable(raw16)
	if err != nil {
		t.Fatalf("parse 16-bit: %v", err)
	}
	if tbl16.values[0] != 0x1234 || tbl16.values[1] != 0x5678 {
		t.Errorf("values = %04X", tbl16.values)
	}

	if _, err := parseDecompressionTable(raw[:4]); err == nil {
		t.Error("short table parsed, want error")
	}
}
