// binio.go implements bounds-checked little-endian reads and writes over
// byte slices. Every read reports a typed OffsetOutOfRangeError naming
// the structure being read; writes assume the caller pre-sized the buffer.

package vgm

import "encoding/binary"

func readU8(data []byte, off int, context string) (uint8, error) {
	if off < 0 || off+1 > len(data) {
		return 0, &OffsetOutOfRangeError{Offset: off, Needed: 1, Available: len(data), Context: context}
	}
	return data[off], nil
}

func readU16(data []byte, off int, context string) (uint16, error) {
	if off < 0 || off+2 > len(data) {
		return 0, &OffsetOutOfRangeError{Offset: off, Needed: 2, Available: len(data), Context: context}
	}
	return binary.LittleEndian.Uint16(data[off:]), nil
}

func readU24(data []byte, off int, context string) (uint32, error) {
	if off < 0 || off+3 > len(data) {
		return 0, &OffsetOutOfRangeError{Offset: off, Needed: 3, Available: len(data), Context: context}
	}
	return uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16, nil
}

func readU32(data []byte, off int, context string) (uint32, error) {
	if off < 0 || off+4 > len(data) {
		return 0, &OffsetOutOfRangeError{Offset: off, Needed: 4, Available: len(data), Context: context}
	}
	return binary.LittleEndian.Uint32(data[off:]), nil
}

func readBytes(data []byte, off, n int, context string) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(data) {
		return nil, &OffsetOutOfRangeError{Offset: off, Needed: n, Available: len(data), Context: context}
	}
	return data[off : off+n], nil
}

func putU16(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:], v)
}

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

func appendU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

func appendU24(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16))
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
