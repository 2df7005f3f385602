// gd3.go implements the GD3 metadata chunk at the structural level: the
// 12-byte chunk header is validated and the UTF-16LE string payload is
// carried verbatim. Transcoding the strings is left to the caller.

package vgm

import (
	"bytes"

	"github.com/pkg/errors"
)

// gd3FieldCount is the number of NUL-terminated UTF-16LE strings a GD3
// v1.00 chunk defines (track, game, system and author in English and
// Japanese, release date, ripper, notes).
const gd3FieldCount = 11

// GD3 is the trailing metadata chunk. Data holds the string payload
// exactly as stored in the file: UTF-16LE code units, each string
// terminated by a 16-bit NUL.
type GD3 struct {
	Version uint32
	Data    []byte
}

// ParseGD3 decodes a GD3 chunk from the start of data.
func ParseGD3(data []byte) (*GD3, error) {
	raw, err := readBytes(data, 0, 4, "gd3 ident")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(raw, []byte("Gd3 ")) {
		var ident [4]byte
		copy(ident[:], raw)
		return nil, errors.WithStack(&InvalidIdentError{Ident: ident})
	}
	version, err := readU32(data, 4, "gd3 version")
	if err != nil {
		return nil, err
	}
	length, err := readU32(data, 8, "gd3 length")
	if err != nil {
		return nil, err
	}
	payload, err := readBytes(data, 12, int(length), "gd3 payload")
	if err != nil {
		return nil, errors.Wrap(err, "gd3 chunk shorter than declared length")
	}
	g := &GD3{Version: version, Data: make([]byte, len(payload))}
	copy(g.Data, payload)
	return g, nil
}

// appendTo serializes the chunk header and payload.
func (g *GD3) appendTo(out []byte) []byte {
	out = append(out, "Gd3 "...)
	out = appendU32(out, g.Version)
	out = appendU32(out, uint32(len(g.Data)))
	return append(out, g.Data...)
}

func (g *GD3) serializedSize() int {
	return 12 + len(g.Data)
}

// Fields splits the payload into its NUL-terminated UTF-16LE strings
// without transcoding them. The slices alias Data. A well-formed v1.00
// chunk yields 11 fields; malformed payloads yield whatever is present.
func (g *GD3) Fields() [][]byte {
	fields := make([][]byte, 0, gd3FieldCount)
	rest := g.Data
	for len(rest) >= 2 {
		var field []byte
		i := 0
		for ; i+1 < len(rest); i += 2 {
			if rest[i] == 0 && rest[i+1] == 0 {
				break
			}
		}
		field = rest[:i]
		if i+1 < len(rest) {
			rest = rest[i+2:]
		} else {
			rest = nil
		}
		fields = append(fields, field)
	}
	return fields
}
