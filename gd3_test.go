package vgm

import (
	"bytes"
	"testing"
)

// encodeGD3Strings lays out ASCII strings as NUL-terminated UTF-16LE,
// the way a GD3 payload stores them.
func encodeGD3Strings(fields ...string) []byte {
	var out []byte
	for _, f := range fields {
		for _, c := range f {
			out = append(out, byte(c), 0)
		}
		out = append(out, 0, 0)
	}
	return out
}

func TestParseGD3(t *testing.T) {
	payload := encodeGD3Strings("Track", "", "Game", "", "System", "", "Author", "", "2026/08/29", "Ripper", "Notes")
	raw := (&GD3{Version: 0x100, Data: payload}).appendTo(nil)

	g, err := ParseGD3(raw)
	if err != nil {
		t.Fatalf("ParseGD3: %v", err)
	}
	if g.Version != 0x100 {
		t.Errorf("version = 0x%X, want 0x100", g.Version)
	}
	if !bytes.Equal(g.Data, payload) {
		t.Error("payload mismatch")
	}

	fields := g.Fields()
	if len(fields) != gd3FieldCount {
		t.Fatalf("fields = %d, want %d", len(fields), gd3FieldCount)
	}
	if !bytes.Equal(fields[0], encodeGD3Strings("Track")[:10]) {
		t.Errorf("field 0 = % X", fields[0])
	}
	if len(fields[1]) != 0 {
		t.Errorf("field 1 not empty: % X", fields[1])
	}
	if !bytes.Equal(fields[10], encodeGD3Strings("Notes")[:10]) {
		t.Errorf("field 10 = % X", fields[10])
	}
}

func TestParseGD3Errors(t *testing.T) {
	t.Run("bad_ident", func(t *testing.T) {
		raw := (&GD3{Version: 0x100}).appendTo(nil)
		copy(raw, "GD3 ")
		if _, err := ParseGD3(raw); err == nil {
			t.Fatal("expected ident error")
		}
	})
	t.Run("short_payload", func(t *testing.T) {
		raw := (&GD3{Version: 0x100, Data: encodeGD3Strings("x")}).appendTo(nil)
		if _, err := ParseGD3(raw[:len(raw)-2]); err == nil {
			t.Fatal("expected truncation error")
		}
	})
}
