package vgm

import (
	"bytes"
	"reflect"
	"testing"
)

func TestParseCommandDispatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Command
	}{
		{"sn76489_primary", []byte{0x50, 0x8E}, SN76489Write{Inst: Primary, Value: 0x8E}},
		{"sn76489_secondary", []byte{0x30, 0x8E}, SN76489Write{Inst: Secondary, Value: 0x8E}},
		{"gg_stereo_primary", []byte{0x4F, 0xFF}, GameGearStereoWrite{Inst: Primary, Value: 0xFF}},
		{"gg_stereo_secondary", []byte{0x3F, 0xFF}, GameGearStereoWrite{Inst: Secondary, Value: 0xFF}},
		{"mikey", []byte{0x40, 0x20, 0x55}, MikeyWrite{Register: 0x20, Value: 0x55}},
		{"ym2413", []byte{0x51, 0x30, 0x14}, YM2413Write{Inst: Primary, Register: 0x30, Value: 0x14}},
		{"ym2612_port0", []byte{0x52, 0x28, 0xF0}, YM2612Write{Inst: Primary, Port: 0, Register: 0x28, Value: 0xF0}},
		{"ym2612_port1", []byte{0x53, 0xA4, 0x22}, YM2612Write{Inst: Primary, Port: 1, Register: 0xA4, Value: 0x22}},
		{"ym2612_secondary", []byte{0xA2, 0x28, 0xF0}, YM2612Write{Inst: Secondary, Port: 0, Register: 0x28, Value: 0xF0}},
		{"ym2151_secondary", []byte{0xA4, 0x08, 0x78}, YM2151Write{Inst: Secondary, Register: 0x08, Value: 0x78}},
		{"wait_samples", []byte{0x61, 0x34, 0x12}, WaitSamples{Samples: 0x1234}},
		{"wait_735", []byte{0x62}, Wait735{}},
		{"wait_882", []byte{0x63}, Wait882{}},
		{"wait_nibble", []byte{0x7A}, WaitNibble{N: 0x0A}},
		{"dac_wait", []byte{0x85}, YM2612DACWait{N: 0x05}},
		{"end_of_data", []byte{0x66}, EndOfData{}},
		{"ay8910", []byte{0xA0, 0x07, 0x38}, AY8910Write{Inst: Primary, Register: 0x07, Value: 0x38}},
		{"ay8910_secondary", []byte{0xA0, 0x87, 0x38}, AY8910Write{Inst: Secondary, Register: 0x07, Value: 0x38}},
		{"pwm_packed", []byte{0xB2, 0x3A, 0xBC}, PWMWrite{Register: 0x03, Value: 0x0ABC}},
		{"gbdmg", []byte{0xB3, 0x14, 0x87}, GBDMGWrite{Inst: Primary, Register: 0x14, Value: 0x87}},
		{"nesapu_secondary", []byte{0xB4, 0x95, 0x7F}, NESAPUWrite{Inst: Secondary, Register: 0x15, Value: 0x7F}},
		{"segapcm", []byte{0xC0, 0x34, 0x12, 0x80}, SegaPCMWrite{Inst: Primary, Offset: 0x1234, Value: 0x80}},
		{"segapcm_secondary", []byte{0xC0, 0x34, 0x92, 0x80}, SegaPCMWrite{Inst: Secondary, Offset: 0x1234, Value: 0x80}},
		{"qsound", []byte{0xC4, 0x12, 0x34, 0x56}, QSoundWrite{Register: 0x56, Value: 0x1234}},
		{"scsp", []byte{0xC5, 0x12, 0x34, 0x56}, SCSPWrite{Inst: Primary, Offset: 0x1234, Value: 0x56}},
		{"ymf278b", []byte{0xD0, 0x01, 0xA0, 0x55}, YMF278BWrite{Inst: Primary, Port: 0x01, Register: 0xA0, Value: 0x55}},
		{"k054539", []byte{0xD3, 0x02, 0x14, 0x7F}, K054539Write{Inst: Primary, Register: 0x0214, Value: 0x7F}},
		{"es5506_wide", []byte{0xD6, 0x08, 0x12, 0x34}, ES5506Write16{Inst: Primary, Register: 0x08, Value: 0x1234}},
		{"seek_offset", []byte{0xE0, 0x78, 0x56, 0x34, 0x12}, SeekOffset{Offset: 0x12345678}},
		{"c352", []byte{0xE1, 0x01, 0x02, 0x12, 0x34}, C352Write{Inst: Primary, Register: 0x0102, Value: 0x1234}},
		{"reserved_u8", []byte{0x31, 0xAA}, ReservedU8{Op: 0x31, Value: 0xAA}},
		{"reserved_u16", []byte{0x42, 0xAB, 0xCD}, ReservedU16{Op: 0x42, Value: 0xCDAB}},
		{"reserved_u24", []byte{0xC9, 0x01, 0x02, 0x03}, ReservedU24{Op: 0xC9, Value: 0x030201}},
		{"reserved_u32", []byte{0xE2, 0x01, 0x02, 0x03, 0x04}, ReservedU32{Op: 0xE2, Value: 0x04030201}},
		{"unknown_one_byte", []byte{0x65}, UnknownCommand{Op: 0x65}},
		{"stream_setup", []byte{0x90, 0x00, 0x02, 0x00, 0x2A},
			SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}},
		{"stream_data", []byte{0x91, 0x00, 0x00, 0x01, 0x00},
			SetStreamData{StreamID: 0, DataBankID: 0, StepSize: 1, StepBase: 0}},
		{"stream_frequency", []byte{0x92, 0x00, 0x85, 0x1E, 0x00, 0x00},
			SetStreamFrequency{StreamID: 0, Frequency: 7813}},
		{"stream_start", []byte{0x93, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01, 0x0A, 0x00, 0x00, 0x00},
			StartStream{StreamID: 0, StartOffset: 0x10, LengthMode: 1, DataLength: 10}},
		{"stream_stop", []byte{0x94, 0xFF}, StopStream{StreamID: 0xFF}},
		{"stream_fast_call", []byte{0x95, 0x02, 0x05, 0x00, 0x01},
			StartStreamFastCall{StreamID: 2, BlockID: 5, Flags: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, n, err := parseCommand(tt.data, 0)
			if err != nil {
				t.Fatalf("parseCommand: %v", err)
			}
			if n != len(tt.data) {
				t.Errorf("consumed %d bytes, want %d", n, len(tt.data))
			}
			if !reflect.DeepEqual(cmd, tt.want) {
				t.Errorf("parsed %#v, want %#v", cmd, tt.want)
			}
			if got := cmd.appendTo(nil); !bytes.Equal(got, tt.data) {
				t.Errorf("re-serialized % X, want % X", got, tt.data)
			}
		})
	}
}

func TestParseCommandTruncated(t *testing.T) {
	for _, data := range [][]byte{
		{0x61},
		{0x61, 0x34},
		{0x52, 0x28},
		{0x67, 0x66, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01}, // declares 16 bytes, has 1
		{0x93, 0x00, 0x10},
	} {
		if _, _, err := parseCommand(data, 0); err == nil {
			t.Errorf("parseCommand(% X) succeeded, want error", data)
		}
	}
}

func TestParseDataBlock(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := append([]byte{0x67, 0x66, 0x00, 0x04, 0x00, 0x00, 0x00}, payload...)

	cmd, n, err := parseCommand(data, 0)
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d, want %d", n, len(data))
	}
	blk, ok := cmd.(DataBlock)
	if !ok {
		t.Fatalf("got %T, want DataBlock", cmd)
	}
	if blk.Inst != Primary || blk.DataType != 0 || !bytes.Equal(blk.Data, payload) {
		t.Errorf("block = %+v", blk)
	}
	if !bytes.Equal(blk.appendTo(nil), data) {
		t.Errorf("round trip mismatch")
	}
}

func TestParseDataBlockSecondaryBit(t *testing.T) {
	data := []byte{0x67, 0x66, 0x81, 0x02, 0x00, 0x00, 0x80, 0xAA, 0xBB}
	cmd, _, err := parseCommand(data, 0)
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	blk := cmd.(DataBlock)
	if blk.Inst != Secondary {
		t.Errorf("instance = %v, want Secondary", blk.Inst)
	}
	if blk.DataType != 0x81 || len(blk.Data) != 2 {
		t.Errorf("block = %+v", blk)
	}
	if !bytes.Equal(blk.appendTo(nil), data) {
		t.Errorf("round trip mismatch")
	}
}

func TestParseDataBlockBadMarker(t *testing.T) {
	data := []byte{0x67, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, _, err := parseCommand(data, 0); err == nil {
		t.Fatal("expected marker error")
	}
}

func TestPCMRAMWriteEffectiveSize(t *testing.T) {
	w := PCMRAMWrite{ChipType: 0x01, Size: 0}
	if got := w.EffectiveSize(); got != 0x01000000 {
		t.Errorf("size 0 → %d, want 0x01000000", got)
	}
	w.Size = 0x1234
	if got := w.EffectiveSize(); got != 0x1234 {
		t.Errorf("size = %d, want 0x1234", got)
	}
}

func TestWaitDurations(t *testing.T) {
	tests := []struct {
		cmd  Command
		want uint32
	}{
		{WaitSamples{Samples: 0}, 0},
		{WaitSamples{Samples: 1000}, 1000},
		{Wait735{}, 735},
		{Wait882{}, 882},
		{WaitNibble{N: 0}, 1},
		{WaitNibble{N: 15}, 16},
		{YM2612DACWait{N: 0}, 1},
		{YM2612DACWait{N: 15}, 16},
	}
	for _, tt := range tests {
		got, ok := waitDuration(tt.cmd)
		if !ok {
			t.Errorf("%#v: not a wait", tt.cmd)
			continue
		}
		if got != tt.want {
			t.Errorf("%#v: duration = %d, want %d", tt.cmd, got, tt.want)
		}
	}
	if _, ok := waitDuration(EndOfData{}); ok {
		t.Error("EndOfData reported as a wait")
	}
}
