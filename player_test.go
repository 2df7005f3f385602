package vgm

import (
	stderrors "errors"
	"io"
	"testing"
)

// drainPlayer pulls commands until end of stream.
func drainPlayer(t *testing.T, p *Player) []Command {
	t.Helper()
	var out []Command
	for {
		c, err := p.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, c)
	}
}

func totalWaited(cmds []Command) uint64 {
	var total uint64
	for _, c := range cmds {
		if n, ok := waitDuration(c); ok {
			total += uint64(n)
		}
	}
	return total
}

func TestPlayerDACExpansion(t *testing.T) {
	doc := NewBuilder(0x171).
		AddDataBlock(Primary, 0x00, []byte{0x10, 0x20, 0x30, 0x40}).
		Append(YM2612DACWait{N: 2}).
		Append(YM2612DACWait{N: 0}).
		Append(SeekOffset{Offset: 1}).
		Append(YM2612DACWait{N: 4}).
		Append(SeekOffset{Offset: 100}).
		Append(YM2612DACWait{N: 0}).
		Finalize()

	got := drainPlayer(t, NewPlayer(doc))
	want := []Command{
		YM2612Write{Inst: Primary, Port: 0, Register: 0x2A, Value: 0x10},
		WaitSamples{Samples: 3},
		YM2612Write{Inst: Primary, Port: 0, Register: 0x2A, Value: 0x20},
		WaitSamples{Samples: 1},
		YM2612Write{Inst: Primary, Port: 0, Register: 0x2A, Value: 0x20},
		WaitSamples{Samples: 5},
		// Seek past the bank end yields only the wait.
		WaitSamples{Samples: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("commands = %#v, want %#v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestPlayerDataBlockRouting(t *testing.T) {
	doc := NewBuilder(0x171).
		AddDataBlock(Primary, 0x00, []byte{1, 2, 3}).
		AddDataBlock(Primary, 0x81, []byte{0, 0, 0, 0, 0, 0, 0, 0, 4, 5}).
		AddDataBlock(Primary, 0xC0, []byte{0, 0, 6, 7}).
		Finalize()

	got := drainPlayer(t, NewPlayer(doc))
	if len(got) != 2 {
		t.Fatalf("yielded %d commands, want 2: %#v", len(got), got)
	}
	if b, ok := got[0].(DataBlock); !ok || b.DataType != 0x81 {
		t.Errorf("first = %#v, want ROM block 0x81", got[0])
	}
	if b, ok := got[1].(DataBlock); !ok || b.DataType != 0xC0 {
		t.Errorf("second = %#v, want RAM block 0xC0", got[1])
	}
}

func TestPlayerDataBlockSizeCap(t *testing.T) {
	doc := NewBuilder(0x171).
		AddDataBlock(Primary, 0x00, make([]byte, 32)).
		Finalize()

	p := NewPlayer(doc)
	p.SetMaxDataBlockSize(16)
	_, err := p.Next()
	var sizeErr *DataBlockSizeExceededError
	if !stderrors.As(err, &sizeErr) {
		t.Fatalf("err = %v, want DataBlockSizeExceededError", err)
	}
	if sizeErr.Current != 0 || sizeErr.Limit != 16 || sizeErr.Attempted != 32 {
		t.Errorf("error = %+v", sizeErr)
	}
}

func TestPlayerMultiStream(t *testing.T) {
	bank := make([]byte, 16)
	for i := range bank {
		bank[i] = byte(0x40 + i)
	}

	b := NewBuilder(0x171).
		AddDataBlock(Primary, 0x01, bank).
		Append(SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}).
		Append(SetStreamData{StreamID: 0, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 0, Frequency: 7813}).
		Append(StartStream{StreamID: 0, StartOffset: 0, LengthMode: 1, DataLength: 10}).
		Append(SetupStreamControl{StreamID: 1, ChipType: 0x01, Port: 0, Command: 0x30}).
		Append(SetStreamData{StreamID: 1, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 1, Frequency: 11025}).
		Append(StartStream{StreamID: 1, StartOffset: 0, LengthMode: 1, DataLength: 15}).
		Append(SetupStreamControl{StreamID: 2, ChipType: 0x03, Port: 0, Command: 0x08}).
		Append(SetStreamData{StreamID: 2, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 2, Frequency: 22050}).
		Append(StartStreamFastCall{StreamID: 2, BlockID: 0}).
		Wait(300)
	doc := b.Finalize()

	got := drainPlayer(t, NewPlayer(doc))

	var ym2612, ym2413, ym2151 int
	for _, c := range got {
		switch c.(type) {
		case YM2612Write:
			ym2612++
		case YM2413Write:
			ym2413++
		case YM2151Write:
			ym2151++
		case WaitSamples:
			if w := c.(WaitSamples); w.Samples == 0 {
				t.Error("zero-length wait emitted")
			}
		default:
			t.Errorf("unexpected command %#v", c)
		}
	}
	if ym2612 != 10 {
		t.Errorf("stream 0 writes = %d, want 10", ym2612)
	}
	if ym2413 != 15 {
		t.Errorf("stream 1 writes = %d, want 15", ym2413)
	}
	if ym2151 != 16 {
		t.Errorf("stream 2 writes = %d, want 16", ym2151)
	}
	if total := totalWaited(got); total != 300 {
		t.Errorf("total wait = %d, want 300", total)
	}

	// All three schedules start due at sample zero; writes come out in
	// stream-id order before any time passes.
	if len(got) < 3 {
		t.Fatalf("too few commands: %#v", got)
	}
	if _, ok := got[0].(YM2612Write); !ok {
		t.Errorf("first command = %#v, want stream 0 write", got[0])
	}
	if _, ok := got[1].(YM2413Write); !ok {
		t.Errorf("second command = %#v, want stream 1 write", got[1])
	}
	if _, ok := got[2].(YM2151Write); !ok {
		t.Errorf("third command = %#v, want stream 2 write", got[2])
	}
}

func TestPlayerStreamTiming(t *testing.T) {
	// 44100/8000 is 5.5125: the fractional part must accumulate rather
	// than drift. Write k lands at floor(k * 5.5125).
	const freq = 8000
	const writes = 40

	b := NewBuilder(0x171).
		AddDataBlock(Primary, 0x01, make([]byte, 64)).
		Append(SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}).
		Append(SetStreamData{StreamID: 0, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 0, Frequency: freq}).
		Append(StartStream{StreamID: 0, StartOffset: 0, LengthMode: 1, DataLength: writes}).
		Wait(300)
	doc := b.Finalize()

	var elapsed uint64
	k := 0
	for _, c := range drainPlayer(t, NewPlayer(doc)) {
		if n, ok := waitDuration(c); ok {
			elapsed += uint64(n)
			continue
		}
		ideal := float64(k) * float64(SamplesPerSecond) / float64(freq)
		if diff := float64(elapsed) - ideal; diff < -1.01 || diff > 1.01 {
			t.Errorf("write %d at sample %d, ideal %.4f", k, elapsed, ideal)
		}
		k++
	}
	if k != writes {
		t.Errorf("writes = %d, want %d", k, writes)
	}
}

func TestPlayerStopAllStreams(t *testing.T) {
	b := NewBuilder(0x171).
		AddDataBlock(Primary, 0x01, make([]byte, 64)).
		Append(SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}).
		Append(SetStreamData{StreamID: 0, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 0, Frequency: 4410}).
		Append(StartStream{StreamID: 0, StartOffset: 0, LengthMode: 1, DataLength: 100}).
		Wait(25).
		Append(StopStream{StreamID: 0xFF}).
		Wait(50)
	doc := b.Finalize()

	got := drainPlayer(t, NewPlayer(doc))
	var writes int
	for _, c := range got {
		if _, ok := c.(YM2612Write); ok {
			writes++
		}
	}
	if writes != 3 {
		t.Errorf("writes = %d, want 3 (samples 0, 10, 20)", writes)
	}
	if total := totalWaited(got); total != 75 {
		t.Errorf("total wait = %d, want 75", total)
	}
}

func TestPlayerStartStreamKeepPosition(t *testing.T) {
	bank := make([]byte, 8)
	for i := range bank {
		bank[i] = byte(0x40 + i)
	}

	b := NewBuilder(0x171).
		AddDataBlock(Primary, 0x01, bank).
		Append(SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}).
		Append(SetStreamData{StreamID: 0, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 0, Frequency: 22050}).
		Append(StartStream{StreamID: 0, StartOffset: 4, LengthMode: 1, DataLength: 2}).
		Wait(10).
		Append(StartStream{StreamID: 0, StartOffset: 0xFFFFFFFF, LengthMode: 1, DataLength: 2}).
		Wait(10)
	doc := b.Finalize()

	var values []uint8
	for _, c := range drainPlayer(t, NewPlayer(doc)) {
		if w, ok := c.(YM2612Write); ok {
			values = append(values, w.Value)
		}
	}
	want := []uint8{0x44, 0x45, 0x46, 0x47}
	if len(values) != len(want) {
		t.Fatalf("values = %#v, want %#v", values, want)
	}
	for i := range values {
		if values[i] != want[i] {
			t.Errorf("value %d = 0x%02X, want 0x%02X", i, values[i], want[i])
		}
	}
}

func TestPlayerFastCallBankMismatch(t *testing.T) {
	doc := NewBuilder(0x171).
		AddDataBlock(Primary, 0x02, []byte{1, 2, 3, 4}).
		Append(SetupStreamControl{StreamID: 0, ChipType: 0x02, Port: 0, Command: 0x2A}).
		Append(SetStreamData{StreamID: 0, DataBankID: 0x01, StepSize: 1}).
		Append(SetStreamFrequency{StreamID: 0, Frequency: 22050}).
		Append(StartStreamFastCall{StreamID: 0, BlockID: 0}).
		Finalize()

	p := NewPlayer(doc)
	var err error
	for err == nil {
		_, err = p.Next()
	}
	var inconsistency *DataInconsistencyError
	if !stderrors.As(err, &inconsistency) {
		t.Fatalf("err = %v, want DataInconsistencyError", err)
	}
}

func TestPlayerLoopCount(t *testing.T) {
	b := NewBuilder(0x171)
	b.WriteSN76489(Primary, 0x8E).Wait(100)
	b.LoopHere()
	b.WriteSN76489(Primary, 0x90).Wait(200)
	doc := b.Finalize()

	p := NewPlayer(doc)
	p.SetLoopCount(3)
	got := drainPlayer(t, p)

	var intro, body int
	for _, c := range got {
		if w, ok := c.(SN76489Write); ok {
			switch w.Value {
			case 0x8E:
				intro++
			case 0x90:
				body++
			}
		}
	}
	if intro != 1 {
		t.Errorf("intro writes = %d, want 1", intro)
	}
	if body != 3 {
		t.Errorf("loop body writes = %d, want 3", body)
	}
	if total := totalWaited(got); total != 100+3*200 {
		t.Errorf("total wait = %d, want %d", total, 100+3*200)
	}
	if p.CurrentSample() != 100+3*200 {
		t.Errorf("CurrentSample = %d", p.CurrentSample())
	}
}

func TestPlayerFadeoutWithoutLoop(t *testing.T) {
	doc := NewBuilder(0x171).Wait(50).Finalize()

	p := NewPlayer(doc)
	p.SetLoopCount(1)
	p.SetFadeoutSamples(100)
	got := drainPlayer(t, p)

	if total := totalWaited(got); total != 150 {
		t.Errorf("total wait = %d, want 150", total)
	}
}

func TestPlayerFadeoutWithLoop(t *testing.T) {
	b := NewBuilder(0x171)
	b.SetLoopIndex(0)
	b.WriteSN76489(Primary, 0x8E).Wait(100)
	doc := b.Finalize()

	p := NewPlayer(doc)
	p.SetLoopCount(2)
	p.SetFadeoutSamples(150)
	got := drainPlayer(t, p)

	if total := totalWaited(got); total != 2*100+150 {
		t.Errorf("total wait = %d, want %d", total, 2*100+150)
	}
	if p.CurrentSample() != 350 {
		t.Errorf("CurrentSample = %d, want 350", p.CurrentSample())
	}
}

func TestStreamPlayerFeed(t *testing.T) {
	b := NewBuilder(0x171)
	b.RegisterChip(ChipSN76489, Primary, 3579545)
	b.WriteSN76489(Primary, 0x8E).Wait(735).WriteSN76489(Primary, 0x90)
	doc := b.Finalize()
	doc.GD3 = &GD3{Version: 0x100, Data: encodeGD3Strings("", "", "", "", "", "", "", "", "", "", "")}
	raw := doc.Bytes()

	p := NewStreamPlayer()

	p.Feed(raw[:10])
	if _, err := p.Next(); !stderrors.Is(err, ErrNeedsMoreData) {
		t.Fatalf("short header: err = %v, want ErrNeedsMoreData", err)
	}
	if p.Header() != nil {
		t.Error("header should not be available yet")
	}

	// Up to one byte into the first command.
	p.Feed(raw[10 : 0xE4+1])
	if _, err := p.Next(); !stderrors.Is(err, ErrNeedsMoreData) {
		t.Fatalf("mid-command: err = %v, want ErrNeedsMoreData", err)
	}
	if p.Header() == nil {
		t.Fatal("header should be parsed now")
	}
	if hz, ok := p.Header().Clock(ChipSN76489, Primary); !ok || hz != 3579545 {
		t.Errorf("clock = %d,%v", hz, ok)
	}

	p.Feed(raw[0xE4+1:])
	got := drainPlayer(t, p)
	// The wait expander normalizes every wait form to WaitSamples.
	want := []Command{
		SN76489Write{Inst: Primary, Value: 0x8E},
		WaitSamples{Samples: 735},
		SN76489Write{Inst: Primary, Value: 0x90},
	}
	if len(got) != len(want) {
		t.Fatalf("commands = %#v, want %#v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}
