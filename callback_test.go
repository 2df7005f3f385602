package vgm

import (
	"testing"

	"github.com/h1romas4/chipstream-sub000/tracker"
)

func TestHarnessSN76489KeyOn(t *testing.T) {
	// Divider 0xFE at 3579545 Hz is 440.4 Hz on channel 0. The tone
	// bytes land while the channel is muted, so only the final volume
	// write raises an event.
	b := NewBuilder(0x171)
	b.RegisterChip(ChipSN76489, Primary, 3579545)
	b.WriteSN76489(Primary, 0x8E).
		WriteSN76489(Primary, 0x0F).
		WriteSN76489(Primary, 0x90)
	doc := b.Finalize()

	h := NewHarness(NewPlayer(doc))
	h.EnableStateTracking()

	var writes int
	var keyOns []tracker.StateEvent
	Handle(h, func(sample uint64, cmd SN76489Write, events []tracker.StateEvent) {
		writes++
		for _, e := range events {
			if e.Kind == tracker.KeyOn {
				keyOns = append(keyOns, e)
			}
		}
	})
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if writes != 3 {
		t.Errorf("writes = %d, want 3", writes)
	}
	if len(keyOns) != 1 {
		t.Fatalf("key-ons = %#v, want exactly one", keyOns)
	}
	e := keyOns[0]
	if e.Channel != 0 {
		t.Errorf("channel = %d, want 0", e.Channel)
	}
	if !e.Tone.HasFreq {
		t.Fatal("key-on carries no frequency")
	}
	if diff := e.Tone.FreqHz - 440; diff < -2 || diff > 2 {
		t.Errorf("freq = %.2f Hz, want 440 within 2", e.Tone.FreqHz)
	}
}

func TestHarnessYM2612PortIsolation(t *testing.T) {
	b := NewBuilder(0x171)
	b.RegisterChip(ChipYM2612, Primary, 7670453)
	b.WriteYM2612(Primary, 0, 0xA4, 0x22).
		WriteYM2612(Primary, 0, 0xA0, 0x11).
		WriteYM2612(Primary, 0, 0x28, 0xF0).
		WriteYM2612(Primary, 1, 0xA4, 0x33).
		WriteYM2612(Primary, 1, 0xA0, 0x99).
		WriteYM2612(Primary, 0, 0x28, 0xF4)
	doc := b.Finalize()

	h := NewHarness(NewPlayer(doc))
	h.EnableStateTracking()

	var keyOns []tracker.StateEvent
	Handle(h, func(sample uint64, cmd YM2612Write, events []tracker.StateEvent) {
		for _, e := range events {
			if e.Kind == tracker.KeyOn {
				keyOns = append(keyOns, e)
			}
		}
	})
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(keyOns) != 2 {
		t.Fatalf("key-ons = %#v, want two", keyOns)
	}
	if e := keyOns[0]; e.Channel != 0 || e.Tone.FNum != 0x211 || e.Tone.Block != 4 {
		t.Errorf("first key-on = %+v, want ch0 fnum 0x211 block 4", e)
	}
	if e := keyOns[1]; e.Channel != 3 || e.Tone.FNum != 0x399 || e.Tone.Block != 6 {
		t.Errorf("second key-on = %+v, want ch3 fnum 0x399 block 6", e)
	}

	st, ok := h.Tracker(ChipYM2612, Primary)
	if !ok {
		t.Fatal("no YM2612 tracker")
	}
	if v, ok := st.ReadRegister(0x0A4); !ok || v != 0x22 {
		t.Errorf("port 0 reg 0xA4 = 0x%02X,%v, want 0x22", v, ok)
	}
	if v, ok := st.ReadRegister(0x1A4); !ok || v != 0x33 {
		t.Errorf("port 1 reg 0xA4 = 0x%02X,%v, want 0x33", v, ok)
	}
}

func TestHarnessRouting(t *testing.T) {
	b := NewBuilder(0x171)
	b.RegisterChip(ChipSN76489, Primary, 3579545)
	b.AddDataBlock(Primary, 0x81, make([]byte, 12)).
		WriteSN76489(Primary, 0x8E).
		Wait(735).
		Append(PCMRAMWrite{ChipType: 0x01, Size: 4})
	doc := b.Finalize()

	h := NewHarness(NewPlayer(doc))

	var any, waits, blocks, ramWrites int
	var waited uint32
	h.HandleAny(func(sample uint64, cmd Command) { any++ })
	h.HandleWait(func(sample uint64, n uint32) {
		waits++
		waited += n
	})
	h.HandleDataBlock(func(sample uint64, block DataBlock) {
		blocks++
		if block.DataType != 0x81 {
			t.Errorf("block type = 0x%02X", block.DataType)
		}
	})
	h.HandlePCMRAMWrite(func(sample uint64, w PCMRAMWrite) { ramWrites++ })
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// ROM block, chip write, the wait, and the PCM RAM write all reach
	// the any handler.
	if any != 4 {
		t.Errorf("any = %d, want 4", any)
	}
	if waits != 1 || waited != 735 {
		t.Errorf("waits = %d (%d samples), want 1 (735)", waits, waited)
	}
	if blocks != 1 {
		t.Errorf("blocks = %d, want 1", blocks)
	}
	if ramWrites != 1 {
		t.Errorf("pcm ram writes = %d, want 1", ramWrites)
	}
}

func TestHarnessTrackerOnlyForDeclaredChips(t *testing.T) {
	b := NewBuilder(0x171)
	b.RegisterChip(ChipSN76489, Primary, 3579545)
	doc := b.Finalize()

	h := NewHarness(NewPlayer(doc))
	h.EnableStateTracking()

	if _, ok := h.Tracker(ChipSN76489, Primary); !ok {
		t.Error("declared chip has no tracker")
	}
	if _, ok := h.Tracker(ChipSN76489, Secondary); ok {
		t.Error("undeclared secondary instance has a tracker")
	}
	if _, ok := h.Tracker(ChipYM2612, Primary); ok {
		t.Error("undeclared chip has a tracker")
	}
}
