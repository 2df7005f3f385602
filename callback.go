// callback.go implements the callback harness: it drains a player and
// dispatches each yielded command to user-registered handlers, with
// optional per-chip state tracking that turns register writes into
// key-on, key-off, and tone-change events.

package vgm

import (
	"io"
	"reflect"

	"github.com/h1romas4/chipstream-sub000/tracker"
)

type trackerKey struct {
	chip Chip
	inst Instance
}

type chipWriteHandler func(sample uint64, cmd ChipWriteCommand, events []tracker.StateEvent)

// Harness wraps a player and routes its output. Register handlers, then
// call Run to drain the stream or Step to advance one command.
type Harness struct {
	player *Player

	tracking bool
	trackers map[trackerKey]tracker.ChipState

	writeHandlers map[reflect.Type]chipWriteHandler
	anyFn         func(sample uint64, cmd Command)
	waitFn        func(sample uint64, samples uint32)
	dataBlockFn   func(sample uint64, block DataBlock)
	pcmRAMFn      func(sample uint64, w PCMRAMWrite)
}

// NewHarness wraps a player.
func NewHarness(p *Player) *Harness {
	return &Harness{
		player:        p,
		trackers:      make(map[trackerKey]tracker.ChipState),
		writeHandlers: make(map[reflect.Type]chipWriteHandler),
	}
}

// Handle registers a handler for one chip-write command type. When
// state tracking is enabled, events emitted by the matching chip
// tracker accompany the command.
func Handle[S ChipWriteCommand](h *Harness, fn func(sample uint64, cmd S, events []tracker.StateEvent)) {
	var zero S
	h.writeHandlers[reflect.TypeOf(zero)] = func(sample uint64, cmd ChipWriteCommand, events []tracker.StateEvent) {
		fn(sample, cmd.(S), events)
	}
}

// HandleAny registers a handler invoked for every yielded command.
func (h *Harness) HandleAny(fn func(sample uint64, cmd Command)) { h.anyFn = fn }

// HandleWait registers a handler for wait commands.
func (h *Harness) HandleWait(fn func(sample uint64, samples uint32)) { h.waitFn = fn }

// HandleDataBlock registers a handler for ROM and RAM data blocks that
// pass through the player.
func (h *Harness) HandleDataBlock(fn func(sample uint64, block DataBlock)) { h.dataBlockFn = fn }

// HandlePCMRAMWrite registers a handler for PCM RAM write commands.
func (h *Harness) HandlePCMRAMWrite(fn func(sample uint64, w PCMRAMWrite)) { h.pcmRAMFn = fn }

// EnableStateTracking instantiates a chip tracker for every instance
// the file header declares a clock for. Call after the header is
// available; for a byte-fed player that means after the first
// successful Step.
func (h *Harness) EnableStateTracking() {
	h.tracking = true
	hdr := h.player.Header()
	if hdr == nil {
		return
	}
	for chip := Chip(0); int(chip) < chipCount; chip++ {
		for _, inst := range []Instance{Primary, Secondary} {
			key := trackerKey{chip, inst}
			if _, exists := h.trackers[key]; exists {
				continue
			}
			hz, ok := hdr.Clock(chip, inst)
			if !ok {
				continue
			}
			if st := newTracker(chip, float64(hz)); st != nil {
				h.trackers[key] = st
			}
		}
	}
}

// Tracker returns the state tracker for a chip instance, if tracking is
// enabled and the chip is present.
func (h *Harness) Tracker(chip Chip, inst Instance) (tracker.ChipState, bool) {
	st, ok := h.trackers[trackerKey{chip, inst}]
	return st, ok
}

// Step processes one command. It returns io.EOF at end of stream and
// passes ErrNeedsMoreData through for byte-fed players.
func (h *Harness) Step() error {
	cmd, err := h.player.Next()
	if err != nil {
		return err
	}
	sample := h.player.CurrentSample()

	if h.anyFn != nil {
		h.anyFn(sample, cmd)
	}

	switch c := cmd.(type) {
	case DataBlock:
		if h.dataBlockFn != nil {
			h.dataBlockFn(sample, c)
		}
		return nil
	case PCMRAMWrite:
		if h.pcmRAMFn != nil {
			h.pcmRAMFn(sample, c)
		}
		return nil
	}

	if n, isWait := waitDuration(cmd); isWait {
		if h.waitFn != nil {
			h.waitFn(sample, n)
		}
		return nil
	}

	cw, isWrite := cmd.(ChipWriteCommand)
	if !isWrite {
		return nil
	}

	var events []tracker.StateEvent
	if h.tracking {
		if st, ok := h.trackers[trackerKey{cw.WriteChip(), cw.WriteInstance()}]; ok {
			if addr, value, ok := trackerWrite(cw); ok {
				events = st.WriteRegister(addr, value)
			}
		}
	}
	if fn, ok := h.writeHandlers[reflect.TypeOf(cmd)]; ok {
		fn(sample, cw, events)
	}
	return nil
}

// Run drains the player. It returns nil at a clean end of stream; a
// byte-fed player that runs dry returns ErrNeedsMoreData, and Run may
// be called again after feeding.
func (h *Harness) Run() error {
	for {
		err := h.Step()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// trackerWrite flattens a chip-write command into the tracker address
// space. Multi-port chips fold the port into the high address byte;
// wide-register chips use the register as the address directly. Writes
// that carry 16-bit values or target sample memory have no tracker
// representation.
func trackerWrite(cmd ChipWriteCommand) (addr uint32, value uint8, ok bool) {
	switch c := cmd.(type) {
	case SN76489Write:
		return 0, c.Value, true
	case YM2413Write:
		return uint32(c.Register), c.Value, true
	case YM2612Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YM2151Write:
		return uint32(c.Register), c.Value, true
	case SegaPCMWrite:
		return uint32(c.Offset), c.Value, true
	case RF5C68Write:
		return uint32(c.Register), c.Value, true
	case YM2203Write:
		return uint32(c.Register), c.Value, true
	case YM2608Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YM2610Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YM3812Write:
		return uint32(c.Register), c.Value, true
	case YM3526Write:
		return uint32(c.Register), c.Value, true
	case Y8950Write:
		return uint32(c.Register), c.Value, true
	case YMF262Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YMF278BWrite:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YMF271Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case YMZ280BWrite:
		return uint32(c.Register), c.Value, true
	case RF5C164Write:
		return uint32(c.Register), c.Value, true
	case PWMWrite:
		return uint32(c.Register), uint8(c.Value), true
	case AY8910Write:
		return uint32(c.Register & 0x7F), c.Value, true
	case GBDMGWrite:
		return uint32(c.Register), c.Value, true
	case NESAPUWrite:
		return uint32(c.Register), c.Value, true
	case MultiPCMWrite:
		return uint32(c.Register), c.Value, true
	case UPD7759Write:
		return uint32(c.Register), c.Value, true
	case OKIM6258Write:
		return uint32(c.Register), c.Value, true
	case OKIM6295Write:
		return uint32(c.Register), c.Value, true
	case K051649Write:
		return uint32(c.Port)<<8 | uint32(c.Register), c.Value, true
	case K054539Write:
		return uint32(c.Register), c.Value, true
	case HuC6280Write:
		return uint32(c.Register), c.Value, true
	case C140Write:
		return uint32(c.Register), c.Value, true
	case K053260Write:
		return uint32(c.Register), c.Value, true
	case POKEYWrite:
		return uint32(c.Register), c.Value, true
	case SCSPWrite:
		return uint32(c.Offset), c.Value, true
	case WonderSwanWrite:
		return uint32(c.Register), c.Value, true
	case WonderSwanMemWrite:
		return uint32(c.Offset), c.Value, true
	case VSUWrite:
		return uint32(c.Offset), c.Value, true
	case SAA1099Write:
		return uint32(c.Register), c.Value, true
	case ES5503Write:
		return uint32(c.Register), c.Value, true
	case ES5506Write8:
		return uint32(c.Register), c.Value, true
	case X1010Write:
		return uint32(c.Offset), c.Value, true
	case GA20Write:
		return uint32(c.Register), c.Value, true
	case MikeyWrite:
		return uint32(c.Register), c.Value, true
	}
	return 0, 0, false
}
