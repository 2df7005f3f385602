// newtracker.go maps chips to their state trackers. Chips without an
// event-emitting model get a register store so their registers stay
// inspectable.

package vgm

import "github.com/h1romas4/chipstream-sub000/tracker"

func newTracker(chip Chip, clockHz float64) tracker.ChipState {
	switch chip {
	case ChipSN76489:
		return tracker.NewSN76489(clockHz)
	case ChipYM2413:
		return tracker.NewYM2413(clockHz)
	case ChipYM2612:
		return tracker.NewYM2612(clockHz)
	case ChipYM2151:
		return tracker.NewYM2151(clockHz)
	case ChipYM2203:
		return tracker.NewYM2203(clockHz)
	case ChipYM2608:
		return tracker.NewYM2608(clockHz)
	case ChipYM2610:
		return tracker.NewYM2610(clockHz)
	case ChipYM3812:
		return tracker.NewYM3812(clockHz)
	case ChipYM3526:
		return tracker.NewYM3526(clockHz)
	case ChipY8950:
		return tracker.NewY8950(clockHz)
	case ChipYMF262:
		return tracker.NewYMF262(clockHz)
	case ChipAY8910:
		return tracker.NewAY8910(clockHz)
	case ChipGBDMG:
		return tracker.NewGBDMG(clockHz)
	case ChipNESAPU:
		return tracker.NewNESAPU(clockHz)
	case ChipHuC6280:
		return tracker.NewHuC6280(clockHz)
	case ChipSAA1099:
		return tracker.NewSAA1099(clockHz)
	}
	return tracker.NewRegisterStore(clockHz)
}
