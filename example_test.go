package vgm_test

import (
	"fmt"
	"io"
	"log"

	vgm "github.com/h1romas4/chipstream-sub000"
	"github.com/h1romas4/chipstream-sub000/tracker"
)

func ExampleNewBuilder() {
	// Assemble a one-note file and serialize it
	b := vgm.NewBuilder(0x171)
	b.RegisterChip(vgm.ChipSN76489, vgm.Primary, 3579545)
	b.WriteSN76489(vgm.Primary, 0x8E).Wait(735)
	doc := b.Finalize()

	// Parse it back
	parsed, err := vgm.ParseDocument(doc.Bytes())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("version 0x%03X, %d commands, %d samples\n",
		parsed.Header.Version, len(parsed.Commands), parsed.TotalSamples())
	// Output: version 0x171, 3 commands, 735 samples
}

func ExampleNewPlayer() {
	b := vgm.NewBuilder(0x171)
	b.WriteSN76489(vgm.Primary, 0x8E).Wait(44100)
	p := vgm.NewPlayer(b.Finalize())

	count := 0
	for {
		_, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		count++
	}

	fmt.Printf("%d commands, %d samples\n", count, p.CurrentSample())
	// Output: 2 commands, 44100 samples
}

func ExampleNewHarness() {
	// A PSG tone: divider bytes, then an attenuation write that keys
	// the channel on
	b := vgm.NewBuilder(0x171)
	b.RegisterChip(vgm.ChipSN76489, vgm.Primary, 3579545)
	b.WriteSN76489(vgm.Primary, 0x8E).
		WriteSN76489(vgm.Primary, 0x0F).
		WriteSN76489(vgm.Primary, 0x90)

	h := vgm.NewHarness(vgm.NewPlayer(b.Finalize()))
	h.EnableStateTracking()

	vgm.Handle(h, func(sample uint64, cmd vgm.SN76489Write, events []tracker.StateEvent) {
		for _, e := range events {
			fmt.Printf("%s channel %d at %.1f Hz\n", e.Kind, e.Channel, e.Tone.FreqHz)
		}
	})
	if err := h.Run(); err != nil {
		log.Fatal(err)
	}
	// Output: KeyOn channel 0 at 440.4 Hz
}

func ExampleNewStreamPlayer() {
	b := vgm.NewBuilder(0x171)
	b.RegisterChip(vgm.ChipSN76489, vgm.Primary, 3579545)
	b.WriteSN76489(vgm.Primary, 0x8E).Wait(735)
	raw := b.Finalize().Bytes()

	// Push the file in small chunks, pulling whatever is ready
	p := vgm.NewStreamPlayer()
	commands := 0
	for len(raw) > 0 {
		n := 64
		if n > len(raw) {
			n = len(raw)
		}
		p.Feed(raw[:n])
		raw = raw[n:]

		for {
			_, err := p.Next()
			if err == vgm.ErrNeedsMoreData || err == io.EOF {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			commands++
		}
	}

	fmt.Printf("%d commands\n", commands)
	// Output: 2 commands
}
