// Package vgm implements reading, writing, and streaming of VGM files.
//
// VGM is a binary log format for vintage sound chips: a file records
// register writes and timing events for the Yamaha OPN/OPL families,
// the SN76489 PSG, and some forty other chips, at a fixed rate of
// 44100 samples per second.
//
// A file contains a versioned fixed-layout header, an optional
// extra-header with per-chip clock and volume overrides, a command
// stream, optional embedded data blocks (PCM banks, compressed
// streams, decompression tables), and an optional GD3 metadata chunk.
//
// # Document model
//
// ParseDocument decodes a whole file into a Document: the header, the
// typed command sequence, and the trailing chunks. Document.Bytes
// serializes it back, recomputing the EOF, GD3, data, and loop offsets
// from the actual layout. NewBuilder assembles documents from scratch.
//
// # Streaming
//
// NewPlayer iterates the processed command stream of a document:
// DAC-stream control commands (opcodes 0x90-0x95) are executed rather
// than yielded, generating chip writes interleaved with waits at each
// stream's sample rate, and the loop point, loop count, and fadeout
// window are honored. NewStreamPlayer does the same over an
// incrementally fed byte buffer, returning ErrNeedsMoreData when it
// runs dry.
//
// # State tracking
//
// NewHarness dispatches player output to per-command-type handlers.
// With state tracking enabled, register writes are replayed into
// per-chip models from the tracker package, which report key-on,
// key-off, and tone-change transitions with computed frequencies.
package vgm
