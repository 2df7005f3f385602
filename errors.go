// errors.go defines the public error types for the vgm package.

package vgm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by parsing and streaming operations.
var (
	// ErrUnexpectedEOF indicates the input ended in the middle of a
	// header, command, or embedded data block.
	ErrUnexpectedEOF = errors.New("vgm: unexpected end of input")

	// ErrNeedsMoreData is returned by a byte-fed Player when the buffered
	// input ends mid-command. Feed more bytes and call Next again.
	ErrNeedsMoreData = errors.New("vgm: needs more data")
)

// InvalidIdentError indicates the file does not start with the "Vgm "
// magic bytes.
type InvalidIdentError struct {
	Ident [4]byte
}

func (e *InvalidIdentError) Error() string {
	return fmt.Sprintf("vgm: invalid ident %q (want \"Vgm \")", e.Ident[:])
}

// HeaderTooShortError indicates the input is shorter than the minimum
// header size, or shorter than the header's own declared data start.
type HeaderTooShortError struct {
	Context   string
	Needed    int
	Available int
}

func (e *HeaderTooShortError) Error() string {
	return fmt.Sprintf("vgm: header too short: %s (need %d bytes, have %d)",
		e.Context, e.Needed, e.Available)
}

// OffsetOutOfRangeError indicates a bounds-checked read past the end of
// the input. Context names the field or structure being read.
type OffsetOutOfRangeError struct {
	Offset    int
	Needed    int
	Available int
	Context   string
}

func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("vgm: offset 0x%X out of range reading %s (need %d bytes, have %d)",
		e.Offset, e.Context, e.Needed, e.Available)
}

func (e *OffsetOutOfRangeError) Unwrap() error { return ErrUnexpectedEOF }

// DataInconsistencyError indicates structurally valid input whose
// contents contradict each other, such as a fast-call referencing a data
// block in a different bank than the stream is configured for.
type DataInconsistencyError struct {
	Detail string
}

func (e *DataInconsistencyError) Error() string {
	return "vgm: data inconsistency: " + e.Detail
}

// DataBlockSizeExceededError indicates that accumulating a data block
// would push the total embedded data past the configured limit.
type DataBlockSizeExceededError struct {
	Current   int
	Limit     int
	Attempted int
}

func (e *DataBlockSizeExceededError) Error() string {
	return fmt.Sprintf("vgm: data block storage limit exceeded: %d bytes stored, limit %d, attempted %d more",
		e.Current, e.Limit, e.Attempted)
}

func dataInconsistencyf(format string, args ...interface{}) error {
	return &DataInconsistencyError{Detail: fmt.Sprintf(format, args...)}
}
