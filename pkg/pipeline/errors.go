package pipeline

import (
	"errors"
	"fmt"
)

// Expected failure modes of the video assembly pipeline. Anything else
// coming out of the encode primitive is wrapped in EncodingError.
var (
	// ErrNoContent means the scene list was empty.
	ErrNoContent = errors.New("no cards to export")

	// ErrUnsupportedPlatform means no probe-listed codec can be encoded here.
	ErrUnsupportedPlatform = errors.New("no usable video codec available")

	// ErrCancelled means the user aborted the export. No partial output file
	// is surfaced.
	ErrCancelled = errors.New("export cancelled")
)

// EncodingError wraps an opaque failure from the underlying encode/mux
// primitive, retaining the original message for diagnostics.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
