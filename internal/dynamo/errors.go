package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors. The integrator and stroke math never fail; these come from
// configuration and from the raster backend.
var (
	// ErrInvalidState indicates a pen state containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid pen state (NaN or Inf detected)")

	// ErrParameterBounds indicates a fixed parameter outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a nib preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownColor indicates a palette index or color string that cannot be used.
	ErrUnknownColor = errors.New("dynamo: unknown color")
)

// FrameError wraps a failure with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
