package sim

import (
	"fmt"
	"image/color"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

// State is everything that survives from one frame to the next.
type State struct {
	Pen    dynamo.PenState
	Params dynamo.Params
	Color  color.RGBA
	Input  dynamo.InputSample
	Frame  int
}

// Event is an input applied at the start of the next frame.
type Event interface {
	apply(s *Simulator) error
}

type PointerMoved struct{ At dynamo.Vec2 }

type PointerPressed struct{ At dynamo.Vec2 }

type PointerReleased struct{ At dynamo.Vec2 }

type ColorSelected struct{ Color color.RGBA }

type StiffnessSet struct{ Value float64 }

type DampingSet struct{ Value float64 }

// Cleared wipes the raster back to the background color.
type Cleared struct{}

// Resized reallocates the raster and puts the pen at rest in its center.
// Empty sizes and the current size are ignored.
type Resized struct{ W, H int }

func (e PointerMoved) apply(s *Simulator) error {
	s.state.Input.Pointer = e.At
	return nil
}

func (e PointerPressed) apply(s *Simulator) error {
	s.state.Input = dynamo.InputSample{Pointer: e.At, Down: true}
	return nil
}

func (e PointerReleased) apply(s *Simulator) error {
	s.state.Input = dynamo.InputSample{Pointer: e.At, Down: false}
	return nil
}

func (e ColorSelected) apply(s *Simulator) error {
	s.state.Color = e.Color
	return nil
}

func (e StiffnessSet) apply(s *Simulator) error {
	s.state.Params.Stiffness = dynamo.StiffnessRange.Clamp(e.Value)
	return nil
}

func (e DampingSet) apply(s *Simulator) error {
	s.state.Params.Damping = dynamo.DampingRange.Clamp(e.Value)
	return nil
}

func (e Cleared) apply(s *Simulator) error {
	s.surface.Clear(s.background)
	s.logger.Debug("canvas cleared", "frame", s.state.Frame)
	return nil
}

func (e Resized) apply(s *Simulator) error {
	if e.W <= 0 || e.H <= 0 {
		s.logger.Debug("ignoring empty resize", "width", e.W, "height", e.H)
		return nil
	}
	if w, h := s.surface.Size(); w == e.W && h == e.H {
		return nil
	}
	if err := s.surface.Resize(e.W, e.H); err != nil {
		return fmt.Errorf("resize canvas to %dx%d: %w", e.W, e.H, err)
	}
	s.Reset(dynamo.V(float64(e.W)/2, float64(e.H)/2))
	return nil
}
