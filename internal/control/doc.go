// Package control is the input and tuning surface in front of the simulator.
//
// It maps pointer presses, drags and releases onto [sim.Event] values:
//
//   - [Surface]: two slider strips (stiffness, damping) along the top edge;
//     pressing elsewhere clears the canvas
//   - [Palette]: number keys 1 to 7 select a draw color
//
// # Usage
//
//	surf := control.NewSurface(float64(width))
//	s.Push(surf.Press(at, s.State().Params)...)
//	s.Push(surf.Move(at)...)
//	s.Push(surf.Release(at)...)
//
// The simulator never looks at slider geometry; it only sees the events.
package control
