// Package dynamo provides the core primitives of the damped-pen drawing toy.
//
// A pen of unit mass is tied to the pointer by a spring. Every display frame
// the pen is integrated one step toward the pointer and, while the draw
// trigger is held, a stroke segment is painted whose width shrinks as the pen
// speeds up:
//
//   - [PenState]: position, previous position and velocity of the pen
//   - [Params]: stiffness, damping, mass, ductus and maximum thickness
//   - [Integrator]: advances a pen one frame toward the pointer
//   - [Segment]: one frame of ink handed to a raster surface
//   - [Observer], [Metric]: per-frame hooks
//
// # Ranges
//
// Stiffness and damping are tunable live and are always clamped into
// [StiffnessRange] and [DampingRange]. Out of range values are never an
// error:
//
//	p := dynamo.DefaultParams()
//	p.Stiffness = 5
//	p = p.Clamped() // p.Stiffness == 0.2
package dynamo
