// Package sim runs the per-frame pipeline of the drawing toy.
//
// A [Simulator] owns the pen, the tunable parameters, the draw color and the
// raster surface. Front ends never touch that state directly: they [Simulator.Push]
// events as they arrive and call [Simulator.Frame] once per display refresh.
// Frame applies the queued events in order, snapshots the parameters, then
// integrates once and renders at most once.
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Drive each one from a single
// goroutine. [Ensemble] runs independent simulators side by side.
package sim
