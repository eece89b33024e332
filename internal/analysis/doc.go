// Package analysis characterizes how a pen setting feels to draw with.
//
// The pen is put at rest and the pointer jumps a fixed distance away; the
// resulting step response is summarized:
//
//   - [Response.Overshoot]: how far past the pointer the pen swings
//   - [Response.SettleFrames]: frames until the pen stays near the pointer
//   - [Response.Frequency]: the wobble frequency, from the spectrum of the error
//
// # Usage
//
//	r := analysis.StepResponse(integrators.NewSpring(), p, analysis.DefaultStep)
//	if r.Overshoot > 0.5 {
//	    // very springy nib
//	}
package analysis
