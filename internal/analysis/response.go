package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/dynadraw/internal/dynamo"
)

// Step describes the pointer jump used for a step response.
type Step struct {
	Distance  float64
	Frames    int
	Tolerance float64 // fraction of Distance that counts as settled
}

var DefaultStep = Step{Distance: 100, Frames: 512, Tolerance: 0.02}

type Response struct {
	Trajectory   []float64 // pen position along the jump, one sample per frame
	Overshoot    float64   // peak excursion past the pointer, as a fraction of Distance
	PeakSpeed    float64
	SettleFrames int
	Settled      bool
	Frequency    float64 // cycles per frame, zero when the pen never crosses the pointer
}

// StepResponse runs integ from rest at the origin with the pointer held at
// Distance along x.
func StepResponse(integ dynamo.Integrator, p dynamo.Params, st Step) Response {
	if st.Frames <= 0 || st.Distance == 0 {
		return Response{}
	}
	pen := dynamo.NewPenState(dynamo.V(0, 0))
	pointer := dynamo.V(st.Distance, 0)

	r := Response{Trajectory: make([]float64, st.Frames)}
	errs := make([]float64, st.Frames)
	peak := 0.0
	for i := 0; i < st.Frames; i++ {
		pen = integ.Step(pen, pointer, p)
		x := pen.Position.X
		r.Trajectory[i] = x
		errs[i] = x - st.Distance
		peak = math.Max(peak, x)
		r.PeakSpeed = math.Max(r.PeakSpeed, pen.Speed())
	}

	r.Overshoot = math.Max(0, (peak-st.Distance)/st.Distance)

	band := st.Tolerance * math.Abs(st.Distance)
	r.SettleFrames = 0
	r.Settled = true
	for i := st.Frames - 1; i >= 0; i-- {
		if math.Abs(errs[i]) > band {
			r.SettleFrames = i + 1
			r.Settled = i+1 < st.Frames
			break
		}
	}

	if r.Overshoot > 0 {
		r.Frequency = DominantFrequency(errs)
	}
	return r
}

// DominantFrequency returns the strongest non-DC frequency in samples, in
// cycles per sample.
func DominantFrequency(samples []float64) float64 {
	n := len(samples)
	if n < 2 {
		return 0
	}
	spectrum := fft.FFTReal(samples)

	best, bin := 0.0, 0
	for k := 1; k <= n/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > best {
			best, bin = mag, k
		}
	}
	return float64(bin) / float64(n)
}

// Metric looks up a response value by the name the tuner uses.
func (r Response) Metric(name string) (float64, error) {
	switch name {
	case "overshoot":
		return r.Overshoot, nil
	case "settle_frames":
		return float64(r.SettleFrames), nil
	case "peak_speed":
		return r.PeakSpeed, nil
	case "frequency":
		return r.Frequency, nil
	}
	return 0, fmt.Errorf("unknown response metric %q", name)
}

var MetricNames = []string{"overshoot", "settle_frames", "peak_speed", "frequency"}
