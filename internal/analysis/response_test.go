package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/integrators"
)

func params(k, d float64) dynamo.Params {
	p := dynamo.DefaultParams()
	p.Stiffness, p.Damping = k, d
	return p
}

func TestStepResponseClassic(t *testing.T) {
	r := StepResponse(integrators.NewSpring(), dynamo.DefaultParams(), DefaultStep)

	if len(r.Trajectory) != DefaultStep.Frames {
		t.Fatalf("expected %d samples, got %d", DefaultStep.Frames, len(r.Trajectory))
	}
	if math.Abs(r.Overshoot-0.418) > 0.005 {
		t.Errorf("expected overshoot near 0.418, got %f", r.Overshoot)
	}
	if !r.Settled || r.SettleFrames < 50 || r.SettleFrames > 65 {
		t.Errorf("expected to settle near frame 58, got %d (settled %v)", r.SettleFrames, r.Settled)
	}

	// the wobble of a lightly damped spring sits near sqrt(k)/2pi
	want := math.Sqrt(0.06) / (2 * math.Pi)
	if math.Abs(r.Frequency-want) > 2.0/float64(DefaultStep.Frames) {
		t.Errorf("expected frequency near %f, got %f", want, r.Frequency)
	}
}

func TestStepResponseOrdering(t *testing.T) {
	spring := integrators.NewSpring()
	stiff := StepResponse(spring, params(0.2, 0.5), DefaultStep)
	wobbly := StepResponse(spring, params(0.15, 0.97), DefaultStep)

	if stiff.Overshoot >= wobbly.Overshoot {
		t.Errorf("stiff nib overshoot %f should be below wobbly %f", stiff.Overshoot, wobbly.Overshoot)
	}
	if stiff.SettleFrames >= wobbly.SettleFrames {
		t.Errorf("stiff nib should settle first: %d vs %d", stiff.SettleFrames, wobbly.SettleFrames)
	}
}

func TestStepResponseOverdamped(t *testing.T) {
	r := StepResponse(integrators.NewSpring(), params(0.01, 0.25), Step{Distance: 100, Frames: 256, Tolerance: 0.02})
	if r.Overshoot != 0 {
		t.Errorf("expected no overshoot, got %f", r.Overshoot)
	}
	if r.Frequency != 0 {
		t.Errorf("expected no wobble, got %f", r.Frequency)
	}
	if r.Settled {
		t.Error("a creeping pen should not settle within 256 frames")
	}
}

func TestStepResponseDegenerate(t *testing.T) {
	if r := StepResponse(integrators.NewSpring(), dynamo.DefaultParams(), Step{}); r.Trajectory != nil {
		t.Error("empty step should produce an empty response")
	}
}

func TestDominantFrequency(t *testing.T) {
	n := 128
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}
	if got := DominantFrequency(samples); got != 8.0/128 {
		t.Errorf("expected %f, got %f", 8.0/128, got)
	}
	if DominantFrequency([]float64{1}) != 0 {
		t.Error("single sample has no frequency")
	}
}

func TestResponseMetric(t *testing.T) {
	r := Response{Overshoot: 0.5, SettleFrames: 12, PeakSpeed: 3, Frequency: 0.1}
	for _, name := range MetricNames {
		if _, err := r.Metric(name); err != nil {
			t.Errorf("metric %s: %v", name, err)
		}
	}
	if v, _ := r.Metric("settle_frames"); v != 12 {
		t.Errorf("expected 12, got %f", v)
	}
	if _, err := r.Metric("energy"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
