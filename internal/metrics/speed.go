package metrics

import (
	"math"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

// MeanSpeed is the average pen speed over every observed frame, drawing or not.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(f dynamo.Frame) {
	if !f.Pen.IsValid() {
		return
	}
	m.sum += f.Pen.Speed()
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f dynamo.Frame) {
	if !f.Pen.IsValid() {
		return
	}
	p.peak = math.Max(p.peak, f.Pen.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
