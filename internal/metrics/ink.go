package metrics

import "github.com/san-kum/dynadraw/internal/dynamo"

// InkFrames counts frames that produced a segment.
type InkFrames struct {
	name  string
	count int
}

func NewInkFrames() *InkFrames {
	return &InkFrames{name: "ink_frames"}
}

func (i *InkFrames) Name() string { return i.name }

func (i *InkFrames) Observe(f dynamo.Frame) {
	if f.Segment != nil {
		i.count++
	}
}

func (i *InkFrames) Value() float64 { return float64(i.count) }

func (i *InkFrames) Reset() { i.count = 0 }

// MeanThickness averages stroke width over inked frames only.
type MeanThickness struct {
	name    string
	sum     float64
	samples int
}

func NewMeanThickness() *MeanThickness {
	return &MeanThickness{name: "mean_thickness"}
}

func (m *MeanThickness) Name() string { return m.name }

func (m *MeanThickness) Observe(f dynamo.Frame) {
	if f.Segment == nil {
		return
	}
	m.sum += f.Segment.Thickness
	m.samples++
}

func (m *MeanThickness) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanThickness) Reset() {
	m.sum = 0
	m.samples = 0
}

// Standard returns a fresh set of every stroke metric.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{
		NewMeanSpeed(),
		NewPeakSpeed(),
		NewInkFrames(),
		NewMeanThickness(),
	}
}
