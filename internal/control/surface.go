package control

import (
	"fmt"
	"strconv"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/sim"
)

const (
	DefaultSliderHeight = 25.0
	DefaultTolerance    = 40.0
)

type Slider struct {
	Label string
	Range dynamo.Range
	Row   int
}

var (
	StiffnessSlider = Slider{Label: "STIFFNESS", Range: dynamo.StiffnessRange, Row: 0}
	DampingSlider   = Slider{Label: "DAMPING", Range: dynamo.DampingRange, Row: 1}
)

type editing int

const (
	editNone editing = iota
	editStiffness
	editDamping
)

// Surface turns raw pointer input into simulator events. It owns the two
// slider strips along the top edge; a press anywhere else clears the canvas.
type Surface struct {
	Width        float64
	SliderHeight float64
	Tolerance    float64
	editing      editing
}

func NewSurface(width float64) *Surface {
	return &Surface{
		Width:        width,
		SliderHeight: DefaultSliderHeight,
		Tolerance:    DefaultTolerance,
	}
}

// KnobX is the x coordinate of a slider knob showing v.
func (s *Surface) KnobX(sl Slider, v float64) float64 {
	return s.Width * sl.Range.Fraction(v)
}

// ValueAt maps an x coordinate onto the slider range, clamped.
func (s *Surface) ValueAt(sl Slider, x float64) float64 {
	if s.Width <= 0 {
		return sl.Range.Min
	}
	return sl.Range.Clamp(sl.Range.Lerp(x / s.Width))
}

// Band returns the top and bottom y of a slider strip.
func (s *Surface) Band(sl Slider) (float64, float64) {
	top := float64(sl.Row) * s.SliderHeight
	return top, top + s.SliderHeight
}

func (s *Surface) hit(sl Slider, v float64, at dynamo.Vec2) bool {
	top, bottom := s.Band(sl)
	dx := at.X - s.KnobX(sl, v)
	if dx < 0 {
		dx = -dx
	}
	return dx < s.Tolerance && at.Y > top && at.Y < bottom
}

func (s *Surface) Editing() (Slider, bool) {
	switch s.editing {
	case editStiffness:
		return StiffnessSlider, true
	case editDamping:
		return DampingSlider, true
	}
	return Slider{}, false
}

// Press starts a slider drag when it lands on a knob and clears the canvas
// otherwise. The pointer press is forwarded either way.
func (s *Surface) Press(at dynamo.Vec2, p dynamo.Params) []sim.Event {
	events := make([]sim.Event, 0, 2)
	switch {
	case s.hit(StiffnessSlider, p.Stiffness, at):
		s.editing = editStiffness
		events = append(events, sim.StiffnessSet{Value: s.ValueAt(StiffnessSlider, at.X)})
	case s.hit(DampingSlider, p.Damping, at):
		s.editing = editDamping
		events = append(events, sim.DampingSet{Value: s.ValueAt(DampingSlider, at.X)})
	default:
		s.editing = editNone
		events = append(events, sim.Cleared{})
	}
	return append(events, sim.PointerPressed{At: at})
}

func (s *Surface) Move(at dynamo.Vec2) []sim.Event {
	events := make([]sim.Event, 0, 2)
	switch s.editing {
	case editStiffness:
		events = append(events, sim.StiffnessSet{Value: s.ValueAt(StiffnessSlider, at.X)})
	case editDamping:
		events = append(events, sim.DampingSet{Value: s.ValueAt(DampingSlider, at.X)})
	}
	return append(events, sim.PointerMoved{At: at})
}

func (s *Surface) Release(at dynamo.Vec2) []sim.Event {
	s.editing = editNone
	return []sim.Event{sim.PointerReleased{At: at}}
}

// Resize tracks a new surface width and reinitializes the canvas. A
// minimized window reports an empty size, which produces no events.
func (s *Surface) Resize(w, h int) []sim.Event {
	if w <= 0 || h <= 0 {
		return nil
	}
	s.Width = float64(w)
	s.editing = editNone
	return []sim.Event{sim.Resized{W: w, H: h}}
}

// ValueText formats a slider value the way the knob label shows it:
// stiffness in full, damping to three places.
func ValueText(sl Slider, v float64) string {
	if sl.Row == DampingSlider.Row {
		return fmt.Sprintf("%.3f", v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
