package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/dynadraw/internal/control"
)

const (
	fontSize  = 10
	labelGap  = 5
	creditMsg = "Dynadraw / Paul Haeberli, 1989"
)

var (
	ColPanel   = rl.NewColor(200, 200, 200, 255)
	ColEdge    = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(110, 110, 110, 255)
	ColCredit  = rl.NewColor(180, 180, 180, 255)
	ColCreditB = rl.NewColor(255, 255, 255, 255)
)

// sliderLabels places the label to the left of the knob and the value to its
// right, both baseline aligned inside the strip.
type sliderLabels struct {
	KnobX      float64
	Top        float64
	Bottom     float64
	LabelRight float64
	ValueLeft  float64
	Text       string
	Value      string
}

func layoutSlider(s *control.Surface, sl control.Slider, v float64) sliderLabels {
	top, bottom := s.Band(sl)
	k := s.KnobX(sl, v)
	return sliderLabels{
		KnobX:      k,
		Top:        top,
		Bottom:     bottom,
		LabelRight: k - labelGap,
		ValueLeft:  k + labelGap,
		Text:       sl.Label,
		Value:      control.ValueText(sl, v),
	}
}

func (a *App) drawSliders() {
	s := a.exp.Controls()
	p := a.exp.Params()
	w := int32(s.Width)
	h := int32(s.SliderHeight)

	rl.DrawRectangle(0, 0, w, 2*h, ColPanel)
	rl.DrawRectangleLines(0, 0, w, 2*h, ColEdge)
	rl.DrawLine(0, h, w, h, ColEdge)

	for _, l := range []sliderLabels{
		layoutSlider(s, control.StiffnessSlider, p.Stiffness),
		layoutSlider(s, control.DampingSlider, p.Damping),
	} {
		x := int32(l.KnobX)
		rl.DrawLine(x, int32(l.Top), x, int32(l.Bottom), ColEdge)

		y := int32(l.Bottom) - 8 - fontSize/2
		rl.DrawText(l.Text, int32(l.LabelRight)-rl.MeasureText(l.Text, fontSize), y, fontSize, ColText)
		rl.DrawText(l.Value, int32(l.ValueLeft), y, fontSize, ColText)
	}
}

func (a *App) drawCredit() {
	s := a.exp.Controls()
	h := int32(s.SliderHeight)
	top := int32(rl.GetScreenHeight()) - h
	rl.DrawRectangle(-1, top, int32(s.Width)+1, h, ColCreditB)
	rl.DrawLine(0, top, int32(s.Width), top, ColCredit)
	rl.DrawText(creditMsg, 5, top+h/2-fontSize/2, fontSize, ColCredit)
}
