package render

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

// Surface is a persistent raster the stroke renderer paints onto.
type Surface interface {
	Line(from, to dynamo.Vec2, width float64, c color.RGBA) error
	Disc(center dynamo.Vec2, diameter float64, c color.RGBA) error
	Clear(bg color.RGBA)
	Resize(w, h int) error
	Size() (int, int)
	Image() image.Image
}

// Thickness maps pen speed to stroke width: slow strokes are wide, fast ones
// thin down to a one pixel hairline.
func Thickness(speed float64, p dynamo.Params) float64 {
	th := p.MaxThickness - math.Min(speed*p.Ductus, p.MaxThickness)
	return math.Max(dynamo.MinThickness, th)
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Segment builds the ink for the frame that moved the pen from pen.Previous
// to pen.Position. Nothing is produced while drawing is inactive.
func (r *Renderer) Segment(pen dynamo.PenState, active bool, p dynamo.Params, c color.RGBA) (dynamo.Segment, bool) {
	if !active {
		return dynamo.Segment{}, false
	}
	return dynamo.Segment{
		From:      pen.Previous,
		To:        pen.Position,
		Thickness: Thickness(pen.Speed(), p),
		Color:     c,
	}, true
}

// Draw paints a round-capped line and, for anything thicker than a hairline,
// a disc at the end to close the gap a sharp turn leaves between segments.
func (r *Renderer) Draw(s Surface, seg dynamo.Segment) error {
	if err := s.Line(seg.From, seg.To, seg.Thickness, seg.Color); err != nil {
		return err
	}
	if seg.HasJoint() {
		return s.Disc(seg.To, seg.Thickness, seg.Color)
	}
	return nil
}

// Render is Segment followed by Draw.
func (r *Renderer) Render(s Surface, pen dynamo.PenState, active bool, p dynamo.Params, c color.RGBA) (*dynamo.Segment, error) {
	seg, ok := r.Segment(pen, active, p, c)
	if !ok {
		return nil, nil
	}
	if err := r.Draw(s, seg); err != nil {
		return nil, err
	}
	return &seg, nil
}
