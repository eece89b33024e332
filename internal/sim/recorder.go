package sim

import (
	"image/color"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/render"
)

// Recorder keeps the ordered segments a simulator emitted so they can be
// painted again onto another surface. It lives in memory only.
type Recorder struct {
	segments []dynamo.Segment
}

func NewRecorder() *Recorder {
	return &Recorder{segments: make([]dynamo.Segment, 0, 256)}
}

func (r *Recorder) OnFrame(f dynamo.Frame) {
	if f.Segment != nil {
		r.segments = append(r.segments, *f.Segment)
	}
}

func (r *Recorder) Len() int { return len(r.segments) }

func (r *Recorder) Segments() []dynamo.Segment {
	out := make([]dynamo.Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

func (r *Recorder) Reset() { r.segments = r.segments[:0] }

// Replay clears s to bg and paints the recorded segments in order.
func (r *Recorder) Replay(s render.Surface, bg color.RGBA) error {
	s.Clear(bg)
	rd := render.NewRenderer()
	for _, seg := range r.segments {
		if err := rd.Draw(s, seg); err != nil {
			return err
		}
	}
	return nil
}
