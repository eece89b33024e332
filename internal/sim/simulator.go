package sim

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/integrators"
	"github.com/san-kum/dynadraw/internal/render"
)

type Simulator struct {
	state      State
	integrator dynamo.Integrator
	renderer   *render.Renderer
	surface    render.Surface
	background color.RGBA
	queue      []Event
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger
	diverged   bool
}

type Option func(*Simulator)

func WithParams(p dynamo.Params) Option {
	return func(s *Simulator) { s.state.Params = p.Clamped() }
}

func WithColor(c color.RGBA) Option {
	return func(s *Simulator) { s.state.Color = c }
}

func WithBackground(c color.RGBA) Option {
	return func(s *Simulator) { s.background = c }
}

func WithIntegrator(i dynamo.Integrator) Option {
	return func(s *Simulator) { s.integrator = i }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a simulator painting onto surface with the pen at rest in the
// middle of it.
func New(surface render.Surface, opts ...Option) *Simulator {
	s := &Simulator{
		state: State{
			Params: dynamo.DefaultParams(),
			Color:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		},
		integrator: integrators.NewSpring(),
		renderer:   render.NewRenderer(),
		surface:    surface,
		background: color.RGBA{A: 0xff},
		queue:      make([]Event, 0, 16),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	w, h := surface.Size()
	s.Reset(dynamo.V(float64(w)/2, float64(h)/2))
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Push queues an event for the next frame.
func (s *Simulator) Push(events ...Event) {
	s.queue = append(s.queue, events...)
}

func (s *Simulator) Pending() int { return len(s.queue) }

func (s *Simulator) State() State { return s.state }

func (s *Simulator) Surface() render.Surface { return s.surface }

func (s *Simulator) Background() color.RGBA { return s.background }

// Reset puts the pen at rest at p and parks the pointer there.
func (s *Simulator) Reset(p dynamo.Vec2) {
	s.state.Pen = dynamo.NewPenState(p)
	s.state.Input.Pointer = p
	s.diverged = false
}

// Frame applies every queued event, then runs one integration step and at
// most one render step. If an event fails, the events queued after it stay
// queued for the next frame.
func (s *Simulator) Frame() (dynamo.Frame, error) {
	queued := s.queue
	s.queue = s.queue[:0]
	for i, ev := range queued {
		if err := ev.apply(s); err != nil {
			s.queue = append([]Event(nil), queued[i+1:]...)
			return dynamo.Frame{}, &dynamo.FrameError{Frame: s.state.Frame, Wrapped: err}
		}
	}

	params := s.state.Params
	input := s.state.Input

	pen := s.integrator.Step(s.state.Pen, input.Pointer, params)
	if !pen.IsValid() && !s.diverged {
		s.diverged = true
		s.logger.Warn("pen state diverged", "frame", s.state.Frame, "err", dynamo.ErrInvalidState, "pen", fmt.Sprintf("%+v", pen))
	}
	s.state.Pen = pen

	seg, err := s.renderer.Render(s.surface, pen, input.Down, params, s.state.Color)
	if err != nil {
		return dynamo.Frame{}, &dynamo.FrameError{Frame: s.state.Frame, Wrapped: err}
	}

	f := dynamo.Frame{
		Index:   s.state.Frame,
		Pen:     pen,
		Input:   input,
		Params:  params,
		Segment: seg,
	}
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}

	s.state.Frame++
	return f, nil
}

// Run advances n frames, stopping early if ctx is done.
func (s *Simulator) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := s.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulator) ResetMetrics() {
	for _, m := range s.metrics {
		m.Reset()
	}
}
