package sim

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/render"
)

type countingSurface struct {
	w, h      int
	lines     int
	discs     int
	clears    int
	resizeErr error
}

func (c *countingSurface) Line(from, to dynamo.Vec2, width float64, col color.RGBA) error {
	c.lines++
	return nil
}

func (c *countingSurface) Disc(center dynamo.Vec2, diameter float64, col color.RGBA) error {
	c.discs++
	return nil
}

func (c *countingSurface) Clear(bg color.RGBA) { c.clears++ }

func (c *countingSurface) Resize(w, h int) error {
	if c.resizeErr != nil {
		return c.resizeErr
	}
	c.w, c.h = w, h
	return nil
}

func (c *countingSurface) Size() (int, int)   { return c.w, c.h }
func (c *countingSurface) Image() image.Image { return nil }

type testMetric struct {
	count int
}

func (t *testMetric) Name() string           { return "test" }
func (t *testMetric) Observe(f dynamo.Frame) { t.count++ }
func (t *testMetric) Value() float64         { return float64(t.count) }
func (t *testMetric) Reset()                 { t.count = 0 }

func TestNewCentersPen(t *testing.T) {
	s := New(&countingSurface{w: 200, h: 100})
	st := s.State()
	if st.Pen.Position != dynamo.V(100, 50) {
		t.Errorf("expected pen centered, got %v", st.Pen.Position)
	}
	if st.Input.Pointer != st.Pen.Position {
		t.Errorf("expected pointer parked on pen, got %v", st.Input.Pointer)
	}
	if st.Params != dynamo.DefaultParams() {
		t.Errorf("expected default params, got %+v", st.Params)
	}
}

func TestFrameScenario(t *testing.T) {
	surf := &countingSurface{w: 200, h: 200}
	s := New(surf)
	s.Reset(dynamo.V(0, 0))

	s.Push(PointerMoved{At: dynamo.V(100, 0)})
	f, err := s.Frame()
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if math.Abs(f.Pen.Position.X-5.28) > 1e-9 {
		t.Errorf("frame 1 position: got %v", f.Pen.Position)
	}

	f, err = s.Frame()
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if math.Abs(f.Pen.Position.X-14.927616) > 1e-6 {
		t.Errorf("frame 2 position: got %v", f.Pen.Position)
	}
	if f.Index != 1 || s.State().Frame != 2 {
		t.Errorf("unexpected frame counters: index %d, state %d", f.Index, s.State().Frame)
	}
	if surf.lines != 0 {
		t.Errorf("expected no ink without the draw trigger, got %d lines", surf.lines)
	}
}

func TestFrameDrawsOnlyWhileDown(t *testing.T) {
	surf := &countingSurface{w: 100, h: 100}
	s := New(surf)

	s.Push(PointerPressed{At: dynamo.V(10, 10)})
	for i := 0; i < 5; i++ {
		f, err := s.Frame()
		if err != nil {
			t.Fatalf("frame failed: %v", err)
		}
		if f.Segment == nil {
			t.Fatalf("frame %d: expected a segment while down", i)
		}
	}

	s.Push(PointerReleased{At: dynamo.V(90, 90)})
	for i := 0; i < 5; i++ {
		f, err := s.Frame()
		if err != nil {
			t.Fatalf("frame failed: %v", err)
		}
		if f.Segment != nil {
			t.Fatalf("frame %d: unexpected segment after release", i)
		}
	}

	if surf.lines != 5 {
		t.Errorf("expected 5 lines, got %d", surf.lines)
	}
}

func TestEventsAppliedInOrderAndClamped(t *testing.T) {
	s := New(&countingSurface{w: 10, h: 10})

	s.Push(StiffnessSet{Value: 0.1}, StiffnessSet{Value: 5}, DampingSet{Value: -1})
	if s.Pending() != 3 {
		t.Fatalf("expected 3 pending events, got %d", s.Pending())
	}
	f, err := s.Frame()
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if f.Params.Stiffness != 0.2 {
		t.Errorf("expected stiffness 0.2, got %v", f.Params.Stiffness)
	}
	if f.Params.Damping != 0.25 {
		t.Errorf("expected damping 0.25, got %v", f.Params.Damping)
	}
	if s.Pending() != 0 {
		t.Errorf("queue not drained: %d", s.Pending())
	}
}

func TestClearedAndColorSelected(t *testing.T) {
	surf := &countingSurface{w: 10, h: 10}
	bg := color.RGBA{B: 0x3c, A: 0xff}
	s := New(surf, WithBackground(bg))

	red := color.RGBA{R: 0xff, A: 0xff}
	s.Push(Cleared{}, ColorSelected{Color: red})
	if _, err := s.Frame(); err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if surf.clears != 1 {
		t.Errorf("expected 1 clear, got %d", surf.clears)
	}
	if s.State().Color != red {
		t.Errorf("expected red draw color, got %v", s.State().Color)
	}
}

func TestResizedResetsPen(t *testing.T) {
	surf := &countingSurface{w: 10, h: 10}
	s := New(surf)
	s.Push(PointerMoved{At: dynamo.V(300, 300)})
	if err := s.Run(context.Background(), 10); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	s.Push(Resized{W: 640, H: 480})
	f, err := s.Frame()
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if f.Pen.Position != dynamo.V(320, 240) || f.Pen.Speed() != 0 {
		t.Errorf("expected pen at rest in the new center, got %+v", f.Pen)
	}
}

func TestResizeFailureIsFrameError(t *testing.T) {
	boom := errors.New("no memory")
	s := New(&countingSurface{w: 10, h: 10, resizeErr: boom})
	s.Push(Resized{W: 5, H: 5})

	_, err := s.Frame()
	var fe *dynamo.FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FrameError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped surface error, got %v", err)
	}
}

func TestFailedEventKeepsLaterEventsQueued(t *testing.T) {
	surf := &countingSurface{w: 10, h: 10, resizeErr: errors.New("no memory")}
	s := New(surf)
	red := color.RGBA{R: 0xff, A: 0xff}
	s.Push(Resized{W: 5, H: 5}, ColorSelected{Color: red}, PointerPressed{At: dynamo.V(3, 3)})

	if _, err := s.Frame(); err == nil {
		t.Fatal("expected the resize to fail")
	}
	if s.Pending() != 2 {
		t.Fatalf("expected 2 events still queued, got %d", s.Pending())
	}

	surf.resizeErr = nil
	if _, err := s.Frame(); err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	st := s.State()
	if st.Color != red || !st.Input.Down {
		t.Errorf("queued events were lost: color %v, down %v", st.Color, st.Input.Down)
	}
	if s.Pending() != 0 {
		t.Errorf("expected an empty queue, got %d", s.Pending())
	}
}

func TestResizedIgnoresEmptyAndUnchangedSize(t *testing.T) {
	tests := []struct {
		name string
		ev   Resized
	}{
		{"minimized window", Resized{W: 0, H: 0}},
		{"negative height", Resized{W: 10, H: -1}},
		{"same size", Resized{W: 10, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surf := &countingSurface{w: 10, h: 10, resizeErr: errors.New("unexpected resize")}
			s := New(surf)
			s.Push(PointerMoved{At: dynamo.V(300, 300)})
			if err := s.Run(context.Background(), 5); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			s.Push(tt.ev, PointerPressed{At: dynamo.V(300, 300)})
			f, err := s.Frame()
			if err != nil {
				t.Fatalf("frame failed: %v", err)
			}
			if f.Pen.Speed() == 0 {
				t.Error("pen was reset by an ignored resize")
			}
			if !f.Input.Down {
				t.Error("press after the resize was not applied")
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	s := New(&countingSurface{w: 10, h: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, 100); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if s.State().Frame != 0 {
		t.Errorf("expected no frames, got %d", s.State().Frame)
	}
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(&countingSurface{w: 10, h: 10})
	m := &testMetric{}
	s.AddMetric(m)

	if err := s.Run(context.Background(), 10); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := s.Metrics()["test"]; got != 10 {
		t.Errorf("expected 10 observations, got %v", got)
	}
	s.ResetMetrics()
	if m.count != 0 {
		t.Error("metric not reset")
	}
}

func TestRecorderReplayMatchesLiveCanvas(t *testing.T) {
	bg := color.RGBA{R: 0x00, G: 0x19, B: 0x3c, A: 0xff}
	live := render.NewCanvas(120, 80, bg)
	defer live.Close()

	rec := NewRecorder()
	s := New(live, WithBackground(bg), WithColor(color.RGBA{R: 0xfa, G: 0xd0, A: 0xff}))
	s.AddObserver(rec)

	s.Push(PointerPressed{At: dynamo.V(20, 20)})
	if err := s.Run(context.Background(), 30); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	s.Push(PointerMoved{At: dynamo.V(100, 70)})
	if err := s.Run(context.Background(), 30); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if rec.Len() != 60 {
		t.Fatalf("expected 60 recorded segments, got %d", rec.Len())
	}

	replay := render.NewCanvas(120, 80, bg)
	defer replay.Close()
	if err := rec.Replay(replay, bg); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	a := live.Image().(*image.RGBA)
	b := replay.Image().(*image.RGBA)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("replayed raster differs at byte %d", i)
		}
	}

	rec.Reset()
	if rec.Len() != 0 {
		t.Error("recorder not reset")
	}
}

func TestEnsembleRunsVariants(t *testing.T) {
	factory := func(p dynamo.Params) *Simulator {
		return New(&countingSurface{w: 100, h: 100}, WithParams(p))
	}
	variants := []dynamo.Params{dynamo.DefaultParams(), dynamo.DefaultParams(), dynamo.DefaultParams()}
	variants[1].Stiffness = 0.2
	variants[2].Damping = 0.3

	drive := func(ctx context.Context, s *Simulator) error {
		s.Push(PointerMoved{At: dynamo.V(0, 0)})
		return s.Run(ctx, 5)
	}

	sims, err := NewEnsemble(factory).Run(context.Background(), variants, drive)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(sims) != 3 {
		t.Fatalf("expected 3 simulators, got %d", len(sims))
	}
	if sims[0].State().Pen == sims[1].State().Pen {
		t.Error("different stiffness produced identical pens")
	}
	for i, s := range sims {
		if s.State().Params != variants[i].Clamped() {
			t.Errorf("variant %d: params %+v", i, s.State().Params)
		}
	}
}
