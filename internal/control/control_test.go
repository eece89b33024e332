package control

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/sim"
)

func TestKnobXAndValueAt(t *testing.T) {
	s := NewSurface(1000)

	if got := s.KnobX(StiffnessSlider, 0.01); got != 0 {
		t.Errorf("min stiffness knob at %v, want 0", got)
	}
	if got := s.KnobX(StiffnessSlider, 0.2); math.Abs(got-1000) > 1e-9 {
		t.Errorf("max stiffness knob at %v, want 1000", got)
	}

	tests := []struct {
		name string
		sl   Slider
		x    float64
		want float64
	}{
		{"stiffness left edge", StiffnessSlider, 0, 0.01},
		{"stiffness right edge", StiffnessSlider, 1000, 0.2},
		{"stiffness past right", StiffnessSlider, 5000, 0.2},
		{"stiffness past left", StiffnessSlider, -300, 0.01},
		{"damping middle", DampingSlider, 500, 0.6245},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ValueAt(tt.sl, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ValueAt(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestPressOnStiffnessKnob(t *testing.T) {
	s := NewSurface(1000)
	p := dynamo.DefaultParams()
	knob := s.KnobX(StiffnessSlider, p.Stiffness)

	events := s.Press(dynamo.V(knob+10, 12), p)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	set, ok := events[0].(sim.StiffnessSet)
	if !ok {
		t.Fatalf("expected StiffnessSet, got %T", events[0])
	}
	if math.Abs(set.Value-s.ValueAt(StiffnessSlider, knob+10)) > 1e-12 {
		t.Errorf("unexpected stiffness %v", set.Value)
	}
	if _, ok := events[1].(sim.PointerPressed); !ok {
		t.Errorf("expected PointerPressed, got %T", events[1])
	}
	if sl, ok := s.Editing(); !ok || sl.Label != "STIFFNESS" {
		t.Errorf("expected to be editing stiffness, got %v %v", sl, ok)
	}

	moved := s.Move(dynamo.V(0, 300))
	if set, ok := moved[0].(sim.StiffnessSet); !ok || set.Value != 0.01 {
		t.Errorf("drag to the left edge should give min stiffness, got %#v", moved[0])
	}

	released := s.Release(dynamo.V(0, 300))
	if _, ok := released[0].(sim.PointerReleased); !ok {
		t.Errorf("expected PointerReleased, got %T", released[0])
	}
	if _, ok := s.Editing(); ok {
		t.Error("still editing after release")
	}
	if moved := s.Move(dynamo.V(10, 10)); len(moved) != 1 {
		t.Errorf("expected only a pointer move after release, got %d events", len(moved))
	}
}

func TestPressOnDampingKnob(t *testing.T) {
	s := NewSurface(800)
	p := dynamo.DefaultParams()
	knob := s.KnobX(DampingSlider, p.Damping)

	events := s.Press(dynamo.V(knob-39, 30), p)
	if _, ok := events[0].(sim.DampingSet); !ok {
		t.Fatalf("expected DampingSet, got %T", events[0])
	}
}

func TestPressOutsideKnobsClears(t *testing.T) {
	s := NewSurface(800)
	p := dynamo.DefaultParams()
	kKnob := s.KnobX(StiffnessSlider, p.Stiffness)

	tests := []struct {
		name string
		at   dynamo.Vec2
	}{
		{"canvas body", dynamo.V(400, 400)},
		{"stiffness row far from knob", dynamo.V(kKnob+200, 10)},
		{"just past tolerance", dynamo.V(kKnob+41, 10)},
		{"on the row boundary", dynamo.V(kKnob, 25)},
		{"top edge", dynamo.V(kKnob, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := s.Press(tt.at, p)
			if _, ok := events[0].(sim.Cleared); !ok {
				t.Errorf("expected Cleared, got %T", events[0])
			}
			if _, ok := s.Editing(); ok {
				t.Error("press outside knobs started an edit")
			}
		})
	}
}

func TestResizeTracksWidth(t *testing.T) {
	s := NewSurface(100)
	events := s.Resize(640, 480)
	if s.Width != 640 {
		t.Errorf("expected width 640, got %v", s.Width)
	}
	if r, ok := events[0].(sim.Resized); !ok || r.W != 640 || r.H != 480 {
		t.Errorf("expected Resized event, got %#v", events[0])
	}
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	s := NewSurface(800)
	for _, size := range [][2]int{{0, 0}, {640, 0}, {-1, 480}} {
		if events := s.Resize(size[0], size[1]); len(events) != 0 {
			t.Errorf("Resize(%d, %d): expected no events, got %v", size[0], size[1], events)
		}
	}
	if s.Width != 800 {
		t.Errorf("width changed to %v", s.Width)
	}
}

func TestValueText(t *testing.T) {
	if got := ValueText(StiffnessSlider, 0.06); got != "0.06" {
		t.Errorf("stiffness text %q", got)
	}
	if got := ValueText(DampingSlider, 0.88); got != "0.880" {
		t.Errorf("damping text %q", got)
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p.Colors) != 8 {
		t.Fatalf("expected 8 colors, got %d", len(p.Colors))
	}
	want := color.RGBA{R: 0xff, G: 0x62, B: 0x8c, A: 0xff}
	if p.Colors[DefaultColorIndex] != want {
		t.Errorf("default draw color %v, want %v", p.Colors[DefaultColorIndex], want)
	}
}

func TestPaletteKeys(t *testing.T) {
	p := DefaultPalette()

	ev, ok := p.Key('3')
	if !ok {
		t.Fatal("expected key 3 to select a color")
	}
	if sel := ev.(sim.ColorSelected); sel.Color != p.Colors[3] {
		t.Errorf("key 3 selected %v", sel.Color)
	}

	for _, r := range []rune{'0', '8', '9', ' ', 'a'} {
		if _, ok := p.Key(r); ok {
			t.Errorf("key %q should not select a color", r)
		}
	}

	short, err := ParsePalette([]string{"#000000", "#ffffff"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := short.Key('5'); ok {
		t.Error("key past the end of a short palette should be ignored")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#2ec4b6")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c != (color.RGBA{R: 0x2e, G: 0xc4, B: 0xb6, A: 0xff}) {
		t.Errorf("unexpected color %v", c)
	}

	for _, bad := range []string{"#00078", "zzz", "", "#gggggg"} {
		if _, err := ParseHex(bad); !errors.Is(err, dynamo.ErrUnknownColor) {
			t.Errorf("ParseHex(%q): expected ErrUnknownColor, got %v", bad, err)
		}
	}

	if _, err := DefaultPalette().Color(99); !errors.Is(err, dynamo.ErrUnknownColor) {
		t.Errorf("expected ErrUnknownColor, got %v", err)
	}
}
