package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/san-kum/dynadraw/internal/config"
	"github.com/san-kum/dynadraw/internal/control"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/metrics"
	"github.com/san-kum/dynadraw/internal/render"
	"github.com/san-kum/dynadraw/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted pointer session.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Preset      string `yaml:"preset"`
	Steps       []Step `yaml:"steps"`
}

// Step moves the pointer to To, optionally changing the button, color or
// pen parameters on the way, then holds it there for Frames frames.
type Step struct {
	To        [2]float64 `yaml:"to"`
	Frames    int        `yaml:"frames"`
	Down      *bool      `yaml:"down,omitempty"`
	Color     *int       `yaml:"color,omitempty"`
	Stiffness *float64   `yaml:"stiffness,omitempty"`
	Damping   *float64   `yaml:"damping,omitempty"`
	Clear     bool       `yaml:"clear,omitempty"`
}

func (st Step) Target() dynamo.Vec2 { return dynamo.V(st.To[0], st.To[1]) }

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	if sc.Width < 0 || sc.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidScenario, sc.Width, sc.Height)
	}
	for i, st := range sc.Steps {
		if st.Frames < 0 {
			return fmt.Errorf("%w: step %d: negative frame count", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// Frames is the total number of frames the scenario runs.
func (sc *Scenario) Frames() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Frames
	}
	return n
}

// Configure returns a copy of base with the scenario's size and preset
// applied. Zero sizes and an empty preset keep the base values.
func (sc *Scenario) Configure(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Palette = append([]string(nil), base.Palette...)
	if sc.Width > 0 {
		cfg.Width = sc.Width
	}
	if sc.Height > 0 {
		cfg.Height = sc.Height
	}
	if sc.Preset != "" {
		if err := cfg.ApplyPreset(sc.Preset); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Events translates one step into the events pushed before its frames run.
func (st Step) Events(palette control.Palette) ([]sim.Event, error) {
	events := make([]sim.Event, 0, 5)
	if st.Clear {
		events = append(events, sim.Cleared{})
	}
	if st.Color != nil {
		c, err := palette.Color(*st.Color)
		if err != nil {
			return nil, err
		}
		events = append(events, sim.ColorSelected{Color: c})
	}
	if st.Stiffness != nil {
		events = append(events, sim.StiffnessSet{Value: *st.Stiffness})
	}
	if st.Damping != nil {
		events = append(events, sim.DampingSet{Value: *st.Damping})
	}

	at := st.Target()
	switch {
	case st.Down == nil:
		events = append(events, sim.PointerMoved{At: at})
	case *st.Down:
		events = append(events, sim.PointerPressed{At: at})
	default:
		events = append(events, sim.PointerReleased{At: at})
	}
	return events, nil
}

// Run plays the scenario against s.
func Run(ctx context.Context, sc *Scenario, s *sim.Simulator, palette control.Palette) error {
	for i, st := range sc.Steps {
		events, err := st.Events(palette)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		s.Push(events...)
		if err := s.Run(ctx, st.Frames); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Trace records the per-frame pen speed and stroke width. Frames without ink
// record a width of zero.
type Trace struct {
	Speed     []float64
	Thickness []float64
}

func NewTrace(capacity int) *Trace {
	return &Trace{
		Speed:     make([]float64, 0, capacity),
		Thickness: make([]float64, 0, capacity),
	}
}

func (t *Trace) OnFrame(f dynamo.Frame) {
	t.Speed = append(t.Speed, f.Pen.Speed())
	th := 0.0
	if f.Segment != nil {
		th = f.Segment.Thickness
	}
	t.Thickness = append(t.Thickness, th)
}

// Comparison is the outcome of one preset in ComparePresets.
type Comparison struct {
	Preset  string
	Params  dynamo.Params
	Metrics map[string]float64
	Trace   *Trace
}

// ComparePresets plays the same scenario once per preset, concurrently, each
// on its own canvas.
func ComparePresets(ctx context.Context, sc *Scenario, base *config.Config, presets []string, logger *slog.Logger) ([]Comparison, error) {
	cfg, err := sc.Configure(base)
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.PaletteColors()
	if err != nil {
		return nil, err
	}
	ink, err := palette.Color(cfg.Color)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	variants := make([]dynamo.Params, len(presets))
	for i, name := range presets {
		pc := *cfg
		if err := pc.ApplyPreset(name); err != nil {
			return nil, err
		}
		variants[i] = pc.Params()
	}

	factory := func(p dynamo.Params) *sim.Simulator {
		s := sim.New(render.NewCanvas(cfg.Width, cfg.Height, bg),
			sim.WithParams(p),
			sim.WithBackground(bg),
			sim.WithColor(ink),
			sim.WithLogger(logger),
		)
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		return s
	}

	var mu sync.Mutex
	traces := make(map[*sim.Simulator]*Trace, len(presets))
	drive := func(ctx context.Context, s *sim.Simulator) error {
		tr := NewTrace(sc.Frames())
		s.AddObserver(tr)
		mu.Lock()
		traces[s] = tr
		mu.Unlock()
		return Run(ctx, sc, s, palette)
	}

	sims, err := sim.NewEnsemble(factory).Run(ctx, variants, drive)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(sims))
	for i, s := range sims {
		out[i] = Comparison{
			Preset:  presets[i],
			Params:  s.State().Params,
			Metrics: s.Metrics(),
			Trace:   traces[s],
		}
		if c, ok := s.Surface().(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("close canvas", "preset", presets[i], "err", err)
			}
		}
	}
	return out, nil
}

// DefaultScenario is a short zigzag stroke across a 640x480 canvas, slow at
// the corners and fast along the legs.
func DefaultScenario() *Scenario {
	down, up := true, false
	return &Scenario{
		Name:        "zigzag",
		Description: "four legs drawn with the default nib",
		Width:       640,
		Height:      480,
		Steps: []Step{
			{To: [2]float64{80, 400}, Frames: 60},
			{To: [2]float64{80, 400}, Down: &down, Frames: 1},
			{To: [2]float64{240, 120}, Frames: 40},
			{To: [2]float64{400, 400}, Frames: 40},
			{To: [2]float64{560, 120}, Frames: 40},
			{To: [2]float64{560, 120}, Down: &up, Frames: 20},
		},
	}
}
