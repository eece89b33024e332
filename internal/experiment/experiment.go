package experiment

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/dynadraw/internal/config"
	"github.com/san-kum/dynadraw/internal/control"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/metrics"
	"github.com/san-kum/dynadraw/internal/render"
	"github.com/san-kum/dynadraw/internal/sim"
)

// Experiment wires one drawing session together from a config: the raster,
// the simulator painting on it, the control surface and the palette.
type Experiment struct {
	cfg       *config.Config
	canvas    *render.Canvas
	simulator *sim.Simulator
	controls  *control.Surface
	palette   control.Palette
}

func New(cfg *config.Config, logger *slog.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
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

	canvas := render.NewCanvas(cfg.Width, cfg.Height, bg)
	s := sim.New(canvas,
		sim.WithParams(cfg.Params()),
		sim.WithBackground(bg),
		sim.WithColor(ink),
		sim.WithLogger(logger),
	)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	logger.Debug("experiment ready",
		"width", cfg.Width, "height", cfg.Height,
		"stiffness", cfg.Params().Stiffness, "damping", cfg.Params().Damping)

	return &Experiment{
		cfg:       cfg,
		canvas:    canvas,
		simulator: s,
		controls:  cfg.NewSurface(),
		palette:   palette,
	}, nil
}

func (e *Experiment) Config() *config.Config      { return e.cfg }
func (e *Experiment) Canvas() *render.Canvas      { return e.canvas }
func (e *Experiment) Simulator() *sim.Simulator   { return e.simulator }
func (e *Experiment) Controls() *control.Surface  { return e.controls }
func (e *Experiment) Palette() control.Palette    { return e.palette }
func (e *Experiment) Params() dynamo.Params       { return e.simulator.State().Params }
func (e *Experiment) Metrics() map[string]float64 { return e.simulator.Metrics() }

// Press, Move and Release route pointer input through the control surface.
func (e *Experiment) Press(at dynamo.Vec2) {
	e.simulator.Push(e.controls.Press(at, e.Params())...)
}

func (e *Experiment) Move(at dynamo.Vec2) {
	e.simulator.Push(e.controls.Move(at)...)
}

func (e *Experiment) Release(at dynamo.Vec2) {
	e.simulator.Push(e.controls.Release(at)...)
}

// Key handles a typed character. It reports whether the key meant anything.
func (e *Experiment) Key(r rune) bool {
	ev, ok := e.palette.Key(r)
	if ok {
		e.simulator.Push(ev)
	}
	return ok
}

func (e *Experiment) Resize(w, h int) {
	e.simulator.Push(e.controls.Resize(w, h)...)
}

func (e *Experiment) Frame() (dynamo.Frame, error) {
	return e.simulator.Frame()
}

func (e *Experiment) Close() error {
	if err := e.canvas.Close(); err != nil {
		return fmt.Errorf("close canvas: %w", err)
	}
	return nil
}
