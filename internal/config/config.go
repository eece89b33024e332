package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/san-kum/dynadraw/internal/control"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Stiffness       float64  `yaml:"stiffness"`
	Damping         float64  `yaml:"damping"`
	Mass            float64  `yaml:"mass"`
	Ductus          float64  `yaml:"ductus"`
	MaxThickness    float64  `yaml:"max_thickness"`
	Background      string   `yaml:"background"`
	Palette         []string `yaml:"palette"`
	Color           int      `yaml:"color"`
	Width           int      `yaml:"width"`
	Height          int      `yaml:"height"`
	FPS             int      `yaml:"fps"`
	SliderHeight    float64  `yaml:"slider_height"`
	SliderTolerance float64  `yaml:"slider_tolerance"`
}

func DefaultConfig() *Config {
	palette := make([]string, len(control.DefaultColors))
	copy(palette, control.DefaultColors)
	return &Config{
		Stiffness:       dynamo.DefaultStiffness,
		Damping:         dynamo.DefaultDamping,
		Mass:            dynamo.DefaultMass,
		Ductus:          dynamo.DefaultDuctus,
		MaxThickness:    dynamo.DefaultMaxThickness,
		Background:      control.DefaultBackground,
		Palette:         palette,
		Color:           control.DefaultColorIndex,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		FPS:             DefaultFPS,
		SliderHeight:    control.DefaultSliderHeight,
		SliderTolerance: control.DefaultTolerance,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulator cannot run with. Stiffness and
// damping are clamped later instead.
func (c *Config) Validate() error {
	switch {
	case c.Mass <= 0:
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidConfig, c.Mass)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SliderHeight <= 0 || c.SliderTolerance <= 0:
		return fmt.Errorf("%w: slider geometry must be positive", ErrInvalidConfig)
	case c.MaxThickness < dynamo.MinThickness:
		return fmt.Errorf("%w: max_thickness below %v", dynamo.ErrParameterBounds, dynamo.MinThickness)
	case c.Ductus < 0:
		return fmt.Errorf("%w: ductus must not be negative", dynamo.ErrParameterBounds)
	}
	if _, err := control.ParseHex(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	p, err := control.ParsePalette(c.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if _, err := p.Color(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		Stiffness:    c.Stiffness,
		Damping:      c.Damping,
		Mass:         c.Mass,
		Ductus:       c.Ductus,
		MaxThickness: c.MaxThickness,
	}.Clamped()
}

func (c *Config) PaletteColors() (control.Palette, error) {
	return control.ParsePalette(c.Palette)
}

func (c *Config) BackgroundColor() (color.RGBA, error) {
	return control.ParseHex(c.Background)
}

// DrawColor is the initial pen color picked by the color index.
func (c *Config) DrawColor() (color.RGBA, error) {
	p, err := c.PaletteColors()
	if err != nil {
		return color.RGBA{}, err
	}
	return p.Color(c.Color)
}

func (c *Config) NewSurface() *control.Surface {
	s := control.NewSurface(float64(c.Width))
	s.SliderHeight = c.SliderHeight
	s.Tolerance = c.SliderTolerance
	return s
}
