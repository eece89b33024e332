package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

// Preset is a named nib: the pen parameters a user would otherwise dial in
// on the sliders.
type Preset struct {
	Description  string
	Stiffness    float64
	Damping      float64
	Ductus       float64
	MaxThickness float64
}

var Presets = map[string]Preset{
	"classic": {
		Description: "the original feel",
		Stiffness:   dynamo.DefaultStiffness, Damping: dynamo.DefaultDamping,
		Ductus: dynamo.DefaultDuctus, MaxThickness: dynamo.DefaultMaxThickness,
	},
	"ink": {
		Description: "heavy, slow brush",
		Stiffness:   0.04, Damping: 0.93,
		Ductus: 0.8, MaxThickness: 28,
	},
	"wobbly": {
		Description: "springy, overshoots corners",
		Stiffness:   0.15, Damping: 0.97,
		Ductus: 0.3, MaxThickness: 14,
	},
	"stiff": {
		Description: "tracks the pointer closely",
		Stiffness:   0.2, Damping: 0.5,
		Ductus: 0.6, MaxThickness: 12,
	},
}

func GetPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	return p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overwrites the pen parameters in c with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, err := GetPreset(name)
	if err != nil {
		return err
	}
	c.Stiffness = p.Stiffness
	c.Damping = p.Damping
	c.Ductus = p.Ductus
	c.MaxThickness = p.MaxThickness
	return nil
}
