package control

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/sim"
)

const (
	DefaultBackground = "#00193c"
	DefaultColorIndex = 1
)

var DefaultColors = []string{
	"#ffffff", "#ff628c", "#ff9d00", "#fad000",
	"#2ca300", "#2ec4b6", "#5d37f0", "#00193c",
}

// Palette is the fixed set of draw colors. Number keys 1 to 7 pick entries
// 1 to 7; entry 0 is only reachable through configuration.
type Palette struct {
	Colors []color.RGBA
	Hex    []string
}

func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultColors)
	if err != nil {
		panic(err)
	}
	return p
}

func ParsePalette(hex []string) (Palette, error) {
	p := Palette{
		Colors: make([]color.RGBA, 0, len(hex)),
		Hex:    make([]string, 0, len(hex)),
	}
	for _, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return Palette{}, err
		}
		p.Colors = append(p.Colors, c)
		p.Hex = append(p.Hex, h)
	}
	return p, nil
}

// ParseHex accepts "#rgb" and "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func (p Palette) Color(i int) (color.RGBA, error) {
	if i < 0 || i >= len(p.Colors) {
		return color.RGBA{}, fmt.Errorf("%w: palette index %d of %d", dynamo.ErrUnknownColor, i, len(p.Colors))
	}
	return p.Colors[i], nil
}

// Key maps a number key to a color selection.
func (p Palette) Key(r rune) (sim.Event, bool) {
	if r < '1' || r > '7' {
		return nil, false
	}
	c, err := p.Color(int(r - '0'))
	if err != nil {
		return nil, false
	}
	return sim.ColorSelected{Color: c}, true
}
