package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille raster: every cell holds 2x4 dots and the color of the
// last dot set in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
}

// Set sets a pixel at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// Sample redraws the canvas from img. Each dot looks at the pixel under its
// center and is lit when that pixel differs from bg.
func (c *Canvas) Sample(img image.Image, bg color.RGBA) {
	c.Clear()
	if img == nil {
		return
	}
	b := img.Bounds()
	dotsX, dotsY := c.Width*2, c.Height*4
	if dotsX == 0 || dotsY == 0 || b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	for y := 0; y < dotsY; y++ {
		py := b.Min.Y + (2*y+1)*b.Dy()/(2*dotsY)
		for x := 0; x < dotsX; x++ {
			px := b.Min.X + (2*x+1)*b.Dx()/(2*dotsX)
			col := color.RGBAModel.Convert(img.At(px, py)).(color.RGBA)
			if !sameRGB(col, bg) {
				c.Set(x, y, col)
			}
		}
	}
}

func sameRGB(a, b color.RGBA) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

// Row renders one row of cells, each lit cell in its own color.
func (c *Canvas) Row(i int) string {
	if i < 0 || i >= c.Height {
		return ""
	}
	var b strings.Builder
	for j, r := range c.Grid[i] {
		if r == blank {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(hexOf(c.Colors[i][j])).Render(string(r)))
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
