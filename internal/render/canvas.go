package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/san-kum/dynadraw/internal/dynamo"
)

// Canvas is a Surface backed by a software gg context.
type Canvas struct {
	dc *gg.Context
	bg color.RGBA
}

func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	c := &Canvas{dc: gg.NewContext(w, h), bg: bg}
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.Clear(bg)
	return c
}

func (c *Canvas) Line(from, to dynamo.Vec2, width float64, col color.RGBA) error {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := c.dc.Stroke(); err != nil {
		return fmt.Errorf("stroke line: %w", err)
	}
	return nil
}

func (c *Canvas) Disc(center dynamo.Vec2, diameter float64, col color.RGBA) error {
	c.dc.SetColor(col)
	c.dc.DrawCircle(center.X, center.Y, diameter/2)
	if err := c.dc.Fill(); err != nil {
		return fmt.Errorf("fill disc: %w", err)
	}
	return nil
}

func (c *Canvas) Clear(bg color.RGBA) {
	c.bg = bg
	c.dc.ClearWithColor(gg.FromColor(bg))
}

// Resize reallocates the raster. Previous ink is lost unless the size is
// unchanged.
func (c *Canvas) Resize(w, h int) error {
	if w == c.dc.Width() && h == c.dc.Height() {
		return nil
	}
	if err := c.dc.Resize(w, h); err != nil {
		return err
	}
	c.dc.ClearWithColor(gg.FromColor(c.bg))
	return nil
}

func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *Canvas) Background() color.RGBA { return c.bg }

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) Close() error { return c.dc.Close() }
