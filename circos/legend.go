package circos

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Patch is a legend entry drawn as a filled square.
type Patch struct {
	Label string
	Color color.Color
}

// Thumbnail implements plot.Thumbnailer.
func (p Patch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(p.Color, pts)
}

// Legend is centered at (X, Y), given as fractions of the canvas.
type Legend struct {
	Patches  []Patch
	X, Y     float64
	FontSize float64 // points, 8 when zero.
}

// Plot implements plot.Plotter.
func (l *Legend) Plot(c draw.Canvas, _ *plot.Plot) {
	size := l.FontSize
	if size == 0 {
		size = 8
	}

	leg := plot.NewLegend()
	leg.TextStyle.Font = font.From(plot.DefaultFont, vg.Points(size))
	leg.Top, leg.Left = true, true
	for _, p := range l.Patches {
		leg.Add(p.Label, p)
	}

	box := leg.Rectangle(c).Size()
	cx := c.Min.X + (c.Max.X-c.Min.X)*vg.Length(l.X)
	cy := c.Min.Y + (c.Max.Y-c.Min.Y)*vg.Length(l.Y)
	sub := draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: cx - box.X/2, Y: cy - box.Y/2},
			Max: vg.Point{X: cx + box.X/2, Y: cy + box.Y/2},
		},
	}
	leg.Draw(sub)
}
