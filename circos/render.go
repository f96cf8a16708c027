package circos

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// maxArcStep is the largest angle, in degrees, drawn as one segment.
const maxArcStep = 0.5

type layer interface {
	draw(c canvas)
}

// canvas maps polar layout coordinates onto a draw.Canvas.
type canvas struct {
	draw.Canvas
	center vg.Point
	unit   vg.Length // length of one radius unit.
}

func newCanvas(c draw.Canvas, margin float64) canvas {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	side := w
	if h < side {
		side = h
	}
	return canvas{
		Canvas: c,
		center: vg.Point{X: c.Min.X + w/2, Y: c.Min.Y + h/2},
		unit:   side / 2 / vg.Length(MaxRadius+margin),
	}
}

func (c canvas) point(deg, r float64) vg.Point {
	rad := deg * math.Pi / 180
	d := c.unit * vg.Length(r)
	return vg.Point{
		X: c.center.X + d*vg.Length(math.Sin(rad)),
		Y: c.center.Y + d*vg.Length(math.Cos(rad)),
	}
}

// arc returns points along radius r from deg0 to deg1, both included.
func (c canvas) arc(deg0, deg1, r float64) []vg.Point {
	n := int(math.Ceil(math.Abs(deg1-deg0) / maxArcStep))
	if n < 1 {
		n = 1
	}
	pts := make([]vg.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.point(deg0+(deg1-deg0)*float64(i)/float64(n), r))
	}
	return pts
}

// band returns the outline of the region between two radii.
func (c canvas) band(deg0, deg1, rmin, rmax float64) []vg.Point {
	pts := c.arc(deg0, deg1, rmax)
	inner := c.arc(deg0, deg1, rmin)
	for i := len(inner) - 1; i >= 0; i-- {
		pts = append(pts, inner[i])
	}
	return pts
}

func fillBand(c canvas, deg0, deg1, rmin, rmax float64, style FillStyle) {
	pts := c.band(deg0, deg1, rmin, rmax)
	if style.Color != nil {
		c.FillPolygon(style.Color, pts)
	}
	if sty, ok := style.edge(); ok {
		if deg1-deg0 >= 360 {
			c.StrokeLines(sty, c.arc(deg0, deg1, rmax), c.arc(deg0, deg1, rmin))
		} else {
			c.StrokeLines(sty, append(pts, pts[0]))
		}
	}
}

type ringLayer struct {
	deg0, deg1 float64
	rmin, rmax float64
	style      FillStyle
}

func (l *ringLayer) draw(c canvas) {
	fillBand(c, l.deg0, l.deg1, l.rmin, l.rmax, l.style)
}

type boxesLayer struct {
	spans      [][2]float64
	rmin, rmax float64
	style      FillStyle
}

func (l *boxesLayer) draw(c canvas) {
	for _, s := range l.spans {
		fillBand(c, s[0], s[1], l.rmin, l.rmax, l.style)
	}
}

type areaLayer struct {
	degs         []float64
	outer, inner []float64
	color        color.Color
}

func (l *areaLayer) draw(c canvas) {
	pts := make([]vg.Point, 0, 2*len(l.degs))
	for i, deg := range l.degs {
		pts = append(pts, c.point(deg, l.outer[i]))
	}
	for i := len(l.degs) - 1; i >= 0; i-- {
		pts = append(pts, c.point(l.degs[i], l.inner[i]))
	}
	c.FillPolygon(l.color, pts)
}

type ticksLayer struct {
	xs, degs []float64
	r0, r1   float64
	opts     TickOptions
}

func (l *ticksLayer) draw(c canvas) {
	for i, deg := range l.degs {
		c.StrokeLines(l.opts.Line, []vg.Point{c.point(deg, l.r0), c.point(deg, l.r1)})
		if l.opts.HideLabel {
			continue
		}

		label := fmt.Sprint(l.xs[i])
		if l.opts.Formatter != nil {
			label = l.opts.Formatter(l.xs[i])
		}
		rad := deg * math.Pi / 180
		// anchor the label on the side facing the ring.
		sty := textStyle(l.opts.LabelSize)
		sty.XAlign = text.XAlignment(-0.5 + 0.5*math.Sin(rad))
		sty.YAlign = text.YAlignment(-0.5 + 0.5*math.Cos(rad))
		r := l.r1 + 1
		if l.opts.Inner {
			r = l.r1 - 1
			sty.XAlign = -1 - sty.XAlign
			sty.YAlign = -1 - sty.YAlign
		}
		c.FillText(sty, c.point(deg, r), label)
	}
}

type textLayer struct {
	text   string
	r, deg float64
	size   float64
}

func (l textLayer) draw(c canvas) {
	c.FillText(textStyle(l.size), c.point(l.deg, l.r), l.text)
}

func textStyle(size float64) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(size)),
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

// Plot draws all sectors, tracks and texts.
// It implements plot.Plotter.
func (c *Circos) Plot(dc draw.Canvas, _ *plot.Plot) {
	cv := newCanvas(dc, c.Margin)
	for _, s := range c.sectors {
		for _, t := range s.tracks {
			for _, l := range t.layers {
				l.draw(cv)
			}
		}
	}
	for _, t := range c.texts {
		t.draw(cv)
	}
}

// Figure returns a plot holding the layout and the legend, if any.
func (c *Circos) Figure(legend *Legend) (*plot.Plot, error) {
	if c.err != nil {
		return nil, c.err
	}
	p := plot.New()
	p.HideAxes()
	p.Add(c)
	if legend != nil && len(legend.Patches) > 0 {
		p.Add(legend)
	}
	return p, nil
}

// Save writes the figure to fileName. The format follows the
// extension: png, svg, pdf, eps, jpg or tif.
func Save(p *plot.Plot, width, height vg.Length, fileName string) error {
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(width, height, fileName)
}
