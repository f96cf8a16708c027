package circos

import (
	"fmt"
	"image/color"
	"math"
)

type Track struct {
	RMin, RMax float64
	PadRatio   float64

	sector *Sector
	layers []layer
}

// PlotLim returns the radial range left after padding.
func (t *Track) PlotLim() (float64, float64) {
	pad := (t.RMax - t.RMin) * t.PadRatio / 2
	return t.RMin + pad, t.RMax - pad
}

func (t *Track) Sector() *Sector {
	return t.sector
}

// radius maps v in [vmin, vmax] onto the padded radial range.
func (t *Track) radius(v, vmin, vmax float64) float64 {
	rmin, rmax := t.PlotLim()
	if vmax <= vmin {
		return rmin
	}
	v = math.Max(vmin, math.Min(vmax, v))
	return rmin + (v-vmin)/(vmax-vmin)*(rmax-rmin)
}

// Axis fills the whole ring.
func (t *Track) Axis(style FillStyle) {
	t.layers = append(t.layers, &ringLayer{
		deg0: t.sector.deg0, deg1: t.sector.deg1,
		rmin: t.RMin, rmax: t.RMax,
		style: style,
	})
}

// XTicksByInterval adds ticks every interval from the sector start.
func (t *Track) XTicksByInterval(interval float64, opts TickOptions) {
	if interval <= 0 {
		t.sector.circos.setErr(fmt.Errorf("circos: tick interval %g", interval))
		return
	}
	opts = opts.withDefaults()
	l := &ticksLayer{opts: opts}
	for x := 0.0; x < t.sector.Size; x += interval {
		l.xs = append(l.xs, x)
		l.degs = append(l.degs, t.sector.Deg(x))
	}
	if opts.Inner {
		l.r0, l.r1 = t.RMin, t.RMin-opts.Length
	} else {
		l.r0, l.r1 = t.RMax, t.RMax+opts.Length
	}
	t.layers = append(t.layers, l)
}

// GenomicFeatures draws each interval as a box over the padded range.
func (t *Track) GenomicFeatures(features []Interval, style FillStyle) {
	rmin, rmax := t.PlotLim()
	l := &boxesLayer{rmin: rmin, rmax: rmax, style: style}
	for _, f := range features {
		start, end := math.Max(0, f.Start), math.Min(t.sector.Size, f.End)
		if end <= start {
			continue
		}
		l.spans = append(l.spans, [2]float64{t.sector.Deg(start), t.sector.Deg(end)})
	}
	t.layers = append(t.layers, l)
}

// FillBetween fills the area between y1 and y2 over x.
// A nil y2 is the zero line. Values are scaled from [vmin, vmax]
// onto the padded range and clamped to it.
func (t *Track) FillBetween(x, y1, y2 []float64, vmin, vmax float64, clr color.Color) {
	if len(y1) != len(x) || (y2 != nil && len(y2) != len(x)) {
		t.sector.circos.setErr(fmt.Errorf("%w: x=%d y1=%d y2=%d", ErrLength, len(x), len(y1), len(y2)))
		return
	}
	if vmax <= vmin {
		t.sector.circos.setErr(fmt.Errorf("%w: vmin %g >= vmax %g", ErrRadius, vmin, vmax))
		return
	}
	if len(x) == 0 {
		return
	}

	l := &areaLayer{color: clr}
	for i := range x {
		base := 0.0
		if y2 != nil {
			base = y2[i]
		}
		deg := t.sector.Deg(x[i])
		l.degs = append(l.degs, deg)
		l.outer = append(l.outer, t.radius(y1[i], vmin, vmax))
		l.inner = append(l.inner, t.radius(base, vmin, vmax))
	}
	t.layers = append(t.layers, l)
}
