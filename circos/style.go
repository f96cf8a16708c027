package circos

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FillStyle fills a region and optionally outlines it.
type FillStyle struct {
	Color     color.Color
	EdgeColor color.Color // nil for no outline.
	EdgeWidth vg.Length
}

func (s FillStyle) edge() (draw.LineStyle, bool) {
	if s.EdgeColor == nil {
		return draw.LineStyle{}, false
	}
	w := s.EdgeWidth
	if w == 0 {
		w = vg.Points(0.5)
	}
	return draw.LineStyle{Color: s.EdgeColor, Width: w}, true
}

// TickOptions controls XTicksByInterval.
type TickOptions struct {
	Length    float64 // tick length in radius units, 2 when zero.
	Inner     bool    // draw ticks inward from RMin.
	HideLabel bool
	LabelSize float64 // points, 8 when zero.
	Formatter func(x float64) string
	Line      draw.LineStyle
}

func (o TickOptions) withDefaults() TickOptions {
	if o.Length == 0 {
		o.Length = 2
	}
	if o.LabelSize == 0 {
		o.LabelSize = 8
	}
	if o.Line.Color == nil {
		o.Line.Color = color.Black
	}
	if o.Line.Width == 0 {
		o.Line.Width = vg.Points(0.5)
	}
	return o
}

// Interval is a region of a sector in data coordinates.
type Interval struct {
	Start, End float64
}
