package genomap

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// TrackLayout places a feature track.
type TrackLayout struct {
	RMin      float64 `mapstructure:"rmin"`
	RMax      float64 `mapstructure:"rmax"`
	PadRatio  float64 `mapstructure:"pad_ratio"`
	Color     string  `mapstructure:"color"`
	EdgeWidth float64 `mapstructure:"edge_width"` // outline in the fill color when > 0.
}

// SignedTrackLayout places a track filled with separate
// colors above and below zero.
type SignedTrackLayout struct {
	RMin     float64 `mapstructure:"rmin"`
	RMax     float64 `mapstructure:"rmax"`
	Positive string  `mapstructure:"positive"`
	Negative string  `mapstructure:"negative"`
}

// TickLayout places the outer axis track.
type TickLayout struct {
	RMin          float64 `mapstructure:"rmin"`
	RMax          float64 `mapstructure:"rmax"`
	AxisColor     string  `mapstructure:"axis_color"`
	MajorInterval float64 `mapstructure:"major_interval"`
	MinorInterval float64 `mapstructure:"minor_interval"`
	MinorLength   float64 `mapstructure:"minor_length"`
	LabelSize     float64 `mapstructure:"label_size"`
}

// Layout holds every constant of the map.
type Layout struct {
	Title       string  `mapstructure:"title"` // derived from the record when empty.
	TitleRadius float64 `mapstructure:"title_radius"`
	TitleSize   float64 `mapstructure:"title_size"`

	Ticks      TickLayout        `mapstructure:"ticks"`
	ForwardCDS TrackLayout       `mapstructure:"forward_cds"`
	ReverseCDS TrackLayout       `mapstructure:"reverse_cds"`
	RRNA       TrackLayout       `mapstructure:"rrna"`
	TRNA       TrackLayout       `mapstructure:"trna"`
	GCContent  SignedTrackLayout `mapstructure:"gc_content"`
	GCSkew     SignedTrackLayout `mapstructure:"gc_skew"`

	Window int `mapstructure:"window"` // GC window, len/500 when zero.
	Step   int `mapstructure:"step"`   // GC step, len/1000 when zero.

	LegendX    float64 `mapstructure:"legend_x"`
	LegendY    float64 `mapstructure:"legend_y"`
	LegendSize float64 `mapstructure:"legend_size"`
}

// DefaultLayout returns the standard bacterial chromosome map.
func DefaultLayout() Layout {
	return Layout{
		TitleRadius: 20,
		TitleSize:   12,
		Ticks: TickLayout{
			RMin:          98,
			RMax:          100,
			AxisColor:     "lightgrey",
			MajorInterval: 500000,
			MinorInterval: 100000,
			MinorLength:   1,
			LabelSize:     8,
		},
		ForwardCDS: TrackLayout{RMin: 90, RMax: 97, PadRatio: 0.1, Color: "red"},
		ReverseCDS: TrackLayout{RMin: 83, RMax: 90, PadRatio: 0.1, Color: "blue"},
		RRNA:       TrackLayout{RMin: 76, RMax: 83, PadRatio: 0.1, Color: "green"},
		TRNA:       TrackLayout{RMin: 69, RMax: 76, PadRatio: 0.1, Color: "magenta", EdgeWidth: 0.1},
		GCContent:  SignedTrackLayout{RMin: 50, RMax: 65, Positive: "black", Negative: "grey"},
		GCSkew:     SignedTrackLayout{RMin: 35, RMax: 50, Positive: "olive", Negative: "purple"},
		LegendX:    0.5,
		LegendY:    0.475,
		LegendSize: 8,
	}
}

// ParseColor accepts SVG color names and #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			if len(name) == 7 {
				return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
			return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
		}
	}
	return nil, fmt.Errorf("genomap: unknown color %q", s)
}

// colors resolves every color of the layout by field name.
func (l Layout) colors() (map[string]color.Color, error) {
	names := map[string]string{
		"axis":           l.Ticks.AxisColor,
		"forward_cds":    l.ForwardCDS.Color,
		"reverse_cds":    l.ReverseCDS.Color,
		"rrna":           l.RRNA.Color,
		"trna":           l.TRNA.Color,
		"gc_content_pos": l.GCContent.Positive,
		"gc_content_neg": l.GCContent.Negative,
		"gc_skew_pos":    l.GCSkew.Positive,
		"gc_skew_neg":    l.GCSkew.Negative,
	}
	m := make(map[string]color.Color, len(names))
	for key, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m[key] = c
	}
	return m, nil
}
