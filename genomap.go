// Package genomap draws circular maps of bacterial chromosomes:
// coding regions by strand, rRNA, tRNA, GC content and GC skew.
package genomap

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/mingzhi/genomap/cache"
	"github.com/mingzhi/genomap/circos"
	"github.com/mingzhi/genomap/gc"
	"github.com/mingzhi/genomap/genome"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var (
	Info = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Options of a single rendering.
type Options struct {
	// Source is the file the genome was read from.
	// It keys cached GC series.
	Source string
	Cache  *cache.Cache
}

// Draw composes the map of g.
func Draw(g *genome.Genome, layout Layout, opts Options) (*plot.Plot, error) {
	if g == nil || g.Length <= 0 {
		return nil, fmt.Errorf("genomap: empty genome")
	}
	colors, err := layout.colors()
	if err != nil {
		return nil, err
	}

	c := circos.New(circos.SectorSpec{Name: g.Name, Size: float64(g.Length)})
	title := layout.Title
	if title == "" {
		title = Title(g)
	}
	c.Text(title, layout.TitleRadius, layout.TitleSize)

	sector := c.Sector(g.Name)
	if sector == nil {
		return nil, c.Err()
	}

	// outer track with ticks.
	tl := layout.Ticks
	outer := sector.AddTrack(tl.RMin, tl.RMax, 0)
	outer.Axis(circos.FillStyle{Color: colors["axis"], EdgeColor: color.Black})
	outer.XTicksByInterval(tl.MajorInterval, circos.TickOptions{
		LabelSize: tl.LabelSize,
		Formatter: FormatMb,
	})
	outer.XTicksByInterval(tl.MinorInterval, circos.TickOptions{
		Length:    tl.MinorLength,
		HideLabel: true,
	})

	featureTrack(sector, layout.ForwardCDS, colors["forward_cds"], g.ExtractFeatures("CDS", genome.Forward))
	featureTrack(sector, layout.ReverseCDS, colors["reverse_cds"], g.ExtractFeatures("CDS", genome.Reverse))
	featureTrack(sector, layout.RRNA, colors["rrna"], g.ExtractFeatures("rRNA", genome.Unstranded))
	featureTrack(sector, layout.TRNA, colors["trna"], g.ExtractFeatures("tRNA", genome.Unstranded))

	if len(g.Seq) == 0 {
		Warn.Printf("%s has no sequence, skipping GC tracks\n", g.Name)
	} else {
		s := seriesSource{g: g, opts: opts, window: layout.Window, step: layout.Step}

		content, err := s.get("content", func() gc.Series {
			return gc.Content(g.Seq, layout.Window, layout.Step)
		})
		if err != nil {
			return nil, err
		}
		mean := gc.GenomeContent(g.Seq)
		Info.Printf("Genome GC content: %.2f%%\n", mean)
		err = signedTrack(sector, layout.GCContent, colors["gc_content_pos"], colors["gc_content_neg"], gc.Center(content, mean))
		if err != nil {
			return nil, err
		}

		skew, err := s.get("skew", func() gc.Series {
			return gc.Skew(g.Seq, layout.Window, layout.Step)
		})
		if err != nil {
			return nil, err
		}
		err = signedTrack(sector, layout.GCSkew, colors["gc_skew_pos"], colors["gc_skew_neg"], skew)
		if err != nil {
			return nil, err
		}
	}

	return c.Figure(&circos.Legend{
		Patches:  Legend(colors),
		X:        layout.LegendX,
		Y:        layout.LegendY,
		FontSize: layout.LegendSize,
	})
}

func featureTrack(sector *circos.Sector, tl TrackLayout, clr color.Color, features []genome.Feature) {
	t := sector.AddTrack(tl.RMin, tl.RMax, tl.PadRatio)
	style := circos.FillStyle{Color: clr}
	if tl.EdgeWidth > 0 {
		style.EdgeColor = clr
		style.EdgeWidth = vg.Points(tl.EdgeWidth)
	}
	t.GenomicFeatures(Intervals(features), style)
}

// signedTrack fills positive and negative values with their own
// color on a scale symmetric around zero.
func signedTrack(sector *circos.Sector, tl SignedTrackLayout, posColor, negColor color.Color, s gc.Series) error {
	vmin, vmax, err := gc.Bounds(s.Values)
	if err != nil {
		return err
	}
	pos, neg := gc.Split(s.Values)
	x := s.X()

	t := sector.AddTrack(tl.RMin, tl.RMax, 0)
	t.FillBetween(x, pos, nil, vmin, vmax, posColor)
	t.FillBetween(x, neg, nil, vmin, vmax, negColor)
	return nil
}

// seriesSource computes GC series, going through the cache when there is one.
type seriesSource struct {
	g            *genome.Genome
	opts         Options
	window, step int
}

func (s seriesSource) get(kind string, fn func() gc.Series) (gc.Series, error) {
	if s.opts.Cache == nil || s.opts.Source == "" {
		return fn(), nil
	}
	key, err := cache.NewKey(s.opts.Source, s.g.Name+"/"+kind, s.window, s.step)
	if err != nil {
		return gc.Series{}, err
	}
	return s.opts.Cache.Series(key, fn)
}

// Intervals converts features into their extents.
func Intervals(features []genome.Feature) []circos.Interval {
	intervals := make([]circos.Interval, len(features))
	for i, f := range features {
		intervals[i] = circos.Interval{Start: float64(f.Start), End: float64(f.End)}
	}
	return intervals
}

// Legend maps track colors to labels.
func Legend(colors map[string]color.Color) []circos.Patch {
	return []circos.Patch{
		{Label: "Forward CDS", Color: colors["forward_cds"]},
		{Label: "Reverse CDS", Color: colors["reverse_cds"]},
		{Label: "rRNA", Color: colors["rrna"]},
		{Label: "tRNA", Color: colors["trna"]},
		{Label: "Positive GC Content", Color: colors["gc_content_pos"]},
		{Label: "Negative GC Content", Color: colors["gc_content_neg"]},
		{Label: "Positive GC Skew", Color: colors["gc_skew_pos"]},
		{Label: "Negative GC Skew", Color: colors["gc_skew_neg"]},
	}
}

// FormatMb labels a position in megabases.
func FormatMb(x float64) string {
	return fmt.Sprintf("%.1f Mb", x/1e6)
}

// Title names the organism and the RefSeq accession, e.g.
// "Escherichia coli\n(NC_000913)".
func Title(g *genome.Genome) string {
	name := ""
	for _, f := range g.ExtractFeatures("source", genome.Unstranded) {
		if org := f.Qualifier("organism"); org != "" {
			name = org
			break
		}
	}
	if name != "" {
		if words := strings.Fields(name); len(words) > 2 {
			name = strings.Join(words[:2], " ")
		}
	} else if g.Definition != "" {
		name = strings.TrimSuffix(g.Definition, ".")
	} else {
		name = g.Name
	}

	if acc := g.RefAcc(); acc != "" {
		return name + "\n(" + acc + ")"
	}
	return name
}
