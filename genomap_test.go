package genomap

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mingzhi/genomap/cache"
	"github.com/mingzhi/genomap/circos"
	"github.com/mingzhi/genomap/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func testGenome(n int) *genome.Genome {
	seq := make([]byte, n)
	for i := range seq {
		// GC rich first half, AT rich second half.
		if i < n/2 {
			seq[i] = "GGCA"[i%4]
		} else {
			seq[i] = "ATTC"[i%4]
		}
	}
	return &genome.Genome{
		Name:       "NC_000913",
		Accession:  "NC_000913",
		Definition: "Escherichia coli str. K-12 substr. MG1655, complete genome.",
		Length:     n,
		Seq:        seq,
		Features: []genome.Feature{
			{Type: "source", Start: 0, End: n, Strand: genome.Forward,
				Qualifiers: map[string][]string{"organism": {"Escherichia coli str. K-12 substr. MG1655"}}},
			{Type: "CDS", Start: 100, End: 900, Strand: genome.Forward},
			{Type: "CDS", Start: 1200, End: 1500, Strand: genome.Reverse},
			{Type: "rRNA", Start: 2000, End: 2300, Strand: genome.Forward},
			{Type: "tRNA", Start: 2500, End: 2560, Strand: genome.Reverse},
		},
	}
}

func TestDefaultLayoutColors(t *testing.T) {
	colors, err := DefaultLayout().colors()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, colors["forward_cds"])
	assert.Equal(t, color.RGBA{B: 255, A: 255}, colors["reverse_cds"])
	assert.Equal(t, color.RGBA{G: 128, A: 255}, colors["rrna"])
	assert.Equal(t, color.RGBA{R: 255, B: 255, A: 255}, colors["trna"])
	assert.Equal(t, color.RGBA{R: 128, G: 128, A: 255}, colors["gc_skew_pos"])
	assert.Equal(t, color.RGBA{R: 128, B: 128, A: 255}, colors["gc_skew_neg"])
}

func TestLegend(t *testing.T) {
	colors, err := DefaultLayout().colors()
	require.NoError(t, err)
	patches := Legend(colors)
	require.Len(t, patches, 8)
	labels := []string{}
	for _, p := range patches {
		labels = append(labels, p.Label)
		assert.NotNil(t, p.Color)
	}
	assert.Equal(t, []string{
		"Forward CDS", "Reverse CDS", "rRNA", "tRNA",
		"Positive GC Content", "Negative GC Content",
		"Positive GC Skew", "Negative GC Skew",
	}, labels)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("LightGrey")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 211, G: 211, B: 211, A: 255}, c)

	c, err = ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseColor("#10203080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, c)

	for _, bad := range []string{"", "reddish", "#12345", "#zzzzzz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMb(t *testing.T) {
	assert.Equal(t, "0.0 Mb", FormatMb(0))
	assert.Equal(t, "0.5 Mb", FormatMb(500000))
	assert.Equal(t, "4.5 Mb", FormatMb(4500000))
}

func TestTitle(t *testing.T) {
	g := testGenome(100)
	assert.Equal(t, "Escherichia coli\n(NC_000913)", Title(g))

	g.Features = nil
	assert.Equal(t, "Escherichia coli str. K-12 substr. MG1655, complete genome\n(NC_000913)", Title(g))

	g = &genome.Genome{Name: "contig1"}
	assert.Equal(t, "contig1", Title(g))
}

func TestIntervals(t *testing.T) {
	g := testGenome(3000)
	got := Intervals(g.ExtractFeatures("CDS", genome.Forward))
	assert.Equal(t, []circos.Interval{{Start: 100, End: 900}}, got)
}

func TestDraw(t *testing.T) {
	g := testGenome(3000)
	layout := DefaultLayout()
	layout.Ticks.MajorInterval = 1000
	layout.Ticks.MinorInterval = 200

	p, err := Draw(g, layout, Options{})
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, circos.Save(p, 6*vg.Inch, 6*vg.Inch, fileName))
	fi, err := os.Stat(fileName)
	require.NoError(t, err)
	assert.True(t, fi.Size() > 0)
}

func TestDrawWithoutSequence(t *testing.T) {
	g := testGenome(3000)
	g.Seq = nil
	_, err := Draw(g, DefaultLayout(), Options{})
	assert.NoError(t, err)
}

func TestDrawErrors(t *testing.T) {
	_, err := Draw(&genome.Genome{Name: "empty"}, DefaultLayout(), Options{})
	assert.Error(t, err)

	layout := DefaultLayout()
	layout.RRNA.Color = "not-a-color"
	_, err = Draw(testGenome(3000), layout, Options{})
	assert.Error(t, err)

	layout = DefaultLayout()
	layout.GCSkew.RMin = 70
	layout.GCSkew.RMax = 60
	_, err = Draw(testGenome(3000), layout, Options{})
	assert.ErrorIs(t, err, circos.ErrRadius)
}

func TestDrawCached(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "genome.gbk")
	require.NoError(t, os.WriteFile(source, []byte("LOCUS"), 0644))

	c, err := cache.Open(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	g := testGenome(3000)
	opts := Options{Source: source, Cache: c}
	_, err = Draw(g, DefaultLayout(), opts)
	require.NoError(t, err)

	k, err := cache.NewKey(source, g.Name+"/skew", 0, 0)
	require.NoError(t, err)
	_, found, err := c.Get(k)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = Draw(g, DefaultLayout(), opts)
	assert.NoError(t, err)
}
