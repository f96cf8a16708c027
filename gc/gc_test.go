package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFraction(t *testing.T) {
	cases := []struct {
		seq  string
		want float64
	}{
		{"", 0},
		{"NNNN", 0},
		{"ACGT", 0.5},
		{"ACGTN", 0.5},
		{"acgs", 0.75},
		{"GGCC", 1},
		{"ATWW", 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Fraction([]byte(c.seq)), 1e-12, c.seq)
	}
	assert.InDelta(t, 50.0, GenomeContent([]byte("ATGC")), 1e-12)
}

func TestWindows(t *testing.T) {
	cases := []struct {
		n, window, step int
		wantW, wantS    int
	}{
		{4641652, 0, 0, 9283, 4641},
		{2000, 0, 0, 4, 2},
		{2000, 100, 0, 100, 2},
		{100, 0, 0, 100, 50},
		{1, 0, 0, 1, 1},
		{2000, 10, 5, 10, 5},
	}
	for _, c := range cases {
		w, s := Windows(c.n, c.window, c.step)
		assert.Equal(t, c.wantW, w, "window for n=%d", c.n)
		assert.Equal(t, c.wantS, s, "step for n=%d", c.n)
	}
}

func TestSkew(t *testing.T) {
	s := Skew([]byte("GGGGCCCC"), 4, 4)
	assert.Equal(t, []int{0, 4, 8}, s.Pos)
	assert.Equal(t, []float64{1, 0, -1}, s.Values)

	s = Skew([]byte("AAAA"), 2, 2)
	assert.Equal(t, []float64{0, 0, 0}, s.Values)
}

func TestContent(t *testing.T) {
	s := Content([]byte("AAAAGGGG"), 4, 4)
	assert.Equal(t, []int{0, 4, 8}, s.Pos)
	assert.InDeltaSlice(t, []float64{0, 50, 100}, s.Values, 1e-12)
	assert.Equal(t, []float64{0, 4, 8}, s.X())

	assert.Equal(t, 0, Content(nil, 0, 0).Len())
}

func TestContentDefaults(t *testing.T) {
	seq := make([]byte, 2000)
	for i := range seq {
		seq[i] = "ACGT"[i%4]
	}
	s := Content(seq, 0, 0)
	require.Equal(t, 1001, s.Len())
	assert.Equal(t, 0, s.Pos[0])
	assert.Equal(t, 2000, s.Pos[s.Len()-1])
	for _, v := range s.Values {
		assert.InDelta(t, 50.0, v, 1e-12)
	}
}

func TestCenter(t *testing.T) {
	s := Series{Pos: []int{0, 1, 2}, Values: []float64{40, 50, 60}}
	c := Center(s, 50)
	assert.Equal(t, []float64{-10, 0, 10}, c.Values)
	assert.Equal(t, s.Pos, c.Pos)
	assert.Equal(t, []float64{40, 50, 60}, s.Values, "input is left untouched")
}

func TestSplitPartitions(t *testing.T) {
	values := []float64{-2.5, 0, 3, -0.1, 0.1, 7, 0, -7}
	pos, neg := Split(values)
	require.Len(t, pos, len(values))
	require.Len(t, neg, len(values))
	for i, v := range values {
		assert.Equal(t, v, pos[i]+neg[i], "index %d", i)
		assert.True(t, pos[i] >= 0, "index %d", i)
		assert.True(t, neg[i] <= 0, "index %d", i)
		assert.False(t, pos[i] != 0 && neg[i] != 0, "index %d on both sides", i)
	}
	assert.Equal(t, []float64{0, 0, 3, 0, 0.1, 7, 0, 0}, pos)
	assert.Equal(t, []float64{-2.5, 0, 0, -0.1, 0, 0, 0, -7}, neg)
}

func TestAbsMax(t *testing.T) {
	m, err := AbsMax([]float64{-3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)

	m, err = AbsMax([]float64{0.5, 2, -1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)

	_, err = AbsMax(nil)
	assert.Equal(t, ErrEmptySeries, err)
}

func TestBounds(t *testing.T) {
	vmin, vmax, err := Bounds([]float64{-0.2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, -0.5, vmin)
	assert.Equal(t, 0.5, vmax)

	vmin, vmax, err = Bounds([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, -1.0, vmin)
	assert.Equal(t, 1.0, vmax)

	_, _, err = Bounds([]float64{})
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	m, err := Mean([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m, 1e-12)

	_, err = Mean(nil)
	assert.Equal(t, ErrEmptySeries, err)
}
