// Package gc computes windowed GC content and GC skew along a genome,
// and the signed series derived from them for plotting.
package gc

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
	"gopkg.in/cheggaaa/pb.v1"
)

// ErrEmptySeries is returned for statistics of an empty series.
var ErrEmptySeries = errors.New("gc: empty series")

// ShowProgress shows a progress bar while scanning windows.
var ShowProgress bool

// Series holds one value per genome position.
type Series struct {
	Pos    []int
	Values []float64
}

func (s Series) Len() int {
	return len(s.Pos)
}

// X returns positions as floats.
func (s Series) X() []float64 {
	x := make([]float64, len(s.Pos))
	for i, p := range s.Pos {
		x[i] = float64(p)
	}
	return x
}

type counts struct {
	a, c, g, t, s, w int
}

func count(seq []byte) (n counts) {
	for _, b := range seq {
		switch b {
		case 'A', 'a':
			n.a++
		case 'C', 'c':
			n.c++
		case 'G', 'g':
			n.g++
		case 'T', 't':
			n.t++
		case 'S', 's':
			n.s++
		case 'W', 'w':
			n.w++
		}
	}
	return
}

func (n counts) fraction() float64 {
	total := n.a + n.c + n.g + n.t + n.s + n.w
	if total == 0 {
		return 0
	}
	return float64(n.g+n.c+n.s) / float64(total)
}

func (n counts) skew() float64 {
	if n.g+n.c == 0 {
		return 0
	}
	return float64(n.g-n.c) / float64(n.g+n.c)
}

// Fraction returns the GC fraction of seq.
// Ambiguous bases other than S and W are ignored.
func Fraction(seq []byte) float64 {
	return count(seq).fraction()
}

// GenomeContent returns the GC content of the whole sequence in percent.
func GenomeContent(seq []byte) float64 {
	return Fraction(seq) * 100
}

// Windows returns the window and step sizes used for seq length n.
// Non-positive arguments take defaults of n/500 and n/1000.
func Windows(n, window, step int) (int, int) {
	if window <= 0 {
		window = n / 500
	}
	if step <= 0 {
		step = n / 1000
	}
	if window == 0 || step == 0 {
		window, step = n, n/2
	}
	if step == 0 {
		step = 1
	}
	return window, step
}

// Content returns GC content in percent for windows along seq.
func Content(seq []byte, window, step int) Series {
	return scan(seq, window, step, func(n counts) float64 { return n.fraction() * 100 })
}

// Skew returns (G-C)/(G+C) for windows along seq.
func Skew(seq []byte, window, step int) Series {
	return scan(seq, window, step, counts.skew)
}

// scan evaluates fn on a window centered on 0, step, 2*step, ...
// and on the last position. Windows are clamped to the sequence.
func scan(seq []byte, window, step int, fn func(counts) float64) Series {
	n := len(seq)
	if n == 0 {
		return Series{}
	}
	window, step = Windows(n, window, step)

	var pos []int
	for p := 0; p < n; p += step {
		pos = append(pos, p)
	}
	pos = append(pos, n)

	var pbar *pb.ProgressBar
	if ShowProgress {
		pbar = pb.StartNew(len(pos))
		defer pbar.Finish()
	}

	values := make([]float64, len(pos))
	half := window / 2
	for i, p := range pos {
		start, end := p-half, p+half
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		values[i] = fn(count(seq[start:end]))
		if ShowProgress {
			pbar.Increment()
		}
	}

	return Series{Pos: pos, Values: values}
}

// Center subtracts mean from every value.
func Center(s Series, mean float64) Series {
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		values[i] = v - mean
	}
	return Series{Pos: s.Pos, Values: values}
}

// Split separates values into a positive part and a negative part.
// Every value goes to exactly one side, or to neither when it is zero,
// so pos[i] + neg[i] == values[i].
func Split(values []float64) (pos, neg []float64) {
	pos = make([]float64, len(values))
	neg = make([]float64, len(values))
	for i, v := range values {
		switch {
		case v > 0:
			pos[i] = v
		case v < 0:
			neg[i] = v
		}
	}
	return
}

// AbsMax returns the largest absolute value.
func AbsMax(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	max, err := stats.Max(values)
	if err != nil {
		return 0, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return 0, err
	}
	return math.Max(math.Abs(max), math.Abs(min)), nil
}

// Bounds returns a scale symmetric around zero that holds all values.
// A series of zeros gets [-1, 1].
func Bounds(values []float64) (vmin, vmax float64, err error) {
	m, err := AbsMax(values)
	if err != nil {
		return 0, 0, err
	}
	if m == 0 {
		return -1, 1, nil
	}
	return -m, m, nil
}

// Mean returns the average of the series values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	return stats.Mean(values)
}
