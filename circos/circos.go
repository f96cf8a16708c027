// Package circos lays out circular tracks over one or more sectors
// and draws them with gonum/plot.
//
// Positions run clockwise from 12 o'clock. Radii are given on a
// 0-100 scale, 100 being the outer edge of the drawing area before
// the label margin.
package circos

import (
	"errors"
	"fmt"
)

// MaxRadius is the radius of the outermost ring.
const MaxRadius = 100

var (
	ErrUnknownSector = errors.New("circos: unknown sector")
	ErrRadius        = errors.New("circos: invalid radial range")
	ErrLength        = errors.New("circos: series length mismatch")
)

// SectorSpec names a sector and its size in data coordinates.
type SectorSpec struct {
	Name string
	Size float64
}

type Circos struct {
	Start, End float64 // angular range in degrees.
	Space      float64 // degrees between sectors.
	Margin     float64 // radius units kept free outside MaxRadius for labels.

	sectors []*Sector
	texts   []textLayer
	err     error
}

type Sector struct {
	Name string
	Size float64

	circos     *Circos
	tracks     []*Track
	deg0, deg1 float64
}

// New creates a layout with sectors in clockwise order.
func New(sectors ...SectorSpec) *Circos {
	c := &Circos{Start: 0, End: 360, Margin: 15}
	for _, s := range sectors {
		if s.Size <= 0 {
			c.setErr(fmt.Errorf("circos: sector %s has size %g", s.Name, s.Size))
			continue
		}
		c.sectors = append(c.sectors, &Sector{Name: s.Name, Size: s.Size, circos: c})
	}
	if len(c.sectors) == 0 {
		c.setErr(errors.New("circos: no sectors"))
	}
	c.layout()
	return c
}

// layout assigns each sector its angular range.
func (c *Circos) layout() {
	total := 0.0
	for _, s := range c.sectors {
		total += s.Size
	}
	if total == 0 {
		return
	}

	span := c.End - c.Start
	if len(c.sectors) > 1 {
		span -= c.Space * float64(len(c.sectors))
	}
	deg := c.Start
	for _, s := range c.sectors {
		s.deg0 = deg
		s.deg1 = deg + span*s.Size/total
		deg = s.deg1
		if len(c.sectors) > 1 {
			deg += c.Space
		}
	}
}

// SetRange changes the angular range and spacing of the sectors.
func (c *Circos) SetRange(start, end, space float64) {
	if end <= start || end-start > 360 {
		c.setErr(fmt.Errorf("circos: invalid angular range %g-%g", start, end))
		return
	}
	c.Start, c.End, c.Space = start, end, space
	c.layout()
}

// Sector returns the sector called name, or nil.
func (c *Circos) Sector(name string) *Sector {
	for _, s := range c.sectors {
		if s.Name == name {
			return s
		}
	}
	c.setErr(fmt.Errorf("%w: %s", ErrUnknownSector, name))
	return nil
}

func (c *Circos) Sectors() []*Sector {
	return c.sectors
}

// Text places text at radius r on the 12 o'clock axis.
func (c *Circos) Text(text string, r, size float64) {
	c.texts = append(c.texts, textLayer{text: text, r: r, deg: c.Start, size: size})
}

// Err returns the first error recorded while building the layout.
func (c *Circos) Err() error {
	return c.err
}

func (c *Circos) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Deg converts a position within the sector into degrees.
func (s *Sector) Deg(x float64) float64 {
	return s.deg0 + (s.deg1-s.deg0)*x/s.Size
}

// AddTrack adds a ring between rmin and rmax.
// padRatio shrinks the range used for features by that share of its width.
func (s *Sector) AddTrack(rmin, rmax, padRatio float64) *Track {
	t := &Track{sector: s, RMin: rmin, RMax: rmax, PadRatio: padRatio}
	if rmin < 0 || rmin >= rmax || rmax > MaxRadius {
		s.circos.setErr(fmt.Errorf("%w: %g-%g", ErrRadius, rmin, rmax))
	}
	if padRatio < 0 || padRatio >= 1 {
		s.circos.setErr(fmt.Errorf("%w: pad ratio %g", ErrRadius, padRatio))
	}
	s.tracks = append(s.tracks, t)
	return t
}

func (s *Sector) Tracks() []*Track {
	return s.tracks
}
