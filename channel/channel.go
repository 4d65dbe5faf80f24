// Package channel holds the in-memory form of decoded EXR colour planes.
//
// A Channel is a single float32 plane of shape (Height, Width) in row-major
// order. A Set groups the three colour planes R, G and B, which always share
// one shape. Normalize rescales a plane into [0,1] on its own range and Stack
// builds the (Height, Width, 3) composite used for RGB display.
//
// Example usage:
//
//	norm, _ := channel.NormalizeSet(set)
//	rgb, _ := channel.Stack(norm)
//	img := rgb.Image()
package channel

import (
	"errors"
	"fmt"
	"math"
)

// Channel errors
var (
	ErrShapeMismatch = errors.New("channel: shape mismatch")
	ErrUnknownName   = errors.New("channel: unknown channel name")
)

// Name identifies one of the colour planes read from a file.
type Name string

// Colour plane names as they appear in the EXR channel list.
const (
	R Name = "R"
	G Name = "G"
	B Name = "B"
)

// Names is the fixed order in which planes are decoded, displayed and stacked.
var Names = [3]Name{R, G, B}

// Channel is a single plane of float32 samples.
type Channel struct {
	Width  int
	Height int
	// Pix holds Height rows of Width samples.
	Pix []float32
}

// New allocates a zeroed channel of the given size.
func New(width, height int) *Channel {
	return &Channel{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

// FromRows builds a channel from row slices, which must all have equal length.
func FromRows(rows [][]float32) (*Channel, error) {
	if len(rows) == 0 {
		return &Channel{}, nil
	}
	w := len(rows[0])
	c := New(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShapeMismatch, y, len(row), w)
		}
		copy(c.Pix[y*w:], row)
	}
	return c, nil
}

// Shape returns (height, width).
func (c *Channel) Shape() (height, width int) {
	return c.Height, c.Width
}

// At returns the sample at column x, row y.
func (c *Channel) At(x, y int) float32 {
	return c.Pix[y*c.Width+x]
}

// Row returns row y without copying.
func (c *Channel) Row(y int) []float32 {
	return c.Pix[y*c.Width : (y+1)*c.Width]
}

// MinMax returns the smallest and largest finite samples.
// ok is false when the channel has no finite samples.
func (c *Channel) MinMax() (lo, hi float32, ok bool) {
	for _, v := range c.Pix {
		if !finite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

func (c *Channel) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrShapeMismatch, c.Width, c.Height)
	}
	if len(c.Pix) != c.Width*c.Height {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrShapeMismatch, len(c.Pix), c.Width, c.Height)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Set is the R, G, B triple decoded from one file.
type Set struct {
	R, G, B *Channel
}

// Get returns the channel with the given name.
func (s *Set) Get(name Name) (*Channel, error) {
	switch name {
	case R:
		return s.R, nil
	case G:
		return s.G, nil
	case B:
		return s.B, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Put stores c under name.
func (s *Set) Put(name Name, c *Channel) error {
	switch name {
	case R:
		s.R = c
	case G:
		s.G = c
	case B:
		s.B = c
	default:
		return fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return nil
}

// Shape returns the shared (height, width) of the set.
func (s *Set) Shape() (height, width int) {
	return s.R.Shape()
}

// Validate checks that all three planes are present and share one shape.
func (s *Set) Validate() error {
	var h, w int
	for i, name := range Names {
		c, _ := s.Get(name)
		if c == nil {
			return fmt.Errorf("%w: channel %s missing", ErrShapeMismatch, name)
		}
		if err := c.validate(); err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}
		if i == 0 {
			h, w = c.Shape()
			continue
		}
		if c.Height != h || c.Width != w {
			return fmt.Errorf("%w: channel %s is %dx%d, want %dx%d", ErrShapeMismatch, name, c.Width, c.Height, w, h)
		}
	}
	return nil
}
