package channel

import (
	"image"
	"image/color"
)

// Epsilon keeps Normalize finite for a constant channel.
const Epsilon = 1e-8

// Normalize rescales c into [0,1] using its own minimum and maximum:
//
//	(v - min) / (max - min + Epsilon)
//
// A constant channel maps to all zeros. Non-finite samples are ignored when
// finding the range and map to 0.
func Normalize(c *Channel) *Channel {
	out := New(c.Width, c.Height)
	lo, hi, ok := c.MinMax()
	if !ok {
		return out
	}
	base := float64(lo)
	scale := float64(hi) - base + Epsilon
	for i, v := range c.Pix {
		if !finite(v) {
			continue
		}
		out.Pix[i] = float32((float64(v) - base) / scale)
	}
	return out
}

// NormalizeSet normalizes every channel of s independently.
// The ratios between channels are not preserved.
func NormalizeSet(s *Set) (*Set, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Set{
		R: Normalize(s.R),
		G: Normalize(s.G),
		B: Normalize(s.B),
	}, nil
}

// Composite is the (Height, Width, 3) stack of three planes.
type Composite struct {
	Width  int
	Height int
	// Pix holds interleaved R, G, B samples, three per pixel.
	Pix []float32
}

// Stack interleaves the planes of s in R, G, B order.
func Stack(s *Set) (*Composite, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	h, w := s.Shape()
	comp := &Composite{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*3),
	}
	for i := 0; i < w*h; i++ {
		comp.Pix[i*3] = s.R.Pix[i]
		comp.Pix[i*3+1] = s.G.Pix[i]
		comp.Pix[i*3+2] = s.B.Pix[i]
	}
	return comp, nil
}

// Shape returns (height, width, 3).
func (c *Composite) Shape() (height, width, depth int) {
	return c.Height, c.Width, 3
}

// At returns the R, G, B triple at column x, row y.
func (c *Composite) At(x, y int) [3]float32 {
	i := (y*c.Width + x) * 3
	return [3]float32{c.Pix[i], c.Pix[i+1], c.Pix[i+2]}
}

// Image converts the composite to 8-bit colour, clipping samples to [0,1].
func (c *Composite) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			px := c.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: unitToByte(px[0]),
				G: unitToByte(px[1]),
				B: unitToByte(px[2]),
				A: 0xff,
			})
		}
	}
	return img
}

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
