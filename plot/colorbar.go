package plot

import (
	"image"
	"math"

	"gonum.org/v1/plot"

	"github.com/mrjoshuak/exrview/colormap"
)

// Tick is a labelled colorbar mark.
type Tick struct {
	Value float64
	Label string
}

// Ticks returns the labelled ticks for a colorbar spanning [lo, hi]. Minor
// ticks are dropped and so are major ticks that fall outside the range.
func Ticks(lo, hi float64) []Tick {
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	var out []Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.IsMinor() || t.Value < lo || t.Value > hi {
			continue
		}
		out = append(out, Tick{Value: t.Value, Label: t.Label})
	}
	return out
}

// gradient builds a w x h colorbar image with hi at the top and lo at the
// bottom.
func gradient(m *colormap.Map, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := 1.0
		if h > 1 {
			v = 1 - float64(y)/float64(h-1)
		}
		c := m.At(v)
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// tickY maps a value in [lo, hi] to a y coordinate inside bar.
func tickY(bar Rect, v, lo, hi float64) float64 {
	return bar.Bottom() - (v-lo)/(hi-lo)*bar.H
}
