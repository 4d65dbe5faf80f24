package plot

import "math"

// Rect is an axis-aligned box in pixels with its origin at the top left.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// overlaps reports whether r and o share any area.
func (r Rect) overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Cell is the placement of one panel.
type Cell struct {
	// Bounds is the whole cell, title included.
	Bounds Rect
	// TitleX, TitleY is the anchor of the centred panel title.
	TitleX, TitleY float64
	Image          Rect
	// Colorbar has zero size for panels without one.
	Colorbar Rect
	// Labels is the x coordinate where tick labels start.
	Labels float64
}

// Layout is the placement of a whole figure.
type Layout struct {
	Width, Height  int
	TitleX, TitleY float64
	TitleSize      float64
	PanelTitleSize float64
	TickSize       float64
	TickLen        float64
	Cells          []Cell
}

// Colorbar proportions relative to the cell width.
const (
	colorbarFraction = 0.046
	colorbarPad      = 0.04
)

// Arrange places panels of the given image sizes in one row across a
// width x height canvas. Images keep their aspect ratio.
func Arrange(width, height int, panels []Panel) Layout {
	w, h := float64(width), float64(height)
	l := Layout{Width: width, Height: height}

	l.TitleSize = clamp(h*0.045, 10, 28)
	l.PanelTitleSize = l.TitleSize * 0.75
	l.TickSize = l.TitleSize * 0.55
	l.TickLen = math.Max(3, l.TickSize*0.4)

	pad := math.Max(6, w*0.01)
	titleBand := l.TitleSize * 1.8
	l.TitleX = w / 2
	l.TitleY = titleBand / 2

	n := len(panels)
	if n == 0 {
		return l
	}
	cellW := math.Max(0, (w-pad*float64(n+1))/float64(n))
	cellH := math.Max(0, h-titleBand-pad)
	panelTitleBand := l.PanelTitleSize * 1.8
	labelW := l.TickSize * 2.6

	for i, p := range panels {
		c := Cell{Bounds: Rect{X: pad + float64(i)*(cellW+pad), Y: titleBand, W: cellW, H: cellH}}
		c.TitleX = c.Bounds.X + cellW/2
		c.TitleY = c.Bounds.Y + panelTitleBand/2

		box := Rect{X: c.Bounds.X, Y: c.Bounds.Y + panelTitleBand, W: cellW, H: math.Max(0, cellH-panelTitleBand)}
		var barW, barPad float64
		if p.Colorbar {
			barW = math.Max(6, cellW*colorbarFraction)
			barPad = math.Max(4, cellW*colorbarPad)
			box.W = math.Max(0, box.W-barPad-barW-l.TickLen-labelW)
		}

		iw, ih := 1.0, 1.0
		if p.Image != nil {
			b := p.Image.Bounds()
			iw, ih = float64(b.Dx()), float64(b.Dy())
		}
		c.Image = fit(box, iw, ih)

		if p.Colorbar {
			c.Colorbar = Rect{X: c.Image.Right() + barPad, Y: c.Image.Y, W: barW, H: c.Image.H}
			c.Labels = c.Colorbar.Right() + l.TickLen + 2
		}
		// Pull the title down onto the image when the fit leaves a gap above it.
		c.TitleY = math.Max(c.TitleY, c.Image.Y-panelTitleBand/2)
		l.Cells = append(l.Cells, c)
	}
	return l
}

// fit centres an iw x ih image in box at the largest scale that keeps it
// inside, snapped to whole pixels.
func fit(box Rect, iw, ih float64) Rect {
	if iw <= 0 || ih <= 0 || box.W <= 0 || box.H <= 0 {
		return Rect{X: box.X, Y: box.Y}
	}
	s := math.Min(box.W/iw, box.H/ih)
	fw := math.Max(1, math.Floor(iw*s))
	fh := math.Max(1, math.Floor(ih*s))
	return Rect{
		X: math.Round(box.X + (box.W-fw)/2),
		Y: math.Round(box.Y + (box.H-fh)/2),
		W: fw,
		H: fh,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
