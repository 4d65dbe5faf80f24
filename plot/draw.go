package plot

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/nfnt/resize"
)

// Render rasterizes fig into a new width x height image.
func Render(fig *Figure, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plot: invalid canvas size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if err := Draw(dc, fig, width, height); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	if img, ok := dc.Image().(*image.RGBA); ok {
		return img, nil
	}
	return nil, fmt.Errorf("plot: unexpected canvas image type %T", dc.Image())
}

// Draw paints fig onto dc, laid out for a width x height area. The whole
// area is cleared first.
func Draw(dc *gg.Context, fig *Figure, width, height int) error {
	if fig == nil || len(fig.Panels) == 0 {
		return ErrEmptyFigure
	}
	l := Arrange(width, height, fig.Panels)

	dc.ClearWithColor(gg.White)

	title, err := face(l.TitleSize)
	if err != nil {
		return err
	}
	dc.SetRGB(0, 0, 0)
	dc.SetFont(title)
	dc.DrawStringAnchored(fig.Title, l.TitleX, l.TitleY, 0.5, 0.35)

	panelFace, err := face(l.PanelTitleSize)
	if err != nil {
		return err
	}
	tickFace, err := face(l.TickSize)
	if err != nil {
		return err
	}

	for i, p := range fig.Panels {
		c := l.Cells[i]
		if c.Image.W < 1 || c.Image.H < 1 {
			continue
		}
		dc.SetRGB(0, 0, 0)
		dc.SetFont(panelFace)
		dc.DrawStringAnchored(p.Title, c.TitleX, c.TitleY, 0.5, 0.35)

		if p.Image != nil {
			dc.DrawImage(gg.ImageBufFromImage(scale(p.Image, c.Image)), c.Image.X, c.Image.Y)
		}
		if p.Colorbar && fig.Cmap != nil {
			dc.SetFont(tickFace)
			if err := drawColorbar(dc, fig, p, c, l.TickLen); err != nil {
				return fmt.Errorf("plot: colorbar %q: %w", p.Title, err)
			}
		}
	}
	return nil
}

func drawColorbar(dc *gg.Context, fig *Figure, p Panel, c Cell, tickLen float64) error {
	bar := c.Colorbar
	bw, bh := int(math.Round(bar.W)), int(math.Round(bar.H))
	if bw < 1 || bh < 1 {
		return nil
	}
	dc.DrawImage(gg.ImageBufFromImage(gradient(fig.Cmap, bw, bh)), bar.X, bar.Y)

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(bar.X+0.5, bar.Y+0.5, float64(bw)-1, float64(bh)-1)
	if err := dc.Stroke(); err != nil {
		return err
	}

	for _, t := range Ticks(p.Lo, p.Hi) {
		y := math.Round(tickY(bar, t.Value, p.Lo, p.Hi)) + 0.5
		dc.DrawLine(bar.Right(), y, bar.Right()+tickLen, y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawStringAnchored(t.Label, c.Labels, y, 0, 0.35)
	}
	return nil
}

// scale resamples img to the size of dst. Enlarging keeps pixels crisp,
// shrinking filters.
func scale(img image.Image, dst Rect) image.Image {
	b := img.Bounds()
	w, h := uint(dst.W), uint(dst.H)
	if int(w) == b.Dx() && int(h) == b.Dy() {
		return img
	}
	interp := resize.Lanczos3
	if int(w) > b.Dx() || int(h) > b.Dy() {
		interp = resize.NearestNeighbor
	}
	return resize.Resize(w, h, img, interp)
}
