// Package plot lays out and rasterizes the four-panel channel figure.
//
// A Figure holds one panel per colour plane, each drawn through a colormap
// with a colorbar, and a fourth panel with the RGB composite. Draw renders
// the figure into any gg context at a given size; Render rasterizes it into
// a new image.
package plot

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/mrjoshuak/exrview/channel"
	"github.com/mrjoshuak/exrview/colormap"
)

// ErrEmptyFigure is returned when a figure has nothing to show.
var ErrEmptyFigure = errors.New("plot: empty figure")

// Panel is one cell of the figure.
type Panel struct {
	Title string
	// Image is the pixel content shown in the cell.
	Image image.Image
	// Lo and Hi are the value range the colorbar is calibrated to.
	Lo, Hi float64
	// Colorbar is false for the composite panel.
	Colorbar bool
}

// Figure is a titled row of panels.
type Figure struct {
	Title  string
	Cmap   *colormap.Map
	Panels []Panel
}

type options struct {
	cmap  *colormap.Map
	title string
}

// Option configures NewFigure.
type Option func(*options)

// WithColormap selects the map used for the channel panels.
func WithColormap(m *colormap.Map) Option {
	return func(o *options) {
		o.cmap = m
	}
}

// WithTitle overrides the figure title. An empty title keeps the default.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// NewFigure builds the figure for a normalized channel set and its composite.
func NewFigure(norm *channel.Set, comp *channel.Composite, opts ...Option) (*Figure, error) {
	if err := norm.Validate(); err != nil {
		return nil, err
	}
	h, w := norm.Shape()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d channels", ErrEmptyFigure, w, h)
	}
	if ch, cw, _ := comp.Shape(); ch != h || cw != w {
		return nil, fmt.Errorf("%w: composite is %dx%d, channels are %dx%d",
			channel.ErrShapeMismatch, cw, ch, w, h)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cmap == nil {
		m, err := colormap.ByName(colormap.Default)
		if err != nil {
			return nil, err
		}
		o.cmap = m
	}
	if o.title == "" {
		o.title = DefaultTitle(o.cmap.Name())
	}

	fig := &Figure{Title: o.title, Cmap: o.cmap}
	for _, name := range channel.Names {
		c, _ := norm.Get(name)
		lo, hi := displayRange(c)
		fig.Panels = append(fig.Panels, Panel{
			Title:    fmt.Sprintf("%s Channel", name),
			Image:    Colorize(c, o.cmap, lo, hi),
			Lo:       lo,
			Hi:       hi,
			Colorbar: true,
		})
	}
	fig.Panels = append(fig.Panels, Panel{
		Title: "Combined RGB",
		Image: comp.Image(),
	})
	return fig, nil
}

// DefaultTitle is the figure title for a colormap name.
func DefaultTitle(cmap string) string {
	if cmap != "" {
		cmap = strings.ToUpper(cmap[:1]) + cmap[1:]
	}
	return fmt.Sprintf("EXR Channels with %s Colormap + Combined RGB", cmap)
}

// displayRange returns the data range of c, widened to one unit when the
// channel is constant.
func displayRange(c *channel.Channel) (lo, hi float64) {
	l, h, ok := c.MinMax()
	if !ok {
		return 0, 1
	}
	lo, hi = float64(l), float64(h)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Colorize maps every sample of c through m on the range [lo, hi].
func Colorize(c *channel.Channel, m *colormap.Map, lo, hi float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		row := c.Row(y)
		for x, v := range row {
			img.SetRGBA(x, y, m.Scaled(float64(v), lo, hi))
		}
	}
	return img
}
