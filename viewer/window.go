// Package viewer shows a plot.Figure in a native window.
//
// The figure is drawn with gg into a ggcanvas.Canvas, which is uploaded
// to the GPU and presented by a gogpu window. The figure is laid out again
// whenever the window size changes. Show blocks until the window is closed.
package viewer

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/mrjoshuak/exrview/plot"
)

// Default window size, wide enough for four panels in a row.
const (
	DefaultWidth  = 1800
	DefaultHeight = 520
)

type config struct {
	title         string
	width, height int
	logger        *slog.Logger
}

// Option configures Show.
type Option func(*config)

// WithSize sets the initial window size in pixels.
// Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithLogger sets the logger for window events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(fig *plot.Figure, opts []Option) config {
	c := config{
		width:  DefaultWidth,
		height: DefaultHeight,
		logger: slog.Default(),
	}
	if fig != nil {
		c.title = fig.Title
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.title == "" {
		c.title = "exrview"
	}
	return c
}

// Show opens a window displaying fig and returns once the user closes it.
func Show(fig *plot.Figure, opts ...Option) error {
	if fig == nil || len(fig.Panels) == 0 {
		return plot.ErrEmptyFigure
	}
	cfg := newConfig(fig, opts)
	log := cfg.logger

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.title).
		WithSize(cfg.width, cfg.height).
		WithContinuousRender(false))

	s := &surface{fig: fig, log: log}
	app.OnDraw(func(dc *gogpu.Context) {
		if err := s.frame(app, dc); err != nil {
			log.Error("viewer: frame", "err", err)
		}
	})
	app.OnClose(s.close)

	log.Debug("viewer: window open", "title", cfg.title, "width", cfg.width, "height", cfg.height)
	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	log.Debug("viewer: window closed")
	return nil
}

// surface owns the canvas for one window and remembers the size the
// figure was last laid out for.
type surface struct {
	fig    *plot.Figure
	log    *slog.Logger
	canvas *ggcanvas.Canvas
	// drawnW, drawnH is the size of the last layout; zero forces a redraw.
	drawnW, drawnH int
}

func (s *surface) frame(app *gogpu.App, dc *gogpu.Context) error {
	w, h := dc.Width(), dc.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	if s.canvas == nil {
		provider := app.GPUContextProvider()
		if provider == nil {
			return nil
		}
		canvas, err := ggcanvas.New(provider, w, h)
		if err != nil {
			return fmt.Errorf("create canvas: %w", err)
		}
		s.canvas = canvas
	}

	if cw, ch := s.canvas.Size(); cw != w || ch != h {
		if err := s.canvas.Resize(w, h); err != nil {
			return fmt.Errorf("resize canvas: %w", err)
		}
	}

	if w != s.drawnW || h != s.drawnH {
		var drawErr error
		if err := s.canvas.Draw(func(cc *gg.Context) {
			drawErr = plot.Draw(cc, s.fig, w, h)
		}); err != nil {
			return err
		}
		if drawErr != nil {
			return drawErr
		}
		s.drawnW, s.drawnH = w, h
		s.log.Debug("viewer: relayout", "width", w, "height", h)
	}

	return s.canvas.RenderTo(dc.AsTextureDrawer())
}

func (s *surface) close() {
	if s.canvas == nil {
		return
	}
	if err := s.canvas.Close(); err != nil {
		s.log.Warn("viewer: close canvas", "err", err)
	}
	s.canvas = nil
}
