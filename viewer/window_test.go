package viewer

import (
	"errors"
	"testing"

	"github.com/mrjoshuak/exrview/plot"
)

func TestNewConfig(t *testing.T) {
	fig := &plot.Figure{Title: "figure"}

	tests := []struct {
		name  string
		fig   *plot.Figure
		opts  []Option
		title string
		w, h  int
	}{
		{"defaults", fig, nil, "figure", DefaultWidth, DefaultHeight},
		{"size", fig, []Option{WithSize(640, 480)}, "figure", 640, 480},
		{"non-positive size", fig, []Option{WithSize(0, -1)}, "figure", DefaultWidth, DefaultHeight},
		{"untitled", &plot.Figure{}, nil, "exrview", DefaultWidth, DefaultHeight},
		{"nil figure", nil, nil, "exrview", DefaultWidth, DefaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConfig(tt.fig, tt.opts)
			if c.title != tt.title || c.width != tt.w || c.height != tt.h {
				t.Errorf("config = {%q, %d, %d}, want {%q, %d, %d}",
					c.title, c.width, c.height, tt.title, tt.w, tt.h)
			}
			if c.logger == nil {
				t.Error("logger is nil")
			}
		})
	}
}

func TestShowEmptyFigure(t *testing.T) {
	if err := Show(nil); !errors.Is(err, plot.ErrEmptyFigure) {
		t.Errorf("Show(nil) error = %v, want ErrEmptyFigure", err)
	}
	if err := Show(&plot.Figure{Title: "x"}); !errors.Is(err, plot.ErrEmptyFigure) {
		t.Errorf("Show(no panels) error = %v, want ErrEmptyFigure", err)
	}
}
