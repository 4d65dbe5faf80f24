// Package pipeline runs the viewer from input path to displayed figure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mrjoshuak/exrview/channel"
	"github.com/mrjoshuak/exrview/colormap"
	"github.com/mrjoshuak/exrview/exrload"
	"github.com/mrjoshuak/exrview/internal/picker"
	"github.com/mrjoshuak/exrview/plot"
)

// Messages printed when the run ends without showing anything.
const (
	MsgNoFile   = "No file selected. Exiting."
	MsgNotFound = "Error: file not found -> %s"
)

// Picker asks the user for an input path.
type Picker interface {
	Pick() (string, error)
}

// Display shows a finished figure and returns when the user is done with it.
type Display interface {
	Show(fig *plot.Figure) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(fig *plot.Figure) error

// Show calls f(fig).
func (f DisplayFunc) Show(fig *plot.Figure) error { return f(fig) }

// Options controls a viewer run.
type Options struct {
	Path     string // optional: file to open; the picker is used when empty
	Colormap string // colormap for the channel panels, colormap.Default if empty
	Title    string // figure title, derived from the colormap if empty
	Mmap     bool   // read the file through a memory mapping

	Picker  Picker
	Display Display
	Stdout  io.Writer    // user-facing messages, os.Stdout if nil
	Logger  *slog.Logger // slog.Default() if nil
}

// Result describes a run that reached the display.
type Result struct {
	Path   string
	Width  int
	Height int
	Figure *plot.Figure
}

// Run executes the whole viewer: resolve the input, decode, normalize,
// build the figure and display it.
//
// A cancelled picker or a path that is not a regular file prints a message
// and returns (nil, nil). Every other failure is returned.
func Run(opts Options) (*Result, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	// 1. Resolve the input path
	path := opts.Path
	if path == "" {
		if opts.Picker == nil {
			fmt.Fprintln(out, MsgNoFile)
			return nil, nil
		}
		p, err := opts.Picker.Pick()
		if errors.Is(err, picker.ErrCancelled) {
			fmt.Fprintln(out, MsgNoFile)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		path = p
	}
	if !isRegular(path) {
		fmt.Fprintf(out, MsgNotFound+"\n", path)
		return nil, nil
	}

	cmap, err := colormap.ByName(orDefault(opts.Colormap))
	if err != nil {
		return nil, err
	}

	if log.Enabled(context.Background(), slog.LevelDebug) {
		info, err := exrload.Stat(path)
		if err != nil {
			log.Debug("pipeline: stat", "path", path, "err", err)
		} else {
			log.Debug("pipeline: input", "file", info)
		}
	}

	// 2. Decode
	set, err := exrload.Load(path, exrload.WithMmap(opts.Mmap))
	if err != nil {
		return nil, err
	}
	h, w := set.Shape()
	log.Debug("pipeline: decoded", "path", path, "width", w, "height", h)

	// 3. Normalize and stack
	norm, err := channel.NormalizeSet(set)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	comp, err := channel.Stack(norm)
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}

	// 4. Render
	fig, err := plot.NewFigure(norm, comp, plot.WithColormap(cmap), plot.WithTitle(opts.Title))
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	res := &Result{Path: path, Width: w, Height: h, Figure: fig}
	if opts.Display == nil {
		return res, nil
	}
	if err := opts.Display.Show(fig); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	return res, nil
}

func isRegular(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func orDefault(name string) string {
	if name == "" {
		return colormap.Default
	}
	return name
}

// Check that the native dialog satisfies Picker.
var _ Picker = picker.Dialog{}
