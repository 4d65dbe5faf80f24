// Package exrload reads the R, G and B planes of an OpenEXR file as float32.
//
// The decoder reads part 0 of the file, derives the image size from the
// header's data window and requests the three colour channels in a single
// frame-buffer pass. HALF and UINT channels are widened to float32.
//
// Example usage:
//
//	set, err := exrload.Load("render.exr")
//	if err != nil {
//		return err
//	}
//	h, w := set.Shape()
package exrload

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/mrjoshuak/exrview/channel"
)

// Decoding errors
var (
	ErrEmptyDataWindow = errors.New("exrload: degenerate data window")
	ErrMissingChannel  = errors.New("exrload: channel not found")
	ErrNoChannels      = errors.New("exrload: no channels in file")
)

type options struct {
	mmap bool
}

// Option configures Load.
type Option func(*options)

// WithMmap reads the file through a memory mapping instead of a file handle.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.mmap = enabled
	}
}

// Load opens path and returns its R, G and B planes.
// The file is closed before Load returns, on success or failure.
func Load(path string, opts ...Option) (*channel.Set, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := open(path, o)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return set, nil
}

func open(path string, o options) (*exr.File, error) {
	if o.mmap {
		return exr.OpenFileMmap(path)
	}
	return exr.OpenFile(path)
}

// Decode extracts the R, G and B planes from an open file.
// Every plane has the shape (height, width) of the data window.
func Decode(f *exr.File) (*channel.Set, error) {
	h := f.Header(0)
	dw := h.DataWindow()
	width, height, err := windowSize(dw)
	if err != nil {
		return nil, err
	}

	cl := h.Channels()
	if cl == nil || cl.Len() == 0 {
		return nil, ErrNoChannels
	}
	fb, err := colourFrameBuffer(cl, dw)
	if err != nil {
		return nil, err
	}

	if err := readPixels(f, fb); err != nil {
		return nil, err
	}

	set := &channel.Set{}
	for _, name := range channel.Names {
		slice := fb.Get(string(name))
		c := channel.New(width, height)
		for y := 0; y < height; y++ {
			row := c.Row(y)
			for x := range row {
				row[x] = slice.GetFloat32(int(dw.Min.X)+x, int(dw.Min.Y)+y)
			}
		}
		if err := set.Put(name, c); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// windowSize returns the size of a data window, rejecting one with no area.
func windowSize(dw exr.Box2i) (width, height int, err error) {
	if dw.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: min=(%d,%d) max=(%d,%d)",
			ErrEmptyDataWindow, dw.Min.X, dw.Min.Y, dw.Max.X, dw.Max.Y)
	}
	return int(dw.Width()), int(dw.Height()), nil
}

// colourFrameBuffer allocates buffers for the R, G and B channels of cl
// only. Other channels in the file get no buffer and are skipped by the
// reader.
func colourFrameBuffer(cl *exr.ChannelList, dw exr.Box2i) (*exr.FrameBuffer, error) {
	colour := exr.NewChannelList()
	for _, name := range channel.Names {
		ch := cl.Get(string(name))
		if ch == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingChannel, name)
		}
		colour.Add(*ch)
	}
	fb, _ := exr.AllocateChannels(colour, dw)
	return fb, nil
}

// readPixels fills fb from the whole data window with the reader the
// header calls for.
func readPixels(f *exr.File, fb *exr.FrameBuffer) error {
	h := f.Header(0)

	if h.IsTiled() {
		tr, err := exr.NewTiledReader(f)
		if err != nil {
			return err
		}
		tr.SetFrameBuffer(fb)
		return tr.ReadTiles(0, 0, h.NumXTiles(0)-1, h.NumYTiles(0)-1)
	}

	sr, err := exr.NewScanlineReader(f)
	if err != nil {
		return err
	}
	sr.SetFrameBuffer(fb)
	dw := h.DataWindow()
	return sr.ReadPixels(int(dw.Min.Y), int(dw.Max.Y))
}
