// Package exrtest writes small EXR fixtures for tests.
package exrtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"
)

// Fill returns the sample of channel name at data window coordinates (x, y).
type Fill func(name string, x, y int) float32

// Image describes a scanline fixture.
type Image struct {
	DataWindow  exr.Box2i
	Type        exr.PixelType
	Compression exr.Compression
	// Channels defaults to R, G, B.
	Channels []string
	Fill     Fill
	// Header, if set, is applied to the header before writing.
	Header func(*exr.Header)
}

// Window returns the data window of a width x height image at the origin.
func Window(width, height int) exr.Box2i {
	return exr.Box2i{Max: exr.V2i{X: int32(width - 1), Y: int32(height - 1)}}
}

// Write writes img as a scanline file to dir/name and returns the path.
func Write(t testing.TB, dir, name string, img Image) string {
	t.Helper()

	dw := img.DataWindow
	h := exr.NewScanlineHeader(int(dw.Width()), int(dw.Height()))
	fb := img.prepare(h)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	sw, err := exr.NewScanlineWriter(f, h)
	if err != nil {
		t.Fatalf("Failed to create scanline writer: %v", err)
	}
	sw.SetFrameBuffer(fb)

	if err := sw.WritePixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		sw.Close()
		t.Fatalf("Failed to write pixels: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("Failed to close scanline writer: %v", err)
	}
	return path
}

// WriteTiled writes img as a single-level tiled file with square tiles of
// tileSize pixels and returns the path.
func WriteTiled(t testing.TB, dir, name string, img Image, tileSize int) string {
	t.Helper()

	dw := img.DataWindow
	h := exr.NewTiledHeader(int(dw.Width()), int(dw.Height()), tileSize, tileSize)
	fb := img.prepare(h)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	tw, err := exr.NewTiledWriter(f, h)
	if err != nil {
		t.Fatalf("Failed to create tiled writer: %v", err)
	}
	tw.SetFrameBuffer(fb)

	// WriteTiles takes (tileX1, tileY1, tileX2, tileY2)
	if err := tw.WriteTiles(0, 0, h.NumXTiles(0)-1, h.NumYTiles(0)-1); err != nil {
		tw.Close()
		t.Fatalf("Failed to write tiles: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tiled writer: %v", err)
	}
	return path
}

// prepare sets the window, compression and channels of h and returns a
// frame buffer filled from img.Fill in data window coordinates.
func (img Image) prepare(h *exr.Header) *exr.FrameBuffer {
	dw := img.DataWindow
	names := img.Channels
	if names == nil {
		names = []string{"R", "G", "B"}
	}

	h.SetDataWindow(dw)
	h.SetDisplayWindow(dw)
	h.SetCompression(img.Compression)

	cl := exr.NewChannelList()
	for _, n := range names {
		cl.Add(exr.Channel{Name: n, Type: img.Type, XSampling: 1, YSampling: 1})
	}
	h.SetChannels(cl)
	if img.Header != nil {
		img.Header(h)
	}

	fb, _ := exr.AllocateChannels(cl, dw)
	for _, n := range names {
		slice := fb.Get(n)
		for y := int(dw.Min.Y); y <= int(dw.Max.Y); y++ {
			for x := int(dw.Min.X); x <= int(dw.Max.X); x++ {
				var v float32
				if img.Fill != nil {
					v = img.Fill(n, x, y)
				}
				slice.SetFloat32(x, y, v)
			}
		}
	}
	return fb
}

// TwoByTwo writes the 2x2 float fixture with R = [[0,1],[2,3]], G = 0 and
// B = 10.
func TwoByTwo(t testing.TB, dir string) string {
	t.Helper()
	return Write(t, dir, "two_by_two.exr", Image{
		DataWindow:  Window(2, 2),
		Type:        exr.PixelTypeFloat,
		Compression: exr.CompressionNone,
		Fill: func(name string, x, y int) float32 {
			switch name {
			case "R":
				return float32(y*2 + x)
			case "B":
				return 10
			}
			return 0
		},
	})
}
