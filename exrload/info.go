package exrload

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/mrjoshuak/go-openexr/exrmeta"
)

// Info summarizes the header of part 0 of an EXR file.
type Info struct {
	Path        string
	FileSize    int64
	DataWindow  exr.Box2i
	Width       int
	Height      int
	Compression exr.Compression
	IsTiled     bool
	IsMultiPart bool
	NumParts    int
	Channels    []string

	// Standard string attributes, empty when absent.
	Owner    string
	Comments string
	CapDate  string
}

// Stat reads the header of path without decoding any pixels.
func Stat(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := f.Header(0)
	dw := h.DataWindow()
	info := &Info{
		Path:        path,
		FileSize:    st.Size(),
		DataWindow:  dw,
		Width:       int(dw.Width()),
		Height:      int(dw.Height()),
		Compression: h.Compression(),
		IsTiled:     h.IsTiled(),
		IsMultiPart: f.IsMultiPart(),
		NumParts:    f.NumParts(),
		Owner:       exrmeta.Owner(h),
		Comments:    exrmeta.Comments(h),
		CapDate:     exrmeta.CapDate(h),
	}
	if cl := h.Channels(); cl != nil {
		for _, ch := range cl.Channels() {
			info.Channels = append(info.Channels, ch.Name)
		}
	}
	return info, nil
}

// LogValue reports the summary as a structured log group.
func (i *Info) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("path", i.Path),
		slog.Int64("bytes", i.FileSize),
		slog.Int("width", i.Width),
		slog.Int("height", i.Height),
		slog.String("compression", fmt.Sprint(i.Compression)),
		slog.Bool("tiled", i.IsTiled),
		slog.Bool("multipart", i.IsMultiPart),
		slog.Int("parts", i.NumParts),
		slog.Any("channels", i.Channels),
	}
	if i.Owner != "" {
		attrs = append(attrs, slog.String("owner", i.Owner))
	}
	if i.Comments != "" {
		attrs = append(attrs, slog.String("comments", i.Comments))
	}
	if i.CapDate != "" {
		attrs = append(attrs, slog.String("capDate", i.CapDate))
	}
	return slog.GroupValue(attrs...)
}
