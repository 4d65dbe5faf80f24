package plot

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// face returns the Go Regular face at the given size in pixels. The parsed
// font is shared by every figure in the process.
func face(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("plot: load font: %w", fontErr)
		}
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return fontSource.Face(size), nil
}
