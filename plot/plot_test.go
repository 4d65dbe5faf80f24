package plot

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/mrjoshuak/exrview/channel"
	"github.com/mrjoshuak/exrview/colormap"
)

func testFigure(t *testing.T, w, h int, opts ...Option) *Figure {
	t.Helper()
	s := &channel.Set{R: channel.New(w, h), G: channel.New(w, h), B: channel.New(w, h)}
	for i := range s.R.Pix {
		s.R.Pix[i] = float32(i)
		s.B.Pix[i] = 10
	}
	norm, err := channel.NormalizeSet(s)
	if err != nil {
		t.Fatalf("NormalizeSet() error = %v", err)
	}
	comp, err := channel.Stack(norm)
	if err != nil {
		t.Fatalf("Stack() error = %v", err)
	}
	fig, err := NewFigure(norm, comp, opts...)
	if err != nil {
		t.Fatalf("NewFigure() error = %v", err)
	}
	return fig
}

func TestNewFigurePanels(t *testing.T) {
	fig := testFigure(t, 4, 3)

	if fig.Title != "EXR Channels with Plasma Colormap + Combined RGB" {
		t.Errorf("Title = %q", fig.Title)
	}
	if fig.Cmap == nil || fig.Cmap.Name() != colormap.Default {
		t.Errorf("Cmap = %v, want %s", fig.Cmap, colormap.Default)
	}

	want := []struct {
		title    string
		colorbar bool
	}{
		{"R Channel", true},
		{"G Channel", true},
		{"B Channel", true},
		{"Combined RGB", false},
	}
	if len(fig.Panels) != len(want) {
		t.Fatalf("len(Panels) = %d, want %d", len(fig.Panels), len(want))
	}
	for i, w := range want {
		p := fig.Panels[i]
		if p.Title != w.title || p.Colorbar != w.colorbar {
			t.Errorf("Panels[%d] = {%q, colorbar=%v}, want {%q, colorbar=%v}",
				i, p.Title, p.Colorbar, w.title, w.colorbar)
		}
		if got := p.Image.Bounds(); got != image.Rect(0, 0, 4, 3) {
			t.Errorf("Panels[%d] image bounds = %v, want 4x3", i, got)
		}
	}

	// R spans [0, 1]; G and B are constant zero after normalization.
	if r := fig.Panels[0]; r.Lo != 0 || r.Hi < 0.99 || r.Hi > 1 {
		t.Errorf("R range = [%v, %v], want [0, ~1]", r.Lo, r.Hi)
	}
	if g := fig.Panels[1]; g.Lo != 0 || g.Hi != 1 {
		t.Errorf("G range = [%v, %v], want widened [0, 1]", g.Lo, g.Hi)
	}
}

func TestNewFigureOptions(t *testing.T) {
	m, err := colormap.ByName("viridis")
	if err != nil {
		t.Fatal(err)
	}
	fig := testFigure(t, 2, 2, WithColormap(m))
	if fig.Title != "EXR Channels with Viridis Colormap + Combined RGB" {
		t.Errorf("Title = %q", fig.Title)
	}

	fig = testFigure(t, 2, 2, WithTitle("custom"))
	if fig.Title != "custom" {
		t.Errorf("Title = %q, want custom", fig.Title)
	}
}

func TestNewFigureErrors(t *testing.T) {
	s := &channel.Set{R: channel.New(2, 2), G: channel.New(2, 2), B: channel.New(2, 2)}
	comp, _ := channel.Stack(s)

	other := &channel.Set{R: channel.New(3, 2), G: channel.New(3, 2), B: channel.New(3, 2)}
	if _, err := NewFigure(other, comp); !errors.Is(err, channel.ErrShapeMismatch) {
		t.Errorf("mismatched composite error = %v, want ErrShapeMismatch", err)
	}

	empty := &channel.Set{R: channel.New(0, 0), G: channel.New(0, 0), B: channel.New(0, 0)}
	emptyComp, _ := channel.Stack(empty)
	if _, err := NewFigure(empty, emptyComp); !errors.Is(err, ErrEmptyFigure) {
		t.Errorf("empty set error = %v, want ErrEmptyFigure", err)
	}
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		cmap string
		want string
	}{
		{"plasma", "EXR Channels with Plasma Colormap + Combined RGB"},
		{"gray", "EXR Channels with Gray Colormap + Combined RGB"},
		{"", "EXR Channels with  Colormap + Combined RGB"},
	}
	for _, tt := range tests {
		if got := DefaultTitle(tt.cmap); got != tt.want {
			t.Errorf("DefaultTitle(%q) = %q, want %q", tt.cmap, got, tt.want)
		}
	}
}

func TestColorize(t *testing.T) {
	m, _ := colormap.ByName("gray")
	c, err := channel.FromRows([][]float32{{0, 5, 10}})
	if err != nil {
		t.Fatal(err)
	}
	img := Colorize(c, m, 0, 10)
	if got := img.RGBAAt(0, 0); got != m.At(0) {
		t.Errorf("pixel 0 = %v, want %v", got, m.At(0))
	}
	if got := img.RGBAAt(2, 0); got != m.At(1) {
		t.Errorf("pixel 2 = %v, want %v", got, m.At(1))
	}
}

func TestArrangeNoOverlap(t *testing.T) {
	fig := testFigure(t, 64, 32)
	sizes := []struct{ w, h int }{
		{1800, 520},
		{800, 600},
		{400, 1200},
		{2400, 300},
	}
	for _, sz := range sizes {
		l := Arrange(sz.w, sz.h, fig.Panels)
		if len(l.Cells) != 4 {
			t.Fatalf("%dx%d: %d cells, want 4", sz.w, sz.h, len(l.Cells))
		}
		canvas := Rect{W: float64(sz.w), H: float64(sz.h)}
		var boxes []Rect
		for i, c := range l.Cells {
			if c.Image.X < canvas.X || c.Image.Right() > canvas.Right() ||
				c.Image.Y < canvas.Y || c.Image.Bottom() > canvas.Bottom() {
				t.Errorf("%dx%d: cell %d image %v outside canvas", sz.w, sz.h, i, c.Image)
			}
			boxes = append(boxes, c.Image)
			if fig.Panels[i].Colorbar {
				if c.Colorbar.H != c.Image.H {
					t.Errorf("%dx%d: cell %d colorbar height %v, image %v", sz.w, sz.h, i, c.Colorbar.H, c.Image.H)
				}
				boxes = append(boxes, c.Colorbar)
			} else if c.Colorbar != (Rect{}) {
				t.Errorf("%dx%d: cell %d has unexpected colorbar %v", sz.w, sz.h, i, c.Colorbar)
			}
		}
		for i := range boxes {
			for j := i + 1; j < len(boxes); j++ {
				if boxes[i].overlaps(boxes[j]) {
					t.Errorf("%dx%d: %v overlaps %v", sz.w, sz.h, boxes[i], boxes[j])
				}
			}
		}
	}
}

func TestArrangeKeepsAspect(t *testing.T) {
	fig := testFigure(t, 200, 100)
	l := Arrange(1800, 520, fig.Panels)
	for i, c := range l.Cells {
		ratio := c.Image.W / c.Image.H
		if ratio < 1.9 || ratio > 2.1 {
			t.Errorf("cell %d aspect = %.3f, want ~2", i, ratio)
		}
	}
}

func TestTicks(t *testing.T) {
	ticks := Ticks(0, 1)
	if len(ticks) < 2 {
		t.Fatalf("Ticks(0, 1) = %v, want several", ticks)
	}
	for _, tk := range ticks {
		if tk.Label == "" || tk.Value < 0 || tk.Value > 1 {
			t.Errorf("tick %+v outside [0, 1] or unlabelled", tk)
		}
	}
	if got := Ticks(1, 1); got != nil {
		t.Errorf("Ticks(1, 1) = %v, want nil", got)
	}
}

func TestGradient(t *testing.T) {
	m, _ := colormap.ByName("gray")
	img := gradient(m, 3, 10)
	if got := img.RGBAAt(1, 0); got != m.At(1) {
		t.Errorf("top = %v, want %v", got, m.At(1))
	}
	if got := img.RGBAAt(1, 9); got != m.At(0) {
		t.Errorf("bottom = %v, want %v", got, m.At(0))
	}
}

func TestRender(t *testing.T) {
	fig := testFigure(t, 8, 6)
	img, err := Render(fig, 640, 240)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 640, 240) {
		t.Fatalf("bounds = %v, want 640x240", got)
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(0, img.Bounds().Dy()-1); got != white {
		t.Errorf("corner = %v, want white background", got)
	}

	// The centre of the composite image is drawn, not background.
	l := Arrange(640, 240, fig.Panels)
	c := l.Cells[3].Image
	if got := img.RGBAAt(int(c.X+c.W/2), int(c.Y+c.H/2)); got == white {
		t.Errorf("composite centre is background")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(&Figure{}, 100, 100); !errors.Is(err, ErrEmptyFigure) {
		t.Errorf("empty figure error = %v, want ErrEmptyFigure", err)
	}
	if _, err := Render(testFigure(t, 2, 2), 0, 100); err == nil {
		t.Error("zero width should fail")
	}
}
