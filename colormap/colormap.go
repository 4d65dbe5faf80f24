// Package colormap maps scalar values in [0,1] to colours.
//
// The built-in maps are the perceptually uniform sequential maps plasma,
// viridis, inferno and magma, sampled at eleven evenly spaced anchors and
// expanded to a 256-entry lookup table, plus a linear gray ramp.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknown is returned by ByName for a map that is not registered.
var ErrUnknown = errors.New("colormap: unknown colormap")

// Size is the number of entries in every lookup table.
const Size = 256

// Map is a sampled colormap.
type Map struct {
	name string
	lut  [Size]color.RGBA
}

// New builds a map by blending evenly spaced anchor colours in RGB.
// At least two anchors are required.
func New(name string, anchors ...colorful.Color) (*Map, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("colormap %s: need at least 2 anchors, got %d", name, len(anchors))
	}
	m := &Map{name: name}
	segments := float64(len(anchors) - 1)
	for i := range m.lut {
		pos := float64(i) / (Size - 1) * segments
		k := int(pos)
		if k >= len(anchors)-1 {
			k = len(anchors) - 2
		}
		c := anchors[k].BlendRgb(anchors[k+1], pos-float64(k)).Clamped()
		r, g, b := c.RGB255()
		m.lut[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return m, nil
}

// Name returns the registered name of the map.
func (m *Map) Name() string {
	return m.name
}

// At returns the colour for v. Values outside [0,1] are clamped and NaN maps
// to the low end.
func (m *Map) At(v float64) color.RGBA {
	return m.lut[index(v)]
}

// Scaled returns the colour for v on the range [lo, hi].
// A degenerate range maps everything to the low end.
func (m *Map) Scaled(v, lo, hi float64) color.RGBA {
	if !(hi > lo) {
		return m.lut[0]
	}
	return m.At((v - lo) / (hi - lo))
}

func index(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return Size - 1
	}
	return int(v*(Size-1) + 0.5)
}

var registry = map[string]*Map{}

func register(name string, hexes ...string) {
	anchors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap %s: %v", name, err))
		}
		anchors[i] = c
	}
	m, err := New(name, anchors...)
	if err != nil {
		panic(err)
	}
	registry[name] = m
}

func init() {
	register("plasma",
		"#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778",
		"#e16462", "#f2844b", "#fca636", "#fcce25", "#f0f921")
	register("viridis",
		"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
		"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725")
	register("inferno",
		"#000004", "#160b39", "#420a68", "#6a176e", "#932667", "#bc3754",
		"#dd513a", "#f37819", "#fca50a", "#f6d746", "#fcffa4")
	register("magma",
		"#000004", "#140e36", "#3b0f70", "#641a80", "#8c2981", "#b73779",
		"#de4968", "#f7705c", "#fe9f6d", "#fecf92", "#fcfdbf")
	register("gray", "#000000", "#ffffff")
}

// Default is the map used when none is selected.
const Default = "plasma"

// ByName returns a registered map. Names are case-insensitive.
func ByName(name string) (*Map, error) {
	m, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names lists the registered maps in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
