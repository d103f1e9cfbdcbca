package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Saddle colours, one per lane.
var saddles = [...]string{"#e74c3c", "#3498db", "#f1c40f", "#2ecc71", "#9b59b6"}

var (
	Grass       = color.RGBA{R: 76, G: 140, B: 60, A: 255}
	Turf        = color.RGBA{R: 164, G: 116, B: 72, A: 255}
	Rail        = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	Coat        = color.RGBA{R: 92, G: 58, B: 34, A: 255}
	FinishLight = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	FinishDark  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Highlight   = color.RGBA{R: 255, G: 230, B: 80, A: 255}
)

// Saddle returns the saddle colour of lane i. Lanes past the palette wrap.
func Saddle(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	c, err := ParseHex(saddles[i%len(saddles)])
	if err != nil {
		return FinishDark
	}
	return c
}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 {
		return color.RGBA{}, fmt.Errorf("render: bad colour %q", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: bad colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
