package ast

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"
)

// Color is an RGB triplet with alpha in [0, 1].
type Color struct {
	R, G, B int
	A       float64
}

// NewColor clamps its components.
func NewColor(r, g, b int, a float64) *Color {
	return &Color{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: clampUnit(a)}
}

// ParseHexColor accepts "#abc" and "#aabbcc" (the '#' is optional).
func ParseHexColor(s string) (*Color, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return &Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff), A: 1}, true
}

// ColorFromHSL converts hue in degrees, saturation and lightness in [0, 1].
func ColorFromHSL(h, s, l, a float64) *Color {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	r, g, b := colorful.Hsl(h, clampUnit(s), clampUnit(l)).Clamped().RGB255()
	return &Color{R: int(r), G: int(g), B: int(b), A: clampUnit(a)}
}

// HSL returns hue in degrees and saturation/lightness in [0, 1].
func (c *Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

func (c *Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Mix blends c and other; weight is the share of c in [0, 1].
func (c *Color) Mix(other *Color, weight float64) *Color {
	weight = clampUnit(weight)
	r, g, b := other.colorful().BlendRgb(c.colorful(), weight).Clamped().RGB255()
	a := c.A*weight + other.A*(1-weight)
	return &Color{R: int(r), G: int(g), B: int(b), A: a}
}

// WithAlpha returns a copy with alpha a.
func (c *Color) WithAlpha(a float64) *Color {
	cp := *c
	cp.A = clampUnit(a)
	return &cp
}

func (c *Color) String() string {
	if c.A != 1 {
		alpha := decimal.NewFromFloat(c.A).Round(3).String()
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, alpha)
	}
	hex := fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	if hex[0] == hex[1] && hex[2] == hex[3] && hex[4] == hex[5] {
		return "#" + string([]byte{hex[0], hex[2], hex[4]})
	}
	return "#" + hex
}

func clampByte(v int) int {
	return max(0, min(255, v))
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}
