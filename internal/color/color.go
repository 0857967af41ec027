// Package color converts fixture color specifications to a canonical HSV
// working representation and back to RGB bytes for output.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HSV is the canonical working color. H in [0,360), S and V in [0,1].
type HSV struct {
	H, S, V float64
}

// RGB is an 8-bit output triple.
type RGB struct {
	R, G, B uint8
}

// ParseError reports a color specification that matched no recognized form.
type ParseError struct {
	Spec string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized color %q", e.Spec)
}

// Parse resolves a color specification into HSV. Recognized forms, tried in
// order: a named color keyword, "rgb(r,g,b)" with 0-255 components,
// "hsv(h,s,v)" with h in degrees and s/v in percent, and a "0x"-prefixed
// RRGGBB hex value.
func Parse(spec string) (HSV, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := names[s]; ok {
		return c.HSV(), nil
	}
	switch {
	case strings.HasPrefix(s, "rgb("):
		if c, ok := parseRGB(s); ok {
			return c.HSV(), nil
		}
	case strings.HasPrefix(s, "hsv("):
		if c, ok := parseHSV(s); ok {
			return c, nil
		}
	case strings.HasPrefix(s, "0x"):
		if v, err := strconv.ParseUint(s[2:], 16, 32); err == nil && len(s) == 8 {
			return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}.HSV(), nil
		}
	}
	return HSV{}, &ParseError{Spec: spec}
}

func args(s, prefix string) ([]string, bool) {
	if !strings.HasSuffix(s, ")") {
		return nil, false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")"), ",")
	if len(parts) != 3 {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseRGB(s string) (RGB, bool) {
	parts, ok := args(s, "rgb(")
	if !ok {
		return RGB{}, false
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return RGB{}, false
		}
		v[i] = uint8(n)
	}
	return RGB{v[0], v[1], v[2]}, true
}

func parseHSV(s string) (HSV, bool) {
	parts, ok := args(s, "hsv(")
	if !ok {
		return HSV{}, false
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return HSV{}, false
		}
		v[i] = f
	}
	h := math.Mod(v[0], 360)
	if h < 0 {
		h += 360
	}
	return HSV{H: h, S: clamp01(v[1] / 100), V: clamp01(v[2] / 100)}, true
}

// RGB converts to 8-bit RGB. Total: every HSV maps to some triple.
func (c HSV) RGB() RGB {
	h := math.Mod(c.H, 360) / 60
	i := int(h) % 6
	f := h - math.Floor(h)
	v := clamp01(c.V)
	s := clamp01(c.S)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{byteOf(r), byteOf(g), byteOf(b)}
}

// HSV converts to the canonical working representation.
func (c RGB) HSV() HSV {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	d := max - min

	var h float64
	switch {
	case d == 0:
		h = 0
	case max == r:
		h = math.Mod((g-b)/d, 6)
	case max == g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}

	s := 0.0
	if max > 0 {
		s = d / max
	}
	return HSV{H: h, S: s, V: max}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func byteOf(f float64) uint8 {
	n := math.Round(f * 255)
	if n <= 0 {
		return 0
	}
	if n >= 255 {
		return 255
	}
	return uint8(n)
}
