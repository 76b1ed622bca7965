package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned by ParseColor for tokens that are neither a
// known name nor a hex colour.
var ErrUnknownColor = errors.New("unknown colour")

// namedColors holds the CSS basic colours plus the names used by the
// default palette.
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"orange":  "#ffa500",
	"gold":    "#ffd700",
}

// ParseColor converts a colour token into an opaque RGBA value. Tokens are
// CSS colour names, "#rgb" or "#rrggbb", case-insensitive. "transparent"
// yields the zero colour.
func ParseColor(token string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "transparent" {
		return color.RGBA{}, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, token)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, token)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseColor is like ParseColor but panics on an unknown token.
func MustParseColor(token string) color.RGBA {
	c, err := ParseColor(token)
	if err != nil {
		panic(err)
	}
	return c
}

// Dim blends c toward black by t in [0, 1], in Lab space.
func Dim(c color.RGBA, t float64) color.RGBA {
	if c.A == 0 {
		return c
	}
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.BlendLab(colorful.Color{}, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}
