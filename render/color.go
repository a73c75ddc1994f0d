package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Max returns per-channel maximum (non-destructive highlight)
func (dst RGB) Max(src RGB) RGB {
	return RGB{
		R: max(dst.R, src.R),
		G: max(dst.G, src.G),
		B: max(dst.B, src.B),
	}
}

// Add performs additive blend with clamping (light accumulation)
func (dst RGB) Add(src RGB) RGB {
	return RGB{
		R: uint8(min(int(dst.R)+int(src.R), 255)),
		G: uint8(min(int(dst.G)+int(src.G), 255)),
		B: uint8(min(int(dst.B)+int(src.B), 255)),
	}
}

// Scale multiplies every channel by f, clamped
func (dst RGB) Scale(f float64) RGB {
	return RGB{R: clamp(float64(dst.R) * f), G: clamp(float64(dst.G) * f), B: clamp(float64(dst.B) * f)}
}

// Tcell converts to a true-color tcell.Color
func (dst RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(dst.R), int32(dst.G), int32(dst.B))
}

// FromColorful quantizes a colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// FromHex parses "#rrggbb", black on a malformed value
func FromHex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBBlack
	}
	return FromColorful(c)
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Theme holds the palette for day or night
type Theme struct {
	Background RGB
	Grid       RGB
	Curve      RGB
	Text       RGB
	Player     RGB
}

var (
	ThemeDay = Theme{
		Background: RGB{135, 206, 235},
		Grid:       RGB{110, 180, 210},
		Curve:      RGB{70, 120, 160},
		Text:       RGB{20, 30, 50},
		Player:     RGBWhite,
	}
	ThemeNight = Theme{
		Background: RGB{4, 6, 18},
		Grid:       RGB{18, 22, 40},
		Curve:      RGB{40, 60, 110},
		Text:       RGB{200, 210, 230},
		Player:     RGB{255, 255, 180},
	}
)

// ThemeFor selects the palette
func ThemeFor(night bool) Theme {
	if night {
		return ThemeNight
	}
	return ThemeDay
}
