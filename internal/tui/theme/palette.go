package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Available   lipgloss.Color
	Erase       lipgloss.Color
	Warning     lipgloss.Color

	// Cell backgrounds. Alt variants shade every other hour.
	AvailableBg    lipgloss.Color
	AvailableBgAlt lipgloss.Color
	EmptyBg        lipgloss.Color
	EmptyBgAlt     lipgloss.Color
	FillPreviewBg  lipgloss.Color
	ErasePreviewBg lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnAvailable lipgloss.Color
	TextOnWarning   lipgloss.Color

	ModalBg     lipgloss.Color
	ModalBorder lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := isLightTheme(t.Bg)
	availableBg := cellBg(t.Available, t.Bg, light)
	emptyBgAlt := blendColors(t.Bg, t.BgHighlight, 0.5)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Available:   lipgloss.Color(t.Available),
		Erase:       lipgloss.Color(t.Erase),
		Warning:     lipgloss.Color(t.Warning),

		AvailableBg:    lipgloss.Color(availableBg),
		AvailableBgAlt: lipgloss.Color(alternateShade(availableBg, light)),
		EmptyBg:        lipgloss.Color(t.Bg),
		EmptyBgAlt:     lipgloss.Color(emptyBgAlt),
		FillPreviewBg:  lipgloss.Color(previewBg(t.Available, t.Bg, light)),
		ErasePreviewBg: lipgloss.Color(previewBg(t.Erase, t.Bg, light)),

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnAvailable: lipgloss.Color(chooseTextColor(availableBg, t.Bg, t.Fg)),
		TextOnWarning:   lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		ModalBg:     lipgloss.Color(coalesce(t.ModalBg, t.BgHighlight, t.Bg)),
		ModalBorder: lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
	}
}

type rgb struct {
	r, g, b float64
}

func parseRGB(hex string) (rgb, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{
		r: float64(v >> 16 & 0xff),
		g: float64(v >> 8 & 0xff),
		b: float64(v & 0xff),
	}, true
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.r), channel(c.g), channel(c.b))
}

func channel(v float64) int {
	return int(math.Max(0, math.Min(255, v)))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// cellBg tones the accent down so cell text stays readable.
func cellBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.55)
	}
	return darkenColor(accent, 0.60, 40)
}

func previewBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent, 0.35, 30)
}

// darkenColor scales each channel by factor with a floor so cells stay
// visible on dark backgrounds.
func darkenColor(hex string, factor, floor float64) string {
	c, ok := parseRGB(hex)
	if !ok {
		return hex
	}
	scale := func(v float64) float64 { return math.Max(v*factor, floor) }
	return rgb{scale(c.r), scale(c.g), scale(c.b)}.hex()
}

// alternateShade creates a subtle alternate shade for banded rows.
func alternateShade(hex string, light bool) string {
	if light {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.15)
}

func blendColors(a, b string, ratio float64) string {
	ca, okA := parseRGB(a)
	cb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y float64) float64 { return x*(1-ratio) + y*ratio }
	return rgb{mix(ca.r, cb.r), mix(ca.g, cb.g), mix(ca.b, cb.b)}.hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(c.r) + 0.7152*srgbToLinear(c.g) + 0.0722*srgbToLinear(c.b)
}

func srgbToLinear(c float64) float64 {
	v := c / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
