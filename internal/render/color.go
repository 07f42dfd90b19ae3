// Package render turns a Template and an AlignmentResult into
// human-readable text — plain or ANSI-colorized. Nothing here is part of
// the matching core: internal/meter returns classifications only, and
// rendering them into text is left to the host.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
)

// goldenRatioConjugate spaces successive hues as far apart as possible
// around the color wheel, so adjacent rhyme-group numbers never land on
// visually similar colors.
const goldenRatioConjugate = 0.618034

// ContrastingColor assigns rhyme-group n a distinct, well-separated RGB
// color: hue walks the golden-ratio sequence, saturation and lightness
// alternate across n so low hue-distance groups still read as different.
func ContrastingColor(n int) (r, g, b uint8) {
	hue := math.Mod(float64(n)*goldenRatioConjugate, 1.0) * 360.0

	var saturation float64
	switch n % 3 {
	case 0:
		saturation = 0.9
	case 1:
		saturation = 1.0
	default:
		saturation = 0.8
	}

	lightness := 0.65
	if n%2 == 0 {
		lightness = 0.5
	}

	return hslToRGB(hue, saturation, lightness)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hk := h / 360.0
	r := hueToChannel(p, q, hk+1.0/3.0)
	g := hueToChannel(p, q, hk)
	b := hueToChannel(p, q, hk-1.0/3.0)

	return uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255))
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// ToneLegend explains how rhyme groups are shown. Plain, it notes the
// parenthesized rhyme annotation; colorized, it names the glyph
// convention (平/仄/中) and the color assigned to each group number
// 0..maxRhymeGroup (group 0 is listed even for a template without rhyme
// slots, since MaxRhymeGroup reports 0 then).
func ToneLegend(maxRhymeGroup int, colorize bool) string {
	if !colorize {
		return "格律说明：如是韵脚，括号内标注声部"
	}

	legend := "格律说明：平=平声 仄=仄声 中=平仄皆可"
	if maxRhymeGroup < 0 {
		return legend
	}

	parts := make([]string, 0, maxRhymeGroup+1)
	for n := 0; n <= maxRhymeGroup; n++ {
		r, g, b := ContrastingColor(n)
		parts = append(parts, color.RGB(int(r), int(g), int(b)).Sprintf("韵%d", n))
	}
	return legend + "。韵脚使用不同颜色表示：" + strings.Join(parts, "，")
}

func colorizeTone(text string, rhymeGroup *int) string {
	if rhymeGroup == nil {
		return text
	}
	r, g, b := ContrastingColor(*rhymeGroup)
	return color.RGB(int(r), int(g), int(b)).Sprint(text)
}

func annotatedTone(text string, rhymeGroup *int) string {
	if rhymeGroup == nil {
		return text
	}
	return fmt.Sprintf("%s（韵%d）", text, *rhymeGroup)
}
