package render

import (
	"strings"

	"github.com/qiuyun/cipai-meter/internal/cipai"
)

// DisplayTemplate renders a template's names, variant, description, and
// meter. With colorize, rhyme-group numbers are shown as color instead of
// a parenthesized digit, matching the terminal's rendering convention.
func DisplayTemplate(tpl *cipai.Template, colorize bool) string {
	var b strings.Builder

	b.WriteString(strings.Join(tpl.Names, " / "))
	if tpl.Variant != nil {
		b.WriteString("（" + *tpl.Variant + "）")
	}
	b.WriteByte('\n')

	if tpl.Description != nil {
		b.WriteString(*tpl.Description)
		b.WriteByte('\n')
	}

	for _, line := range tpl.Meter {
		if len(line) == 0 {
			continue
		}
		for _, slot := range line {
			glyph := slot.Type.String()
			if colorize {
				b.WriteString(colorizeTone(glyph, slot.RhymeGroup))
			} else {
				b.WriteString(annotatedTone(glyph, slot.RhymeGroup))
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(ToneLegend(tpl.MaxRhymeGroup(), colorize))
	return b.String()
}
