package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/qiuyun/cipai-meter/internal/meter"
)

// classificationColor returns the color a matched character's
// Classification is rendered in: green for a full match, yellow for a
// tone-only match, red for no match at all.
func classificationColor(c meter.Classification) *color.Color {
	switch c {
	case meter.AllMatch:
		return color.New(color.FgGreen)
	case meter.ToneOnly:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// DisplayResult renders one BestMatch/MatchMeter outcome: the score, then
// every segment in order — matched lines with each character colored by
// its Classification, surplus sentences marked as extra text, and
// template lines the input never reached marked as missing.
func DisplayResult(result meter.AlignmentResult, colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "匹配度：%.2f%%\n", result.Score*100)

	sentenceRunes := make(map[int][]rune)
	for _, seg := range result.Segments {
		if seg.Kind == meter.SegmentMatched {
			sentenceRunes[seg.LineIndex] = []rune(seg.Sentence)
		}
	}

	for _, seg := range result.Segments {
		switch seg.Kind {
		case meter.SegmentExtraText:
			fmt.Fprintf(&b, "（衬字）%s\n", seg.Sentence)

		case meter.SegmentExtraLine:
			b.WriteString("（缺句）")
			for _, slot := range seg.Line {
				b.WriteString(slot.Type.String())
			}
			b.WriteByte('\n')

		case meter.SegmentMatched:
			runes := sentenceRunes[seg.LineIndex]
			for i, class := range seg.Classes {
				var ch string
				if i < len(runes) {
					ch = string(runes[i])
				} else {
					ch = "□"
				}
				if colorize {
					b.WriteString(classificationColor(class).Sprint(ch))
				} else {
					b.WriteString(ch)
				}
			}
			if !colorize {
				b.WriteString(" (" + classesSummary(seg.Classes) + ")")
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func classesSummary(classes []meter.Classification) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
