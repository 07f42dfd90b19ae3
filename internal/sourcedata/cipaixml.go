package sourcedata

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/qiuyun/cipai-meter/internal/apierr"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

// stripGlyphs are structural annotations the core never sees; they are
// removed, along with whitespace, before the meter body is tokenised.
const stripGlyphs = "{}｛｝[]［］（）ˇ～！＃"

const lineDelimiters = "。，、\n"

var markerGroups = map[rune]int{
	'％': 0,
	'＊': 0,
	'＆': 1,
	'☆': 1,
	'★': 2,
}

type cipaiLibraryXML struct {
	XMLName xml.Name   `xml:"词牌库"`
	Entries []cipaiXML `xml:"词牌"`
}

type cipaiXML struct {
	Names       []string  `xml:"名称"`
	Description *string   `xml:"说明"`
	Meters      []geLuXML `xml:"格律"`
}

type geLuXML struct {
	Variant *string `xml:"说明,attr"`
	Text    string  `xml:",chardata"`
}

// ParseCipaiLibrary parses a <词牌库> document containing one or more
// <词牌> entries, each possibly with several <格律> variant meters, into
// one Template per variant.
func ParseCipaiLibrary(data []byte) ([]*cipai.Template, error) {
	var lib cipaiLibraryXML
	if err := xml.Unmarshal(data, &lib); err != nil {
		return nil, apierr.MalformedTemplate(fmt.Sprintf("invalid XML: %v", err))
	}

	var templates []*cipai.Template
	for _, entry := range lib.Entries {
		parsed, err := parseCipaiEntry(entry)
		if err != nil {
			return nil, err
		}
		templates = append(templates, parsed...)
	}
	return templates, nil
}

func parseCipaiEntry(entry cipaiXML) ([]*cipai.Template, error) {
	if len(entry.Names) == 0 {
		return nil, apierr.MalformedTemplate("词牌 element has no 名称")
	}
	if len(entry.Meters) == 0 {
		return nil, apierr.MalformedTemplate("missing 格律 text")
	}

	var templates []*cipai.Template
	for _, m := range entry.Meters {
		meter, err := parseMeterBody(m.Text)
		if err != nil {
			return nil, err
		}
		templates = append(templates, &cipai.Template{
			Names:       entry.Names,
			Variant:     m.Variant,
			Description: entry.Description,
			Meter:       meter,
		})
	}
	return templates, nil
}

func parseMeterBody(body string) ([]cipai.Line, error) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripGlyphs, r) {
			return -1
		}
		if r == ' ' || r == '\t' || r == '\r' {
			return -1
		}
		return r
	}, body)

	if cleaned == "" {
		return nil, apierr.MalformedTemplate("missing 格律 text")
	}

	var lines []cipai.Line
	var current cipai.Line
	runes := []rune(cleaned)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if strings.ContainsRune(lineDelimiters, r) {
			lines = append(lines, current)
			current = nil
			continue
		}

		slotType, ok := toneGlyph(r)
		if !ok {
			return nil, apierr.MalformedTemplate(fmt.Sprintf("unknown glyph %q", string(r)))
		}

		slot := tone.MeterTone{Type: slotType}

		if i+1 < len(runes) {
			if number, ok := rhymeMarker(runes[i+1]); ok {
				if slotType == tone.TypeZhong {
					return nil, apierr.MalformedTemplate("rhyme marker follows a Zhong (＋) glyph")
				}
				n := number
				slot.RhymeGroup = &n
				i++
			}
		}

		current = append(current, slot)
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, current)
	}

	return lines, nil
}

func toneGlyph(r rune) (tone.MeterToneType, bool) {
	switch r {
	case '－':
		return tone.TypePing, true
	case '│', '去':
		return tone.TypeZe, true
	case '＋':
		return tone.TypeZhong, true
	default:
		return 0, false
	}
}

func rhymeMarker(r rune) (int, bool) {
	if n, ok := markerGroups[r]; ok {
		return n, true
	}
	if r >= 'a' && r <= 'z' {
		return int(r-'a') + 1, true
	}
	return 0, false
}
