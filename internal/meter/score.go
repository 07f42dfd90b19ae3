package meter

import (
	"github.com/qiuyun/cipai-meter/internal/assignment"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
)

// Classification labels a single aligned character.
type Classification int

const (
	// AllMatch means both the tone demand and (if the slot is rhyme-bearing)
	// the rhyme assignment are satisfied.
	AllMatch Classification = iota
	// ToneOnly means the tone demand is satisfied but the rhyme is not
	// (only possible at a rhyme slot, bound or unbound).
	ToneOnly
	// NoMatch means the tone constraint is violated, or the index falls
	// past the end of either the sentence or the line.
	NoMatch
)

func (c Classification) String() string {
	switch c {
	case AllMatch:
		return "all-match"
	case ToneOnly:
		return "tone-only"
	default:
		return "no-match"
	}
}

// scoreLine scores one sentence against template line lineIdx under a
// fixed rhyme assignment: each character contributes 1.0 for a full
// tone-and-rhyme match, 0.8 for tone alone, 0 otherwise. N is
// max(len(sentence), len(line)); indices beyond either side classify
// NoMatch and contribute nothing. Returns the sum divided by N (so a line
// scores in [0, 1]) and the per-index classification, sized N.
func scoreLine(dict *rhyme.Dict, sentence []rune, line cipai.Line, lineIdx int, asn assignment.Assignment) (raw float64, classes []Classification) {
	n := len(sentence)
	if len(line) > n {
		n = len(line)
	}
	if n == 0 {
		return 0, nil
	}

	classes = make([]Classification, n)
	for i := 0; i < n; i++ {
		if i >= len(sentence) || i >= len(line) {
			classes[i] = NoMatch
			continue
		}

		c := sentence[i]
		slot := line[i]

		var toneMatch bool
		if basic, ok := slot.Type.Basic(); ok {
			toneMatch = dict.HasTone(c, basic)
		} else {
			toneMatch = true // Zhong always satisfies.
		}

		rhymeMatch := true
		if slot.IsRhymeSlot() {
			rec := asn[cipai.SlotRef{Line: lineIdx, Slot: i}]
			rhymeMatch = rec != nil && dict.BelongsTo(c, rec)
		}

		switch {
		case toneMatch && rhymeMatch:
			classes[i] = AllMatch
			raw += 1.0
		case toneMatch:
			classes[i] = ToneOnly
			raw += 0.8
		default:
			classes[i] = NoMatch
		}
	}
	return raw / float64(n), classes
}
