// Package cipai defines the immutable template model for a named
// Song-dynasty lyric form.
package cipai

import "github.com/qiuyun/cipai-meter/internal/tone"

// Line is one line of a template's meter: an ordered sequence of slots.
// An empty Line is a structural separator, not a rhyme-bearing line.
type Line []tone.MeterTone

// Template is an immutable cipai definition: a non-empty list of names
// (the first is canonical), an optional variant label distinguishing
// alternate meters of the same cipai, an optional prose description, and
// the ordered meter itself.
type Template struct {
	Names       []string
	Variant     *string
	Description *string
	Meter       []Line
}

// MaxRhymeGroup returns the largest rhyme-group number used anywhere in
// the template's meter, or 0 if the template has no rhyme slots.
func (t *Template) MaxRhymeGroup() int {
	max := 0
	for _, line := range t.Meter {
		for _, slot := range line {
			if slot.RhymeGroup != nil && *slot.RhymeGroup > max {
				max = *slot.RhymeGroup
			}
		}
	}
	return max
}

// Name returns the canonical (first) name, or "" for a malformed template
// with no names.
func (t *Template) Name() string {
	if len(t.Names) == 0 {
		return ""
	}
	return t.Names[0]
}

// NonEmptyLineCount returns the number of lines with at least one slot,
// used to normalise the alignment score.
func (t *Template) NonEmptyLineCount() int {
	n := 0
	for _, line := range t.Meter {
		if len(line) > 0 {
			n++
		}
	}
	return n
}

// SlotRef identifies one physical rhyme-bearing slot by its position in
// the template: line index, then slot index within that line. Two slots
// with an identical (tone, rhyme-group) key but different SlotRefs are
// bound independently by the enumerator — only the shared-label and
// cross-number-distinctness rules relate them, not identity.
type SlotRef struct {
	Line int
	Slot int
}

// RhymeSlot pairs a physical slot location with the enumerator key
// (tone, rhyme-group number) that selects its candidate pool and its
// group-consistency bucket.
type RhymeSlot struct {
	Ref SlotRef
	Key tone.Key
}

// RhymeSlots returns every physical rhyme-bearing slot in document order
// (line ascending, then slot index ascending). This is not deduplicated
// by key: a rhyme-group number repeated across lines names a family of
// independently-bindable slots, not a single shared one.
func (t *Template) RhymeSlots() []RhymeSlot {
	var slots []RhymeSlot
	for li, line := range t.Meter {
		for si, slot := range line {
			if !slot.IsRhymeSlot() {
				continue
			}
			slots = append(slots, RhymeSlot{Ref: SlotRef{Line: li, Slot: si}, Key: slot.KeyOf()})
		}
	}
	return slots
}
