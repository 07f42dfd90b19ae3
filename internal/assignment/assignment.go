// Package assignment implements the rhyme-assignment enumerator: the
// finite depth-first search over bindings from a template's distinct
// rhyme-group slots to concrete rhyme records.
package assignment

import (
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

// Assignment maps every physical rhyme-bearing slot of a template (by
// SlotRef, not by its (tone, rhyme-group) key) to either a concrete rhyme
// record or "unbound" (represented by a nil value). Every ref returned by
// (*cipai.Template).RhymeSlots is always present, bound or not — callers
// must not treat a missing ref the same as an explicit unbound entry. Two
// slots sharing a rhyme-group number are bound independently; only the
// shared-label and cross-number-distinctness rules below relate them.
type Assignment map[cipai.SlotRef]*rhyme.Record

// CandidateRhymes partitions, by BasicTone, the rhyme records that any of
// lastChars could belong to. This is the "possible rhymes" input the
// enumerator needs: the union, over every sentence's last character, of
// the rhymes that character could plausibly close.
func CandidateRhymes(dict *rhyme.Dict, lastChars []rune) (ping, ze []*rhyme.Record) {
	seen := make(map[rhyme.ID]bool)
	for _, c := range lastChars {
		for _, r := range dict.RhymesOf(c) {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			switch r.Tone {
			case tone.Ping:
				ping = append(ping, r)
			case tone.Ze:
				ze = append(ze, r)
			}
		}
	}
	return ping, ze
}

// Enumerate produces every valid rhyme assignment for tpl's rhyme slots,
// given the pool of tone-polarity-appropriate candidate rhymes derived
// from the input text via CandidateRhymes. If tpl has no rhyme slots, the
// result is a single candidate: the empty assignment, never zero
// candidates.
func Enumerate(tpl *cipai.Template, pingCandidates, zeCandidates []*rhyme.Record) []Assignment {
	slots := tpl.RhymeSlots()

	e := &enumerator{
		slots:   slots,
		ping:    pingCandidates,
		ze:      zeCandidates,
		partial: make(Assignment, len(slots)),
		used:    make(map[rhyme.ID]int),
		groups:  make(map[int]groupBinding),
	}
	e.search(0)
	return e.results
}

type groupBinding struct {
	set   bool
	label *string
}

type enumerator struct {
	slots   []cipai.RhymeSlot
	ping    []*rhyme.Record
	ze      []*rhyme.Record
	partial Assignment
	used    map[rhyme.ID]int // record ID -> rhyme-group number it is bound to
	groups  map[int]groupBinding
	results []Assignment
}

func (e *enumerator) search(idx int) {
	if idx == len(e.slots) {
		snapshot := make(Assignment, len(e.partial))
		for ref, v := range e.partial {
			snapshot[ref] = v
		}
		e.results = append(e.results, snapshot)
		return
	}

	slot := e.slots[idx]
	ref := slot.Ref
	number := slot.Key.RhymeGroup

	// Branch 1: unbound is always available, for every slot (rule 4).
	e.partial[ref] = nil
	e.search(idx + 1)

	// Branch 2: every currently-available tone-matching concrete rhyme.
	pool := e.ping
	if slot.Key.Type == tone.TypeZe {
		pool = e.ze
	}
	for _, rec := range pool {
		if boundNum, bound := e.used[rec.ID]; bound && boundNum != number {
			// rule 3: distinctness across numbers.
			continue
		}
		gb := e.groups[number]
		if gb.set && !sameLabel(gb.label, rec.Group) {
			// rule 2: shared group number requires shared group label.
			continue
		}

		prevUsedNum, hadUsed := e.used[rec.ID]
		prevGroup := e.groups[number]

		e.partial[ref] = rec
		e.used[rec.ID] = number
		e.groups[number] = groupBinding{set: true, label: rec.Group}

		e.search(idx + 1)

		e.groups[number] = prevGroup
		if hadUsed {
			e.used[rec.ID] = prevUsedNum
		} else {
			delete(e.used, rec.ID)
		}
	}
}

func sameLabel(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
