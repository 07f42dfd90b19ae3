// Package rhyme implements the rhyme dictionary: an immutable,
// bidirectional index between characters and the rhyme records they
// belong to. A lookup also succeeds through a character's Simplified or
// Traditional counterpart, even when only one script's form was present
// in the source the dictionary was built from.
package rhyme

import (
	"github.com/qiuyun/cipai-meter/internal/script"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

// ID is a rhyme record's stable identifier.
type ID int

// Record is a named equivalence class of characters sharing a single
// BasicTone, optionally belonging to a cross-rhyme Group. Equality and
// hashing are by ID only; records are created once at dictionary load
// and shared thereafter, never mutated.
type Record struct {
	ID    ID
	Name  string
	Group *string // nil means "do not enforce cross-rhyme grouping"
	Tone  tone.BasicTone
}

// SameGroup reports whether two records share a non-nil group label.
// Two records with no group label (both nil) are NOT considered to
// share a group — only slots that both carry a concrete group label are
// constrained against each other.
func (r *Record) SameGroup(other *Record) bool {
	if r.Group == nil || other.Group == nil {
		return false
	}
	return *r.Group == *other.Group
}

// Dict is the immutable, read-only rhyme dictionary. Construct with
// Build; a zero-value Dict is not usable.
type Dict struct {
	byChar      map[rune][]*Record
	byRhyme     map[ID][]rune
	records     []*Record
	recordCount int
}

// Build constructs a Dict from a parallel pair of records and the
// character lists each one covers: chars[i] belongs to records[i]. Records
// are shared, never copied; callers must not mutate them after Build
// returns.
func Build(records []*Record, chars [][]rune) *Dict {
	d := &Dict{
		byChar:  make(map[rune][]*Record),
		byRhyme: make(map[ID][]rune),
	}
	n := len(records)
	if len(chars) < n {
		n = len(chars)
	}
	for i := 0; i < n; i++ {
		rec := records[i]
		for _, c := range chars[i] {
			d.byChar[c] = append(d.byChar[c], rec)
			for _, v := range script.RuneVariants(c) {
				if v == c {
					continue
				}
				d.byChar[v] = appendUnique(d.byChar[v], rec)
			}
		}
		d.byRhyme[rec.ID] = append(d.byRhyme[rec.ID], chars[i]...)
	}
	d.records = records[:n]
	d.recordCount = n
	return d
}

// appendUnique appends rec to list unless it (by ID) is already present, so
// a character whose own script variant happens to coincide with a record
// it's already a member of isn't listed twice.
func appendUnique(list []*Record, rec *Record) []*Record {
	for _, r := range list {
		if r.ID == rec.ID {
			return list
		}
	}
	return append(list, rec)
}

// Entries returns the dictionary's records together with the characters
// each one covers, in load order. Intended for a host that needs to
// serialize the dictionary (e.g. internal/store's cache), not for lookup.
func (d *Dict) Entries() ([]*Record, [][]rune) {
	chars := make([][]rune, len(d.records))
	for i, rec := range d.records {
		chars[i] = d.byRhyme[rec.ID]
	}
	return d.records, chars
}

// RecordCount returns the number of records the dictionary was built
// from, for host-level reporting (e.g. a stats endpoint).
func (d *Dict) RecordCount() int {
	return d.recordCount
}

// RhymesOf returns the rhyme records c belongs to, in load order. Empty if
// c is unknown to the dictionary.
func (d *Dict) RhymesOf(c rune) []*Record {
	return d.byChar[c]
}

// CharsOf returns the characters belonging to the rhyme record id. Empty
// if id is unknown.
func (d *Dict) CharsOf(id ID) []rune {
	return d.byRhyme[id]
}

// HasTone reports whether c has some rhyme record whose BasicTone matches
// want. This is the tone-match primitive the per-character scoring rule
// uses.
func (d *Dict) HasTone(c rune, want tone.BasicTone) bool {
	for _, r := range d.byChar[c] {
		if r.Tone == want {
			return true
		}
	}
	return false
}

// BelongsTo reports whether c is a member of rhyme record rec (identity
// compared by ID).
func (d *Dict) BelongsTo(c rune, rec *Record) bool {
	if rec == nil {
		return false
	}
	for _, r := range d.byChar[c] {
		if r.ID == rec.ID {
			return true
		}
	}
	return false
}
