// Package tone defines the tonal vocabulary shared by the rhyme dictionary
// and the cipai template model: the two-way Ping/Ze distinction that real
// characters carry, and the three-way Ping/Ze/Zhong distinction that a
// template slot demands.
package tone

import "fmt"

// BasicTone is the tonal category a concrete character (via a rhyme
// record) actually belongs to.
type BasicTone int

const (
	Ping BasicTone = iota
	Ze
)

func (t BasicTone) String() string {
	switch t {
	case Ping:
		return "平"
	case Ze:
		return "仄"
	default:
		return fmt.Sprintf("BasicTone(%d)", int(t))
	}
}

// MeterToneType is what a template slot demands. Zhong accepts either
// BasicTone.
type MeterToneType int

const (
	TypePing MeterToneType = iota
	TypeZe
	TypeZhong
)

func (t MeterToneType) String() string {
	switch t {
	case TypePing:
		return "平"
	case TypeZe:
		return "仄"
	case TypeZhong:
		return "中"
	default:
		return fmt.Sprintf("MeterToneType(%d)", int(t))
	}
}

// Satisfies reports whether a character's BasicTone satisfies this slot's
// tone demand. Zhong always satisfies.
func (t MeterToneType) Satisfies(b BasicTone) bool {
	switch t {
	case TypeZhong:
		return true
	case TypePing:
		return b == Ping
	case TypeZe:
		return b == Ze
	default:
		return false
	}
}

// Basic returns the BasicTone a definite-polarity slot demands. Zhong has
// no single basic tone and returns ok=false.
func (t MeterToneType) Basic() (b BasicTone, ok bool) {
	switch t {
	case TypePing:
		return Ping, true
	case TypeZe:
		return Ze, true
	default:
		return 0, false
	}
}

// MeterTone is a single slot in a template line: a tone demand plus an
// optional rhyme-group number. A slot with RhymeGroup == nil is not a rhyme
// position. Construction must never pair TypeZhong with a non-nil
// RhymeGroup; callers building templates are responsible for that
// invariant (see cipai.Template).
type MeterTone struct {
	Type       MeterToneType
	RhymeGroup *int
}

// IsRhymeSlot reports whether this slot carries a rhyme-group number.
func (m MeterTone) IsRhymeSlot() bool {
	return m.RhymeGroup != nil
}

// Key identifies a MeterTone for the purposes of the rhyme-assignment
// enumerator: two slots sharing a rhyme-group number but differing in
// tone polarity are distinct keys, since the tone selects which candidate
// pool a slot draws from. The group-label rule still relates every slot
// sharing the number, whatever its tone.
type Key struct {
	Type       MeterToneType
	RhymeGroup int
}

// KeyOf returns the enumerator key for a rhyme slot. Panics if m is not a
// rhyme slot — callers must check IsRhymeSlot first.
func (m MeterTone) KeyOf() Key {
	if m.RhymeGroup == nil {
		panic("tone: KeyOf called on a non-rhyme slot")
	}
	return Key{Type: m.Type, RhymeGroup: *m.RhymeGroup}
}

func (m MeterTone) String() string {
	if m.RhymeGroup == nil {
		return m.Type.String()
	}
	return fmt.Sprintf("%s（韵%d）", m.Type, *m.RhymeGroup)
}
