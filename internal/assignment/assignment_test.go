package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

func intPtr(n int) *int { return &n }

func tpl(lines ...cipai.Line) *cipai.Template {
	return &cipai.Template{Names: []string{"test"}, Meter: lines}
}

func TestEnumerateNoRhymeSlotsYieldsOneEmptyAssignment(t *testing.T) {
	t2 := tpl(cipai.Line{{Type: tone.TypePing}, {Type: tone.TypeZe}})
	results := Enumerate(t2, nil, nil)
	require.Len(t, results, 1)
	assert.Empty(t, results[0])
}

func TestEnumerateSingleSlotUnboundPlusCandidates(t *testing.T) {
	dong := &rhyme.Record{ID: 0, Name: "一东", Tone: tone.Ping}
	dong2 := &rhyme.Record{ID: 1, Name: "二冬", Tone: tone.Ping}
	t2 := tpl(cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}})

	results := Enumerate(t2, []*rhyme.Record{dong, dong2}, nil)
	// unbound + 2 candidates = 3 assignments.
	require.Len(t, results, 3)

	ref := cipai.SlotRef{Line: 0, Slot: 0}
	var sawUnbound, sawDong, sawDong2 bool
	for _, a := range results {
		switch a[ref] {
		case nil:
			sawUnbound = true
		case dong:
			sawDong = true
		case dong2:
			sawDong2 = true
		}
	}
	assert.True(t, sawUnbound)
	assert.True(t, sawDong)
	assert.True(t, sawDong2)
}

func TestEnumerateTonePolarity(t *testing.T) {
	pingRec := &rhyme.Record{ID: 0, Tone: tone.Ping}
	zeRec := &rhyme.Record{ID: 1, Tone: tone.Ze}
	t2 := tpl(cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}})

	// A Ping slot draws only from the ping pool, so the Ze record passed in
	// the ze pool must never be bound to it.
	results := Enumerate(t2, []*rhyme.Record{pingRec}, []*rhyme.Record{zeRec})
	ref := cipai.SlotRef{Line: 0, Slot: 0}
	for _, a := range results {
		if a[ref] != nil {
			assert.Equal(t, tone.Ping, a[ref].Tone)
		}
	}
}

// E3: two physically distinct slots sharing a rhyme-group number may
// resolve to two different records, as long as both carry the same group
// label — each slot is bound independently of the other.
func TestEnumerateSharedGroupLabelAllowsDifferentRecords(t *testing.T) {
	g := "G"
	dong := &rhyme.Record{ID: 0, Name: "一东", Group: &g, Tone: tone.Ping}
	dong2 := &rhyme.Record{ID: 1, Name: "二冬", Group: &g, Tone: tone.Ping}

	t2 := tpl(
		cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}},
		cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}},
	)
	results := Enumerate(t2, []*rhyme.Record{dong, dong2}, nil)

	line0 := cipai.SlotRef{Line: 0, Slot: 0}
	line1 := cipai.SlotRef{Line: 1, Slot: 0}

	var sawSplit bool
	for _, a := range results {
		if a[line0] == dong && a[line1] == dong2 {
			sawSplit = true
		}
	}
	assert.True(t, sawSplit, "expected an assignment binding the two slots to different same-group records")
}

// E4: rhyme-group numbers 0 and 1 must resolve to different rhymes
// (distinctness across numbers, rule 3).
func TestEnumerateDistinctnessAcrossNumbers(t *testing.T) {
	g := "G"
	dong := &rhyme.Record{ID: 0, Name: "一东", Group: &g, Tone: tone.Ping}

	t2 := tpl(
		cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}},
		cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(1)}},
	)
	results := Enumerate(t2, []*rhyme.Record{dong}, nil)

	line0 := cipai.SlotRef{Line: 0, Slot: 0}
	line1 := cipai.SlotRef{Line: 1, Slot: 0}
	for _, a := range results {
		if a[line0] != nil && a[line1] != nil {
			t.Fatalf("both numbers bound to the same rhyme record: %+v", a)
		}
	}
}

func TestEnumerateGroupLabelMismatchRejected(t *testing.T) {
	gA := "A"
	gB := "B"
	recA := &rhyme.Record{ID: 0, Group: &gA, Tone: tone.Ping}
	recB := &rhyme.Record{ID: 1, Group: &gB, Tone: tone.Ze}

	// Two distinct slots sharing rhyme-group number 0, differing in tone,
	// in the same line.
	t2 := tpl(cipai.Line{
		{Type: tone.TypePing, RhymeGroup: intPtr(0)},
		{Type: tone.TypeZe, RhymeGroup: intPtr(0)},
	})
	results := Enumerate(t2, []*rhyme.Record{recA}, []*rhyme.Record{recB})

	pingSlot := cipai.SlotRef{Line: 0, Slot: 0}
	zeSlot := cipai.SlotRef{Line: 0, Slot: 1}
	for _, a := range results {
		if a[pingSlot] != nil && a[zeSlot] != nil {
			t.Fatalf("mismatched group labels both bound concretely: %+v", a)
		}
	}
	// But each individually bound (with the other unbound) must still occur.
	var sawPingBound, sawZeBound bool
	for _, a := range results {
		if a[pingSlot] == recA && a[zeSlot] == nil {
			sawPingBound = true
		}
		if a[zeSlot] == recB && a[pingSlot] == nil {
			sawZeBound = true
		}
	}
	assert.True(t, sawPingBound)
	assert.True(t, sawZeBound)
}

func TestEnumerateUnboundAlwaysAvailable(t *testing.T) {
	t2 := tpl(cipai.Line{{Type: tone.TypePing, RhymeGroup: intPtr(0)}})
	results := Enumerate(t2, nil, nil)
	require.Len(t, results, 1)
	ref := cipai.SlotRef{Line: 0, Slot: 0}
	assert.Nil(t, results[0][ref])
}

func TestCandidateRhymesPartitionsByTone(t *testing.T) {
	pingRec := &rhyme.Record{ID: 0, Tone: tone.Ping}
	zeRec := &rhyme.Record{ID: 1, Tone: tone.Ze}
	d := rhyme.Build([]*rhyme.Record{pingRec, zeRec}, [][]rune{{'东'}, {'去'}})

	ping, ze := CandidateRhymes(d, []rune{'东', '去', '乙'})
	require.Len(t, ping, 1)
	require.Len(t, ze, 1)
	assert.Equal(t, pingRec.ID, ping[0].ID)
	assert.Equal(t, zeRec.ID, ze[0].ID)
}

func TestCandidateRhymesDeduplicates(t *testing.T) {
	rec := &rhyme.Record{ID: 0, Tone: tone.Ping}
	d := rhyme.Build([]*rhyme.Record{rec}, [][]rune{{'东'}})
	ping, _ := CandidateRhymes(d, []rune{'东', '东', '东'})
	assert.Len(t, ping, 1)
}
