package tone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestMeterToneTypeSatisfies(t *testing.T) {
	tests := []struct {
		name string
		mt   MeterToneType
		b    BasicTone
		want bool
	}{
		{"ping slot accepts ping", TypePing, Ping, true},
		{"ping slot rejects ze", TypePing, Ze, false},
		{"ze slot accepts ze", TypeZe, Ze, true},
		{"ze slot rejects ping", TypeZe, Ping, false},
		{"zhong accepts ping", TypeZhong, Ping, true},
		{"zhong accepts ze", TypeZhong, Ze, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mt.Satisfies(tt.b))
		})
	}
}

func TestMeterToneTypeBasic(t *testing.T) {
	if b, ok := TypePing.Basic(); !ok || b != Ping {
		t.Fatalf("TypePing.Basic() = %v, %v", b, ok)
	}
	if b, ok := TypeZe.Basic(); !ok || b != Ze {
		t.Fatalf("TypeZe.Basic() = %v, %v", b, ok)
	}
	if _, ok := TypeZhong.Basic(); ok {
		t.Fatal("TypeZhong.Basic() should not be ok")
	}
}

func TestMeterToneKeyOf(t *testing.T) {
	m := MeterTone{Type: TypePing, RhymeGroup: intPtr(1)}
	assert.Equal(t, Key{Type: TypePing, RhymeGroup: 1}, m.KeyOf())
	assert.True(t, m.IsRhymeSlot())

	plain := MeterTone{Type: TypeZe}
	assert.False(t, plain.IsRhymeSlot())
	assert.Panics(t, func() { plain.KeyOf() })
}

func TestDistinctKeysForSharedNumberDifferentTone(t *testing.T) {
	// Two slots sharing rhyme-group 0 but with different tone polarity are
	// distinct keys.
	a := MeterTone{Type: TypePing, RhymeGroup: intPtr(0)}
	b := MeterTone{Type: TypeZe, RhymeGroup: intPtr(0)}
	assert.NotEqual(t, a.KeyOf(), b.KeyOf())
}
