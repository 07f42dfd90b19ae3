package sourcedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiuyun/cipai-meter/internal/tone"
)

func TestParsePingshuiNormalizesTraditionalEntries(t *testing.T) {
	// "風" and "東" are Traditional forms; a Pingshui source authored in
	// Traditional script must still parse into the Simplified runes the
	// rhyme dictionary indexes.
	doc := []byte(`{"上平声部": {"一东": ["風", "東"]}}`)
	records, chars, err := ParsePingshui(doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, tone.Ping, records[0].Tone)
	assert.ElementsMatch(t, []rune{'风', '东'}, chars[0])
}

func TestParsePingshuiRejectsMultiCharEntry(t *testing.T) {
	doc := []byte(`{"上平声部": {"一东": ["风雨"]}}`)
	_, _, err := ParsePingshui(doc)
	assert.Error(t, err)
}

func TestParsePingshuiRejectsUnknownSection(t *testing.T) {
	doc := []byte(`{"未知部": {"一东": ["风"]}}`)
	_, _, err := ParsePingshui(doc)
	assert.Error(t, err)
}

func TestParseCilinGroupsCarryLabel(t *testing.T) {
	doc := []byte(`{"一部": {"平声": ["东"], "仄声": ["董"]}}`)
	records, chars, err := ParseCilin(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.NotNil(t, r.Group)
		assert.Equal(t, "一部", *r.Group)
	}
	var allChars []rune
	for _, cs := range chars {
		allChars = append(allChars, cs...)
	}
	assert.ElementsMatch(t, []rune{'东', '董'}, allChars)
}
