package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

// Property 8: best-match output is non-increasing in score.
func TestBestMatchOrdering(t *testing.T) {
	dict := rhyme.Build(
		[]*rhyme.Record{{ID: 0, Name: "一东", Tone: tone.Ping}},
		[][]rune{{'东'}},
	)
	perfect := tpl(line(tone.MeterTone{Type: tone.TypePing, RhymeGroup: intPtr(0)}))
	worst := tpl(line(tone.MeterTone{Type: tone.TypeZe, RhymeGroup: intPtr(0)}))

	matches := BestMatch(dict, []*cipai.Template{worst, perfect}, "东")
	require.Len(t, matches, 2)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Result.Score, matches[i].Result.Score)
	}
	assert.Same(t, perfect, matches[0].Template)
}

func TestBestMatchStableOnTies(t *testing.T) {
	dict := rhyme.Build(nil, nil)
	a := tpl()
	b := tpl()
	c := tpl()

	matches := BestMatch(dict, []*cipai.Template{a, b, c}, "东")
	require.Len(t, matches, 3)
	assert.Same(t, a, matches[0].Template)
	assert.Same(t, b, matches[1].Template)
	assert.Same(t, c, matches[2].Template)
}
