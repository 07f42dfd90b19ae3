package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastingColorIsDeterministic(t *testing.T) {
	r1, g1, b1 := ContrastingColor(3)
	r2, g2, b2 := ContrastingColor(3)
	assert.Equal(t, [3]uint8{r1, g1, b1}, [3]uint8{r2, g2, b2})
}

func TestContrastingColorVariesByGroup(t *testing.T) {
	seen := make(map[[3]uint8]bool)
	for n := 0; n < 8; n++ {
		r, g, b := ContrastingColor(n)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Greater(t, len(seen), 4, "golden-ratio hue spacing should produce visibly distinct colors")
}

func TestToneLegendPlain(t *testing.T) {
	legend := ToneLegend(1, false)
	assert.Equal(t, "格律说明：如是韵脚，括号内标注声部", legend)
}

func TestToneLegendColorizedIncludesEachGroup(t *testing.T) {
	legend := ToneLegend(2, true)
	assert.Contains(t, legend, "平=平声")
	assert.Contains(t, legend, "韵0")
	assert.Contains(t, legend, "韵1")
	assert.Contains(t, legend, "韵2")
}

func TestAnnotatedToneNoRhymeGroup(t *testing.T) {
	assert.Equal(t, "平", annotatedTone("平", nil))
}

func TestAnnotatedToneWithRhymeGroup(t *testing.T) {
	n := 2
	assert.Equal(t, "平（韵2）", annotatedTone("平", &n))
}
