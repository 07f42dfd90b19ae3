package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimWhitespaceRemovesAllSpaceRunes(t *testing.T) {
	assert.Equal(t, "东风中", TrimWhitespace("东风 中\n\t"))
	assert.Equal(t, "", TrimWhitespace("   \n"))
	assert.Equal(t, "东风", TrimWhitespace("东风"))
}

func TestNormalizeToSimplifiedConvertsTraditionalEntries(t *testing.T) {
	out, err := NormalizeToSimplified([]string{"風", "东"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"风", "东"}, out)
}

func TestRuneVariantsIncludesOriginalRune(t *testing.T) {
	variants := RuneVariants('风')
	assert.Contains(t, variants, '风')
}

func TestRuneVariantsFindsTraditionalCounterpart(t *testing.T) {
	variants := RuneVariants('风')
	assert.Contains(t, variants, '風')
}
