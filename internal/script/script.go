// Package script normalises Simplified/Traditional Chinese script
// variants so the rhyme dictionary and the alignment engine see a single
// consistent character set regardless of which script an input passage or
// a dictionary source was authored in.
package script

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/liuzl/gocc"
)

// s2t and t2s are initialized once and are safe for concurrent use; the
// underlying gocc.OpenCC.Convert method is thread-safe.
var (
	s2t *gocc.OpenCC
	t2s *gocc.OpenCC
)

func init() {
	var err error
	s2t, err = gocc.New("s2t")
	if err != nil {
		panic(fmt.Sprintf("script: failed to initialize s2t converter: %v", err))
	}
	t2s, err = gocc.New("t2s")
	if err != nil {
		panic(fmt.Sprintf("script: failed to initialize t2s converter: %v", err))
	}
}

// ToTraditional converts Simplified Chinese text to Traditional.
func ToTraditional(text string) (string, error) {
	return s2t.Convert(text)
}

// ToSimplified converts Traditional Chinese text to Simplified.
func ToSimplified(text string) (string, error) {
	return t2s.Convert(text)
}

// NormalizeToSimplified converts every string in texts to Simplified
// Chinese, used when loading rhyme-dictionary and template sources that
// may be authored in either script.
func NormalizeToSimplified(texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		converted, err := ToSimplified(text)
		if err != nil {
			return nil, fmt.Errorf("script: failed to normalise entry %d: %w", i, err)
		}
		out[i] = converted
	}
	return out, nil
}

// TrimWhitespace removes every whitespace character (including full-width
// and line-internal spaces some source texts carry) from a passage before
// it reaches the alignment engine, which treats every remaining rune as a
// metrical position.
func TrimWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// RuneVariants returns c's Simplified and Traditional forms (c itself if
// either conversion is a no-op or fails), for building a dictionary index
// that answers lookups in either script.
func RuneVariants(c rune) []rune {
	variants := []rune{c}

	s, err := ToSimplified(string(c))
	if err == nil {
		if r := []rune(s); len(r) == 1 && r[0] != c {
			variants = append(variants, r[0])
		}
	}

	t, err := ToTraditional(string(c))
	if err == nil {
		if r := []rune(t); len(r) == 1 && r[0] != c {
			variants = append(variants, r[0])
		}
	}

	return variants
}
