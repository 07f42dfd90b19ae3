package meter

import "strings"

// Sentence is one trimmed, non-empty fragment of an input passage, split
// on sentence-ending punctuation.
type Sentence struct {
	Text  string
	Runes []rune
}

func (s Sentence) last() rune {
	if len(s.Runes) == 0 {
		return 0
	}
	return s.Runes[len(s.Runes)-1]
}

const sentenceDelimiters = ".。,，、?？!！\n"

// Split breaks raw input into trimmed, non-empty sentences on any of the
// delimiters {. 。 , ， 、 ? ？ ! ！ newline}. Delimiters are discarded and
// empty fragments dropped.
func Split(text string) []Sentence {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(sentenceDelimiters, r)
	})

	sentences := make([]Sentence, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimSpace(f)
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, Sentence{Text: trimmed, Runes: []rune(trimmed)})
	}
	return sentences
}
