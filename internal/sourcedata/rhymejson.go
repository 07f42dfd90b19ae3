// Package sourcedata implements the host-side parsers for the on-disk
// source formats the engine itself never reads directly: rhyme-dictionary
// JSON and cipai-template XML. These parsers turn on-disk sources into the
// plain (records, characters) pairs that rhyme.Build and cipai.Template
// accept.
package sourcedata

import (
	"encoding/json"
	"fmt"

	"github.com/qiuyun/cipai-meter/internal/apierr"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/script"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

var pingshuiSections = map[string]tone.BasicTone{
	"上平声部": tone.Ping,
	"下平声部": tone.Ping,
	"上声部":  tone.Ze,
	"去声部":  tone.Ze,
	"入声部":  tone.Ze,
}

var cilinTones = map[string]tone.BasicTone{
	"平声": tone.Ping,
	"仄声": tone.Ze,
	"入声": tone.Ze,
}

// ParsePingshui parses a 平水韵 JSON document: a top-level object keyed by
// section name, whose values map rhyme-name to an array of single-character
// strings. Records built from this source never carry a group label.
func ParsePingshui(data []byte) ([]*rhyme.Record, [][]rune, error) {
	var doc map[string]map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, apierr.MalformedDict(fmt.Sprintf("invalid JSON: %v", err))
	}

	var records []*rhyme.Record
	var chars [][]rune
	nextID := rhyme.ID(0)

	for section, names := range doc {
		basic, ok := pingshuiSections[section]
		if !ok {
			return nil, nil, apierr.MalformedDict(fmt.Sprintf("unknown pingshui section %q", section))
		}
		for name, entries := range names {
			runes, err := singleCharRunes(entries)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, &rhyme.Record{ID: nextID, Name: name, Tone: basic})
			chars = append(chars, runes)
			nextID++
		}
	}
	return records, chars, nil
}

// ParseCilin parses a 词林正韵 JSON document: a top-level object keyed by
// group name, whose values map a tone label to an array of
// single-character strings. Every record built from one group carries
// that group's name as its group label.
func ParseCilin(data []byte) ([]*rhyme.Record, [][]rune, error) {
	var doc map[string]map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, apierr.MalformedDict(fmt.Sprintf("invalid JSON: %v", err))
	}

	var records []*rhyme.Record
	var chars [][]rune
	nextID := rhyme.ID(0)

	for group, byTone := range doc {
		label := group
		for toneLabel, entries := range byTone {
			basic, ok := cilinTones[toneLabel]
			if !ok {
				return nil, nil, apierr.MalformedDict(fmt.Sprintf("unknown cilin tone label %q", toneLabel))
			}
			runes, err := singleCharRunes(entries)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, &rhyme.Record{ID: nextID, Name: fmt.Sprintf("%s-%s", group, toneLabel), Group: &label, Tone: basic})
			chars = append(chars, runes)
			nextID++
		}
	}
	return records, chars, nil
}

// singleCharRunes normalises every entry to Simplified Chinese before
// validating it — a dictionary authored in Traditional script must still
// index under the same runes Build() produces from a Simplified source.
func singleCharRunes(entries []string) ([]rune, error) {
	normalized, err := script.NormalizeToSimplified(entries)
	if err != nil {
		return nil, apierr.MalformedDict(fmt.Sprintf("script normalization failed: %v", err))
	}

	runes := make([]rune, 0, len(normalized))
	for i, e := range normalized {
		r := []rune(e)
		if len(r) != 1 {
			return nil, apierr.MalformedDict(fmt.Sprintf("character entry %q is not a single character", entries[i]))
		}
		runes = append(runes, r[0])
	}
	return runes, nil
}
