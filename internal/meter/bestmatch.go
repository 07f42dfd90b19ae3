package meter

import (
	"sort"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
)

// TemplateMatch pairs a candidate template with its alignment against the
// same input passage.
type TemplateMatch struct {
	Template *cipai.Template
	Result   AlignmentResult
}

// BestMatch aligns text against every template and ranks them by score,
// highest first. The sort is stable: templates tied on score keep their
// relative order from templates.
func BestMatch(dict *rhyme.Dict, templates []*cipai.Template, text string) []TemplateMatch {
	matches := make([]TemplateMatch, len(templates))
	for i, tpl := range templates {
		matches[i] = TemplateMatch{Template: tpl, Result: MatchMeter(dict, text, tpl)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Score > matches[j].Result.Score
	})
	return matches
}
