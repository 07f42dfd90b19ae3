// Package meter implements the dynamically-programmed alignment engine:
// given an input passage and a cipai template, it jointly chooses how
// sentences align to template lines and which rhyme assignment they imply,
// maximising a per-character tone/rhyme score.
package meter

import (
	"github.com/qiuyun/cipai-meter/internal/assignment"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
)

type dpState struct {
	score   float64
	classes []Classification
	prevP   int // predecessor position in the previous sentence's row, -1 if none
}

// MatchMeter aligns text against tpl under dict, returning the
// highest-scoring alignment and its rhyme-consistent reconstruction.
//
// Sentences occupy a position axis of length 2*len(tpl.Meter)+1: even
// positions are "gaps" (extra text, contributing nothing), odd position
// 2*j+1 is template line j. Positions consumed by successive sentences are
// weakly monotone non-decreasing; ties in the predecessor search keep the
// earliest (leftmost) candidate, making the result deterministic.
func MatchMeter(dict *rhyme.Dict, text string, tpl *cipai.Template) AlignmentResult {
	sentences := Split(text)
	lineCount := len(tpl.Meter)

	if len(sentences) == 0 {
		return AlignmentResult{}
	}
	if lineCount == 0 {
		segs := make([]Segment, len(sentences))
		for i, s := range sentences {
			segs[i] = Segment{Kind: SegmentExtraText, Sentence: s.Text}
		}
		return AlignmentResult{Segments: segs}
	}

	lastChars := make([]rune, len(sentences))
	for i, s := range sentences {
		lastChars[i] = s.last()
	}
	pingCandidates, zeCandidates := assignment.CandidateRhymes(dict, lastChars)
	assignments := assignment.Enumerate(tpl, pingCandidates, zeCandidates)

	positions := 2*lineCount + 1
	sentenceCount := len(sentences)

	// dp[i][p][k]: best cumulative score aligning sentences[0:i+1] such
	// that sentence i occupies position p, under rhyme assignment k.
	dp := make([][][]dpState, sentenceCount)
	for i := range dp {
		dp[i] = make([][]dpState, positions)
		for p := range dp[i] {
			dp[i][p] = make([]dpState, len(assignments))
		}
	}

	for i := 0; i < sentenceCount; i++ {
		for p := 0; p < positions; p++ {
			for k := range assignments {
				var s float64
				var cls []Classification
				if p%2 != 0 {
					s, cls = scoreLine(dict, sentences[i].Runes, tpl.Meter[p/2], p/2, assignments[k])
				}

				if i == 0 {
					dp[i][p][k] = dpState{score: s, classes: cls, prevP: -1}
					continue
				}

				hi := p
				if p%2 != 0 {
					hi = p - 1
				}
				bestPrev := 0
				bestScore := -1.0
				for pp := 0; pp <= hi; pp++ {
					cand := dp[i-1][pp][k].score
					if bestScore < cand {
						bestScore = cand
						bestPrev = pp
					}
				}
				dp[i][p][k] = dpState{score: bestScore + s, classes: cls, prevP: bestPrev}
			}
		}
	}

	bestP, bestK, bestScore := 0, 0, -1.0
	last := sentenceCount - 1
	for p := 0; p < positions; p++ {
		for k := range assignments {
			if s := dp[last][p][k].score; bestScore < s {
				bestScore = s
				bestP, bestK = p, k
			}
		}
	}

	assignedP := make([]int, sentenceCount)
	assignedClasses := make([][]Classification, sentenceCount)
	curP := bestP
	for i := last; i >= 0; i-- {
		st := dp[i][curP][bestK]
		assignedP[i] = curP
		assignedClasses[i] = st.classes
		curP = st.prevP
	}

	posToSentences := make(map[int][]int, sentenceCount)
	for i := 0; i < sentenceCount; i++ {
		posToSentences[assignedP[i]] = append(posToSentences[assignedP[i]], i)
	}

	segments := make([]Segment, 0, sentenceCount+lineCount)
	for p := 0; p < positions; p++ {
		if p%2 == 0 {
			for _, i := range posToSentences[p] {
				segments = append(segments, Segment{Kind: SegmentExtraText, Sentence: sentences[i].Text})
			}
			continue
		}
		lineIdx := p / 2
		occupants := posToSentences[p]
		if len(occupants) == 0 {
			segments = append(segments, Segment{Kind: SegmentExtraLine, LineIndex: lineIdx, Line: tpl.Meter[lineIdx]})
			continue
		}
		i := occupants[0]
		segments = append(segments, Segment{
			Kind:      SegmentMatched,
			Sentence:  sentences[i].Text,
			LineIndex: lineIdx,
			Line:      tpl.Meter[lineIdx],
			Classes:   assignedClasses[i],
		})
	}

	normaliser := sentenceCount
	if n := tpl.NonEmptyLineCount(); n > normaliser {
		normaliser = n
	}

	return AlignmentResult{
		Score:    bestScore / float64(normaliser),
		Segments: segments,
	}
}
