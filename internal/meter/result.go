package meter

import "github.com/qiuyun/cipai-meter/internal/cipai"

// SegmentKind discriminates one piece of an AlignmentResult's tagged-union
// segment list.
type SegmentKind int

const (
	// SegmentMatched pairs one input sentence with one template line.
	SegmentMatched SegmentKind = iota
	// SegmentExtraText is an input sentence with no line assigned to it.
	SegmentExtraText
	// SegmentExtraLine is a template line with no sentence assigned to it.
	SegmentExtraLine
)

// Segment is one element of an AlignmentResult, tagged by Kind. Only the
// fields relevant to Kind are populated:
//
//	SegmentMatched:   Sentence, LineIndex, Line, Classes
//	SegmentExtraText: Sentence
//	SegmentExtraLine: LineIndex, Line
type Segment struct {
	Kind      SegmentKind
	Sentence  string
	LineIndex int
	Line      cipai.Line
	Classes   []Classification
}

// AlignmentResult is the outcome of aligning one input passage against one
// template: a normalised score in [0, 1] and the ordered segment
// reconstruction.
type AlignmentResult struct {
	Score    float64
	Segments []Segment
}
