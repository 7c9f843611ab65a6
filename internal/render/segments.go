package render

import "strings"

// SegmentKind distinguishes prose from fenced code in an answer.
type SegmentKind int

const (
	SegmentProse SegmentKind = iota
	SegmentCode
)

// Segment is one run of answer text. Language is the fence's tag and is
// empty for prose segments and for untagged fences.
type Segment struct {
	Kind     SegmentKind
	Language string
	Text     string
}

const fence = "```"

// SplitSegments splits markdown answer text into alternating prose and
// fenced-code segments. Text with no fence markers comes back as a single
// prose segment equal to the input. An unterminated fence swallows the rest
// of the text as code rather than erroring.
func SplitSegments(answer string) []Segment {
	if answer == "" {
		return nil
	}

	var segments []Segment
	rest := answer
	for {
		idx := strings.Index(rest, fence)
		if idx < 0 {
			if rest != "" {
				segments = append(segments, Segment{Kind: SegmentProse, Text: rest})
			}
			return segments
		}
		if idx > 0 {
			segments = append(segments, Segment{Kind: SegmentProse, Text: rest[:idx]})
		}
		rest = rest[idx+len(fence):]

		var language string
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			language = strings.TrimSpace(rest[:nl])
			rest = rest[nl+1:]
		} else {
			language = strings.TrimSpace(rest)
			rest = ""
		}

		body := rest
		if end := strings.Index(rest, fence); end >= 0 {
			body = rest[:end]
			rest = rest[end+len(fence):]
		} else {
			rest = ""
		}
		segments = append(segments, Segment{Kind: SegmentCode, Language: language, Text: body})
	}
}
