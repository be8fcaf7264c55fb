package pipeline

import "strings"

// Fence markers recognized by SplitSegments. Markers are compared against
// the trimmed line, so indentation and trailing spaces are tolerated.
const (
	DiagramFenceOpen = "```mermaid"
	FenceClose       = "```"
)

// SegmentKind tags a Segment as plain text or diagram source.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentDiagram
)

// String returns the kind name used in notices and test output.
func (k SegmentKind) String() string {
	if k == SegmentDiagram {
		return "diagram"
	}
	return "text"
}

// Segment is one ordered piece of a document.
type Segment struct {
	Kind    SegmentKind
	Content string // lines joined with "\n", fence markers excluded
	Line    int    // 1-based line of the first content line
}

// Segmentation is the result of SplitSegments.
type Segmentation struct {
	Segments []Segment

	// UnterminatedLine is the 1-based line of a diagram fence that was never
	// closed, or 0. Its content is kept in the trailing text segment.
	UnterminatedLine int
}

// SplitSegments scans content line by line and separates ```mermaid fenced
// regions from the surrounding text. A document without diagram fences
// yields exactly one text segment equal to the input.
//
// An unterminated fence does not lose content: the fence line and the
// captured lines are returned to the text stream and the fence's line is
// reported in UnterminatedLine.
func SplitSegments(content string) Segmentation {
	var res Segmentation
	var text, diagram []string
	var inDiagram bool
	var fenceLine int
	var fenceRaw string
	textStart := 1

	flushText := func() {
		if len(text) == 0 {
			return
		}
		res.Segments = append(res.Segments, Segment{
			Kind:    SegmentText,
			Content: strings.Join(text, "\n"),
			Line:    textStart,
		})
		text = nil
	}

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case !inDiagram && trimmed == DiagramFenceOpen:
			flushText()
			inDiagram = true
			fenceLine = lineNo
			fenceRaw = line
			diagram = nil
		case inDiagram && trimmed == FenceClose:
			res.Segments = append(res.Segments, Segment{
				Kind:    SegmentDiagram,
				Content: strings.Join(diagram, "\n"),
				Line:    fenceLine + 1,
			})
			inDiagram = false
		case inDiagram:
			diagram = append(diagram, line)
		default:
			if len(text) == 0 {
				textStart = lineNo
			}
			text = append(text, line)
		}
	}

	if inDiagram {
		// text was flushed when the fence opened
		textStart = fenceLine
		text = append(text, fenceRaw)
		text = append(text, diagram...)
		res.UnterminatedLine = fenceLine
	}
	flushText()

	return res
}
