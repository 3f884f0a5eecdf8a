package align

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Classification is the outcome of walking a diff once.
type Classification struct {
	Highlights []Highlight // Deleted text in the right document and its targets in the left one
	Connectors []Connector // Right-to-left connectors, one per deletion
	Pending    []Connector // Left-to-right connectors, one per insertion, not yet materialized
}

// Classify walks ops in order, keeping track of the current offset in both documents.
//
// Deletions are resolved right away: the deleted text is highlighted in the right document, the
// line it is missing from is marked in the left document, and a right-to-left connector joins
// the two. Insertions are only located and recorded as pending connectors; [BuildConnectors] and
// the engine turn them into highlights later so that insertions can be merged first.
func Classify(ops []Op, left, right *Index, opts Options) (*Classification, error) {
	c := &Classification{}
	loff, roff := 0, 0
	for i, op := range ops {
		n := utf8.RuneCountInString(op.Text)
		switch op.Kind {
		case Equal:
			loff += n
			roff += n

		case Delete:
			ext, err := right.Locate(roff, n)
			if err != nil {
				return nil, opError(err, i, Right)
			}
			c.Highlights = append(c.Highlights, Highlight{
				Side:   Right,
				Extent: ext,
				Class:  ClassDeleted,
				Format: opts.Granularity.format(),
			})
			line := left.LineForOffset(loff)
			c.Highlights = append(c.Highlights, targetLine(Left, line, line, ClassLeftTarget, right, ext))
			c.Connectors = append(c.Connectors, Connector{
				Direction:     RightToLeft,
				Source:        ext,
				TargetOffset:  loff,
				TargetLine:    line,
				TargetEndLine: line,
				TextLength:    n,
			})
			roff += n

		case Insert:
			ext, err := left.Locate(loff, n)
			if err != nil {
				return nil, opError(err, i, Left)
			}
			line := right.LineForOffset(roff)
			c.Pending = append(c.Pending, Connector{
				Direction:     LeftToRight,
				Source:        ext,
				TargetOffset:  roff,
				TargetLine:    line,
				TargetEndLine: line,
				TextLength:    n,
			})
			loff += n

		default:
			return nil, fmt.Errorf("diff operation %d: unknown kind %v", i, op.Kind)
		}
	}

	if loff != left.Len() {
		return nil, &ConsistencyError{Side: Left, Op: -1, Offset: loff, Len: left.Len(), Coverage: true}
	}
	if roff != right.Len() {
		return nil, &ConsistencyError{Side: Right, Op: -1, Offset: roff, Len: right.Len(), Coverage: true}
	}
	return c, nil
}

func opError(err error, op int, side Side) error {
	var ce *ConsistencyError
	if errors.As(err, &ce) {
		ce.Op = op
		ce.Side = side
	}
	return err
}

// targetLine returns the whole-line marker for lines first..last of side, where text located at
// ext in the document src is missing. The class tells whether the text is a range within a line
// or covers complete lines.
func targetLine(side Side, first, last int, class string, src *Index, ext Extent) Highlight {
	if ext.SingleLine() && ext.StartChar != 0 && ext.EndChar != src.LineLength(ext.EndLine) {
		class += classRange
	} else {
		class += classLineOnly
	}
	return Highlight{
		Side:   side,
		Extent: Extent{StartLine: first, StartChar: 0, EndLine: last, EndChar: 1},
		Class:  class,
		Format: FormatFullLine,
	}
}
