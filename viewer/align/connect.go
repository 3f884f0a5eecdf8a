package align

// BuildConnectors normalizes the pending connectors of a [Classification].
//
// Without merge, the connectors are returned as they are, one per insertion. With merge,
// consecutive connectors for single line insertions are combined into one connector if their
// source lines follow each other and their target lines are the same or follow each other. This
// turns e.g. lines 1..4 => line 1, line 2 => line 2, ... into a single lines 1..4 => lines 1..3
// connector.
func BuildConnectors(pending []Connector, merge bool) []Connector {
	out := make([]Connector, 0, len(pending))
	open := false // whether the last connector in out consists of single line connectors only
	for _, c := range pending {
		if merge && open && c.Source.SingleLine() && adjacent(out[len(out)-1], c) {
			last := &out[len(out)-1]
			last.Source.EndLine = c.Source.EndLine
			last.Source.EndChar = c.Source.EndChar
			last.TargetEndLine = c.TargetEndLine
			last.TextLength += c.TextLength
			continue
		}
		out = append(out, c)
		open = c.Source.SingleLine()
	}
	return out
}

func adjacent(a, b Connector) bool {
	if a.Direction != b.Direction {
		return false
	}
	if b.Source.StartLine != a.Source.EndLine+1 {
		return false
	}
	d := b.TargetLine - a.TargetEndLine
	return d == 0 || d == 1
}

// insertHighlights materializes the highlights for insertions: the new text in the left
// document, and the lines in the right document the connectors point to.
func insertHighlights(pending, conns []Connector, left *Index, opts Options) (lh, rh []Highlight) {
	// The new text is highlighted span by span even if the connectors were merged, merged
	// connectors would otherwise paint over unchanged text between the spans.
	for _, c := range pending {
		lh = append(lh, Highlight{
			Side:   Left,
			Extent: c.Source,
			Class:  ClassNew,
			Format: opts.Granularity.format(),
		})
	}
	for _, c := range conns {
		rh = append(rh, targetLine(Right, c.TargetLine, c.TargetEndLine, ClassRightTarget, left, c.Source))
	}
	return lh, rh
}
