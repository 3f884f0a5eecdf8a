package align

import "fmt"

// Extent locates a span in line/column space of one document. Columns count characters; the end
// is exclusive.
type Extent struct {
	StartLine int `json:"startLine"`
	StartChar int `json:"startChar"`
	EndLine   int `json:"endLine"`
	EndChar   int `json:"endChar"`
}

// SingleLine reports whether the extent starts and ends on the same line.
func (e Extent) SingleLine() bool { return e.StartLine == e.EndLine }

func (e Extent) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", e.StartLine, e.StartChar, e.EndLine, e.EndChar)
}

// Locate returns the extent of the length characters starting at offset start.
//
// A span made of nothing but the terminator of a non-empty line is placed just past the end of
// that line, so it never covers the line below. Otherwise two corrections are applied to the raw
// positions, in this order:
//
//   - A span starting right at a line terminator starts at column 0 of the next line instead; a
//     terminator is never highlighted as content.
//   - A span ending at column 0 ends at the end of the line before instead. A span left without
//     any width on an empty line gets an end column of 1 so that it remains visible.
//
// A span reaching beyond the document is reported as a [*ConsistencyError].
func (x *Index) Locate(start, length int) (Extent, error) {
	end := start + length
	startLine, endLine := x.lineAt(start), x.lineAt(end)
	if start < 0 || length < 0 || startLine < 0 || endLine < 0 {
		return Extent{}, &ConsistencyError{Op: -1, Offset: start, Length: length, Len: x.Len()}
	}

	ext := Extent{
		StartLine: startLine,
		StartChar: start - x.lineStart(startLine),
		EndLine:   endLine,
		EndChar:   end - x.lineStart(endLine),
	}

	if ext.StartChar > 0 && ext.StartChar == x.LineLength(ext.StartLine) {
		if length == 1 {
			ext.EndLine, ext.EndChar = ext.StartLine, ext.StartChar+1
			return ext, nil
		}
		if ext.StartLine+1 < x.Lines() {
			ext.StartLine++
			ext.StartChar = 0
		}
	}
	if length == 0 {
		ext.EndLine, ext.EndChar = ext.StartLine, ext.StartChar
	}

	if ext.EndChar == 0 && ext.EndLine > ext.StartLine {
		ext.EndLine--
		ext.EndChar = x.LineLength(ext.EndLine)
	}
	if ext.EndChar == 0 && x.LineLength(ext.EndLine) == 0 {
		ext.EndChar = 1
	}
	return ext, nil
}
