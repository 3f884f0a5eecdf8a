package align

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// SplitLines splits text into lines. Only '\n' terminates a line, which means that a text ending
// in '\n' has a trailing empty line and that the empty text consists of one empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// Index maps character offsets of one document to lines.
//
// Entry i of the index is the offset right after the terminator of line i. The last line counts
// an implicit terminator, too, which keeps the entries strictly increasing even if the document
// ends in an empty line.
type Index struct {
	ends []int
}

// NewIndex builds the index for a document consisting of lines. The lines must not contain
// terminators.
func NewIndex(lines []string) *Index {
	if len(lines) == 0 {
		lines = []string{""}
	}
	ends := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		total += utf8.RuneCountInString(line) + 1
		ends[i] = total
	}
	return &Index{ends: ends}
}

// IndexText builds the index for text.
func IndexText(text string) *Index { return NewIndex(SplitLines(text)) }

// Lines returns the number of lines in the document. It's never less than 1.
func (x *Index) Lines() int { return len(x.ends) }

// Len returns the number of characters in the document.
func (x *Index) Len() int { return x.ends[len(x.ends)-1] - 1 }

// Ends returns a copy of the cumulative end offsets.
func (x *Index) Ends() []int { return slices.Clone(x.ends) }

// LineLength returns the number of characters on line, not counting the terminator. Lines outside
// of the document have length 0.
func (x *Index) LineLength(line int) int {
	if line < 0 || line >= len(x.ends) {
		return 0
	}
	return x.ends[line] - x.lineStart(line) - 1
}

// LineForOffset returns the line containing the character at offset off, that is the line a
// connector anchored at off points to. Offsets past the end of the document map to the last line.
func (x *Index) LineForOffset(off int) int {
	i := sort.Search(len(x.ends), func(i int) bool { return x.ends[i] > off })
	return min(i, len(x.ends)-1)
}

func (x *Index) lineStart(line int) int {
	if line == 0 {
		return 0
	}
	return x.ends[line-1]
}

// lineAt returns the first line ending after off or -1 if off is beyond the document.
func (x *Index) lineAt(off int) int {
	i := sort.Search(len(x.ends), func(i int) bool { return x.ends[i] > off })
	if i == len(x.ends) {
		return -1
	}
	return i
}
