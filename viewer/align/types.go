package align

import (
	"fmt"
	"strings"
)

// Kind is the kind of a diff operation.
type Kind int

const (
	Equal  Kind = iota // Text present in both documents
	Delete             // Text present only in the right document
	Insert             // Text present only in the left document
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is a single diff operation.
type Op struct {
	Kind Kind
	Text string
}

// Provider computes the diff between two documents. Note the argument order: the right document
// comes first.
type Provider func(right, left string) []Op

// Texts reconstructs the two documents a diff was computed for.
func Texts(ops []Op) (left, right string) {
	var lb, rb strings.Builder
	for _, op := range ops {
		if op.Kind != Delete {
			lb.WriteString(op.Text)
		}
		if op.Kind != Insert {
			rb.WriteString(op.Text)
		}
	}
	return lb.String(), rb.String()
}

// Side identifies one of the two documents.
type Side int

const (
	Left  Side = iota // The edited document
	Right             // The reference document
)

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Format tells a marker sink how to draw a highlight.
type Format int

const (
	FormatText     Format = iota // Highlight the characters of the extent
	FormatFullLine               // Highlight all lines touched by the extent
)

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatFullLine:
		return "fullLine"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Highlight is a single marker to draw in one of the documents.
type Highlight struct {
	Side   Side   `json:"side"`
	Extent Extent `json:"extent"`
	Class  string `json:"class"`
	Format Format `json:"format"`
}

// Highlight classes.
const (
	ClassDeleted     = "deletedCode"           // Text missing from the left document, drawn in the right one
	ClassNew         = "newCode"               // Text missing from the right document, drawn in the left one
	ClassLeftTarget  = "diffInsertLeftTarget"  // Where deleted text would go in the left document
	ClassRightTarget = "diffInsertRightTarget" // Where new text would go in the right document

	classLineOnly = " lineOnly"
	classRange    = " range"
)

// Direction is the direction of a connector, from the document holding the text to the document
// missing it.
type Direction int

const (
	RightToLeft Direction = iota // Deleted text, held by the right document
	LeftToRight                  // New text, held by the left document
)

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d Direction) String() string {
	switch d {
	case RightToLeft:
		return "rtl"
	case LeftToRight:
		return "ltr"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Connector links a changed span in one document to the point in the other document where the
// span is missing.
//
// Connectors are plain values; consecutive connectors can be merged into one covering several
// lines, see [BuildConnectors].
type Connector struct {
	Direction Direction `json:"direction"`
	Source    Extent    `json:"source"` // Extent of the text in the document holding it

	// TargetOffset is the character offset in the other document the text corresponds to,
	// TargetLine..TargetEndLine are the lines the connector points to there.
	TargetOffset  int `json:"targetOffset"`
	TargetLine    int `json:"targetLine"`
	TargetEndLine int `json:"targetEndLine"`

	TextLength int `json:"textLength"` // Number of characters linked by the connector
}

// Granularity selects how changes are highlighted.
type Granularity int

const (
	Character Granularity = iota // Highlight changed characters
	FullLine                     // Highlight whole lines containing changes
)

func (g Granularity) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g Granularity) String() string {
	switch g {
	case Character:
		return "character"
	case FullLine:
		return "fullLine"
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// ParseGranularity parses the string representation of a granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "character", "text":
		return Character, nil
	case "fullLine", "line":
		return FullLine, nil
	}
	return 0, fmt.Errorf("unknown granularity %q", s)
}

func (g Granularity) format() Format {
	if g == FullLine {
		return FormatFullLine
	}
	return FormatText
}

// Options configure an alignment run.
type Options struct {
	Granularity     Granularity `json:"granularity"`
	MergeConnectors bool        `json:"mergeConnectors"` // Merge connectors of consecutive single line insertions

	// Whether the documents accept input. The engine doesn't use these, they are carried along for
	// the surrounding UI.
	EditableLeft  bool `json:"editableLeft"`
	EditableRight bool `json:"editableRight"`
}

// DefaultOptions returns the options used if nothing else is configured: character granularity,
// no merging, an editable left document and a read-only right document.
func DefaultOptions() Options {
	return Options{EditableLeft: true}
}
