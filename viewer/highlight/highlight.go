package highlight

import (
	"fmt"
	"html"
	"html/template"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"znkr.io/sidediff/viewer/align"
	"znkr.io/sidediff/viewer/markers"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericPrompt:     "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

// classEOL marks the end of a line covered by a text marker, i.e. a marked newline or a marked
// empty line.
const classEOL = "eol"

type Option func(*highlighter)

// Lang selects the lexer by language name.
func Lang(lang string) Option {
	return func(o *highlighter) {
		if lang != "" {
			o.lexer = lexers.Get(lang)
		}
	}
}

// LangFromFilename selects the lexer by file name. Earlier options take precedence, so that the
// file name serves as a fallback for an explicit language.
func LangFromFilename(filename string) Option {
	return func(o *highlighter) {
		if o.lexer == nil {
			o.lexer = lexers.Match(filename)
		}
	}
}

// Line is a single rendered line.
type Line struct {
	LineNo  int
	Class   string // Classes of whole-line markers
	Content template.HTML
}

// Document renders text line by line. Lines are split the same way as for alignment, so that the
// extents of marks refer to the returned lines.
func Document(text string, marks []markers.Marker, opts ...Option) ([]Line, error) {
	hl := fromOptions(opts)
	tokens, err := hl.tokens(text)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %v", err)
	}
	syntax := runeClasses(text, tokens)

	var textMarks, lineMarks []markers.Marker
	for _, m := range marks {
		if m.Format == align.FormatFullLine {
			lineMarks = append(lineMarks, m)
		} else {
			textMarks = append(textMarks, m)
		}
	}

	lines := align.SplitLines(text)
	ret := make([]Line, 0, len(lines))
	pos := 0
	for i, line := range lines {
		runes := []rune(line)

		var sb strings.Builder
		seg := segment{}
		for j, r := range runes {
			class := join(syntax[pos+j], markClasses(textMarks, i, j))
			if class != seg.class {
				seg.writeTo(&sb)
				seg = segment{class: class}
			}
			seg.text = append(seg.text, r)
		}
		seg.writeTo(&sb)

		if eol := markClasses(textMarks, i, len(runes)); eol != "" {
			fmt.Fprintf(&sb, "<span class=\"%s %s\"></span>", eol, classEOL)
		}

		ret = append(ret, Line{
			LineNo:  i + 1,
			Class:   lineClasses(lineMarks, i),
			Content: template.HTML(sb.String()),
		})
		pos += len(runes) + 1
	}
	return ret, nil
}

type segment struct {
	class string
	text  []rune
}

func (s segment) writeTo(sb *strings.Builder) {
	if len(s.text) == 0 {
		return
	}
	if s.class != "" {
		fmt.Fprintf(sb, "<span class=\"%s\">", s.class)
	}
	sb.WriteString(html.EscapeString(string(s.text)))
	if s.class != "" {
		sb.WriteString("</span>")
	}
}

// markClasses returns the classes of all marks covering column col of line. Column len(line)
// is the line terminator.
func markClasses(marks []markers.Marker, line, col int) string {
	var classes []string
	for _, m := range marks {
		ext := m.Extent
		switch {
		case line < ext.StartLine || line > ext.EndLine:
		case line == ext.StartLine && col < ext.StartChar:
		case line == ext.EndLine && col >= ext.EndChar:
		default:
			classes = appendClass(classes, m.Class)
		}
	}
	return strings.Join(classes, " ")
}

func lineClasses(marks []markers.Marker, line int) string {
	var classes []string
	for _, m := range marks {
		if m.Extent.StartLine <= line && line <= m.Extent.EndLine {
			classes = appendClass(classes, m.Class)
		}
	}
	return strings.Join(classes, " ")
}

func appendClass(classes []string, class string) []string {
	if slices.Contains(classes, class) {
		return classes
	}
	return append(classes, class)
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// runeClasses assigns the syntax class of every rune in text. Lexers may add text that isn't part
// of the input (e.g. a final newline), such runes are skipped.
func runeClasses(text string, tokens []chroma.Token) []string {
	runes := []rune(text)
	classes := make([]string, len(runes))
	pos := 0
	for _, token := range tokens {
		c := class(token.Type)
		for _, r := range token.Value {
			if pos < len(runes) && runes[pos] == r {
				classes[pos] = c
				pos++
			}
		}
	}
	return classes
}

type highlighter struct {
	lexer chroma.Lexer
}

func fromOptions(opts []Option) *highlighter {
	hl := &highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

func (hl *highlighter) tokens(in string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, in)
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	return it.Tokens(), nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
