// Package pair loads comparison files.
//
// A comparison file names the two documents to compare, configures the comparison, and carries
// notes about it. It has the following format
//
//	# <title>
//	:<key>: <value>
//	:<key>: <value>
//
//	<notes>
//
// Values can span several lines by ending a line with a backslash. The notes are markdown.
package pair

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"znkr.io/sidediff/viewer/align"
	"znkr.io/sidediff/viewer/diffs"
	"znkr.io/sidediff/viewer/gutter"
)

// Ext is the file extension of comparison files.
const Ext = ".pair"

// ErrNoDocuments is returned if a comparison doesn't name both documents.
var ErrNoDocuments = errors.New("no documents to compare")

// SyntaxError is returned for malformed comparison files.
type SyntaxError struct {
	Msg       string
	Line, Col int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s [%d:%d]", err.Msg, err.Line, err.Col)
}

// Pair is a comparison of two documents.
type Pair struct {
	Name  string // Name of the comparison, derived from the file name
	Title string
	Dir   string // Directory relative paths are resolved against

	Left, Right string // Paths of the documents
	Lang        string // Language for syntax highlighting, derived from the file names if empty
	Diff        string // Name of the diff provider

	Options  align.Options
	Geometry gutter.Geometry

	Notes []byte // Markdown
}

// New returns a comparison with default settings.
func New() *Pair {
	return &Pair{
		Diff:     "chars",
		Options:  align.DefaultOptions(),
		Geometry: gutter.DefaultGeometry(),
	}
}

// Load loads a comparison file.
func Load(path string) (*Pair, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading comparison: %v", err)
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	p.Name = strings.TrimSuffix(filepath.Base(path), Ext)
	p.Title = cmp.Or(p.Title, p.Name)
	return p, nil
}

// Parse parses a comparison file.
func Parse(in []byte) (*Pair, error) {
	p := New()
	line := 1

	// Take title from first header.
	if len(in) > 2 && in[0] == '#' && in[1] == ' ' {
		eol := bytes.IndexByte(in, '\n')
		if eol < 0 {
			eol = len(in)
		}
		p.Title = strings.TrimSpace(string(in[1:eol]))
		in = in[min(eol+1, len(in)):]
		line++
	}

	for len(in) > 0 && in[0] == ':' {
		start := line
		first := in
		if eol := bytes.IndexByte(in, '\n'); eol >= 0 {
			first = in[:eol]
		}
		end := bytes.IndexByte(first[1:], ':')
		if end < 0 {
			return nil, &SyntaxError{Msg: "missing \":\" after key", Line: start, Col: 2}
		}
		key := string(in[1 : end+1])
		in = in[end+2:]

		var val strings.Builder
		for {
			var l []byte
			if eol := bytes.IndexByte(in, '\n'); eol < 0 {
				l, in = in, nil
			} else {
				l, in = in[:eol], in[eol+1:]
			}
			line++
			if len(in) > 0 && len(l) > 0 && l[len(l)-1] == '\\' {
				val.Write(l[:len(l)-1])
				val.WriteByte('\n')
				continue
			}
			val.Write(l)
			break
		}

		if err := p.Set(key, strings.TrimSpace(val.String())); err != nil {
			return nil, &SyntaxError{Msg: err.Error(), Line: start, Col: 2}
		}
	}

	// Strip blank lines.
	for len(in) > 0 && in[0] == '\n' {
		in = in[1:]
	}
	if len(in) > 0 {
		p.Notes = in
	}
	return p, nil
}

// Set sets a single configuration key.
func (p *Pair) Set(key, value string) error {
	var err error
	switch key {
	case "left":
		p.Left = value
	case "right":
		p.Right = value
	case "lang":
		p.Lang = value
	case "diff":
		if _, err = diffs.ByName(value); err == nil {
			p.Diff = value
		}
	case "granularity":
		p.Options.Granularity, err = align.ParseGranularity(value)
	case "merge":
		p.Options.MergeConnectors, err = strconv.ParseBool(value)
	case "editable-left":
		p.Options.EditableLeft, err = strconv.ParseBool(value)
	case "editable-right":
		p.Options.EditableRight, err = strconv.ParseBool(value)
	case "line-height":
		p.Geometry.LineHeight, err = strconv.ParseFloat(value, 64)
	case "gutter-width":
		p.Geometry.Width, err = strconv.ParseFloat(value, 64)
	case "gutter-height":
		p.Geometry.Height, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %v", key, err)
	}
	return nil
}

// Paths returns the paths of both documents.
func (p *Pair) Paths() (left, right string, err error) {
	if p.Left == "" || p.Right == "" {
		return "", "", fmt.Errorf("%s: %w", cmp.Or(p.Name, "comparison"), ErrNoDocuments)
	}
	return p.resolve(p.Left), p.resolve(p.Right), nil
}

func (p *Pair) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Dir, path)
}

// Read reads both documents.
func (p *Pair) Read() (left, right string, err error) {
	lpath, rpath, err := p.Paths()
	if err != nil {
		return "", "", err
	}
	lb, err := os.ReadFile(lpath)
	if err != nil {
		return "", "", fmt.Errorf("reading left document: %v", err)
	}
	rb, err := os.ReadFile(rpath)
	if err != nil {
		return "", "", fmt.Errorf("reading right document: %v", err)
	}
	return string(lb), string(rb), nil
}
