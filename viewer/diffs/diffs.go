// Package diffs provides the diff providers for the alignment engine.
//
// A provider is called with the right (reference) document first and the left (edited) document
// second. Text only present in the right document is reported as a deletion, text only present in
// the left document as an insertion.
package diffs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"

	"znkr.io/sidediff/viewer/align"
)

// Chars computes a character diff with a semantic cleanup pass, which shifts the boundaries of
// changes to word and line boundaries where possible.
func Chars(right, left string) []align.Op {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(right, left, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]align.Op, 0, len(diffs))
	for _, d := range diffs {
		var kind align.Kind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = align.Equal
		case diffmatchpatch.DiffDelete:
			kind = align.Delete
		case diffmatchpatch.DiffInsert:
			kind = align.Insert
		}
		ops = appendOp(ops, kind, d.Text)
	}
	return ops
}

// Lines computes a line diff. Every operation covers complete lines, including their newline
// characters.
func Lines(right, left string) []align.Op {
	edits := textdiff.Edits(right, left, textdiff.IndentHeuristic())

	var ops []align.Op
	for _, edit := range edits {
		var kind align.Kind
		switch edit.Op {
		case diff.Match:
			kind = align.Equal
		case diff.Delete:
			kind = align.Delete
		case diff.Insert:
			kind = align.Insert
		}
		ops = appendOp(ops, kind, edit.Line)
	}
	return ops
}

// appendOp appends an operation, joining it with the last one if both are of the same kind.
func appendOp(ops []align.Op, kind align.Kind, text string) []align.Op {
	if text == "" {
		return ops
	}
	if n := len(ops); n > 0 && ops[n-1].Kind == kind {
		ops[n-1].Text += text
		return ops
	}
	return append(ops, align.Op{Kind: kind, Text: text})
}

var providers = map[string]align.Provider{
	"chars": Chars,
	"lines": Lines,
}

// Names returns the names of all providers.
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns the provider with the given name.
func ByName(name string) (align.Provider, error) {
	p, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown diff provider %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	return p, nil
}
