// Package view renders comparisons.
package view

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"znkr.io/sidediff/viewer/align"
	"znkr.io/sidediff/viewer/diffs"
	"znkr.io/sidediff/viewer/gutter"
	"znkr.io/sidediff/viewer/highlight"
	"znkr.io/sidediff/viewer/markdown"
	"znkr.io/sidediff/viewer/markers"
	"znkr.io/sidediff/viewer/pair"
)

var (
	//go:embed page.html
	pageHTML string
	//go:embed style.css
	styleCSS string

	pageTemplate = template.Must(template.New("page").Parse(pageHTML))

	renderNotes = markdown.Render
)

// Page is a rendered comparison.
type Page struct {
	Name     string
	HTML     []byte // The complete page
	SVG      []byte // The gutter
	JSON     []byte // The alignment result
	Result   *align.Result
	Geometry gutter.Geometry
}

// Scrolled redraws the gutter for scrolled documents.
func (p *Page) Scrolled(leftScrollTop, rightScrollTop float64) ([]byte, error) {
	g := p.Geometry
	g.LeftScrollTop, g.RightScrollTop = leftScrollTop, rightScrollTop
	return gutter.Draw(g, p.Result).SVG()
}

// Viewer renders a comparison, and keeps rendering it as the documents change.
//
// A viewer owns an alignment engine whose markers are kept across renderings. A rendering either
// succeeds and replaces all markers, or fails and leaves the previous ones in place.
type Viewer struct {
	mu     sync.Mutex
	pair   *pair.Pair
	sink   *markers.Set
	engine *align.Engine
}

// New creates a viewer for p.
func New(p *pair.Pair) *Viewer {
	sink := markers.New()
	return &Viewer{
		pair:   p,
		sink:   sink,
		engine: align.NewEngine(p.Options, sink),
	}
}

// Pair returns the comparison being rendered.
func (v *Viewer) Pair() *pair.Pair {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pair
}

// SetPair replaces the comparison, e.g. after the comparison file was edited. The markers of the
// previous rendering stay in place until the next successful rendering.
func (v *Viewer) SetPair(p *pair.Pair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pair = p
}

// Watched returns the paths of all files the rendering depends on.
func (v *Viewer) Watched() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	left, right, err := v.pair.Paths()
	if err != nil {
		return nil
	}
	return []string{left, right}
}

// Render reads both documents, aligns them, and renders the result.
func (v *Viewer) Render() (*Page, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := v.pair

	left, right, err := p.Read()
	if err != nil {
		return nil, err
	}
	provider, err := diffs.ByName(p.Diff)
	if err != nil {
		return nil, err
	}

	// The page is rendered from markers of its own. The viewer's markers are only replaced once
	// the page is complete.
	ops := provider(right, left)
	staged := markers.New()
	res, err := align.NewEngine(p.Options, staged).Run(left, right, ops)
	if err != nil {
		return nil, fmt.Errorf("aligning %s: %w", p.Name, err)
	}

	leftPane, err := v.pane(staged, align.Left, left, p.Left, p.Options.EditableLeft)
	if err != nil {
		return nil, err
	}
	rightPane, err := v.pane(staged, align.Right, right, p.Right, p.Options.EditableRight)
	if err != nil {
		return nil, err
	}

	canvas := gutter.Draw(p.Geometry, res)
	svg, err := canvas.SVG()
	if err != nil {
		return nil, err
	}

	notes, contents, err := renderNotes(p.Notes)
	if err != nil {
		return nil, fmt.Errorf("rendering notes: %v", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title                   string
		Style                   template.CSS
		LeftName, RightName     string
		LineHeight, GutterWidth float64
		LeftPane, RightPane     pane
		Gutter                  template.HTML
		Notes, Contents         template.HTML
	}{
		Title:       p.Title,
		Style:       template.CSS(styleCSS),
		LeftName:    p.Left,
		RightName:   p.Right,
		LineHeight:  p.Geometry.LineHeight,
		GutterWidth: p.Geometry.Width,
		LeftPane:    leftPane,
		RightPane:   rightPane,
		Gutter:      template.HTML(svg),
		Notes:       notes,
		Contents:    contents,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %v", err)
	}

	js, err := json.MarshalIndent(struct {
		Title    string          `json:"title"`
		Options  align.Options   `json:"options"`
		Geometry gutter.Geometry `json:"geometry"`
		Paths    []gutter.Path   `json:"paths"`
		*align.Result
	}{p.Title, p.Options, p.Geometry, canvas.Paths, res}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %v", err)
	}

	v.engine.SetOptions(p.Options)
	if _, err := v.engine.Run(left, right, ops); err != nil {
		return nil, fmt.Errorf("aligning %s: %w", p.Name, err)
	}

	return &Page{
		Name:     p.Name,
		HTML:     buf.Bytes(),
		SVG:      svg,
		JSON:     js,
		Result:   res,
		Geometry: p.Geometry,
	}, nil
}

type pane struct {
	Side     string
	Editable bool
	Lines    []highlight.Line
}

func (v *Viewer) pane(marks *markers.Set, side align.Side, text, filename string, editable bool) (pane, error) {
	lines, err := highlight.Document(text, marks.Markers(side),
		highlight.Lang(v.pair.Lang),
		highlight.LangFromFilename(filepath.Base(filename)))
	if err != nil {
		return pane{}, fmt.Errorf("highlighting %s document: %v", side, err)
	}
	return pane{Side: side.String(), Editable: editable, Lines: lines}, nil
}
