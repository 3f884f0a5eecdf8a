// Package gutter draws the connectors between two aligned documents.
//
// Connectors are drawn in a canvas between the two documents. Each one consists of a curve from
// the point in the document missing the text to the top of the changed lines, a vertical edge
// along the changed lines, and a curve back to the starting point.
package gutter

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"znkr.io/sidediff/viewer/align"
)

// Connector classes.
const (
	ClassDeletedConnector = "deletedCodeConnector"
	ClassNewConnector     = "newCodeConnector"
)

// Geometry is the layout of the documents and the gutter, in pixels.
type Geometry struct {
	LineHeight float64 `json:"lineHeight"` // Height of a line, the same in both documents
	Width      float64 `json:"width"`      // Width of the gutter
	Height     float64 `json:"height"`     // Minimum height of the gutter

	// Vertical scroll position of the documents.
	LeftScrollTop  float64 `json:"leftScrollTop"`
	RightScrollTop float64 `json:"rightScrollTop"`
}

// DefaultGeometry returns the geometry used if nothing else is configured.
func DefaultGeometry() Geometry {
	return Geometry{LineHeight: 16, Width: 60}
}

// Stale reports whether the geometry is unusable, e.g. because it was queried before the layout
// was complete. Connectors drawn with a stale geometry end up at the wrong positions.
func (g Geometry) Stale() bool {
	return g.LineHeight <= 0 || g.Width <= 0
}

// Path is a single connector path.
type Path struct {
	D     string `json:"d"`
	Class string `json:"class"`
}

// Canvas is the drawn gutter.
type Canvas struct {
	Width, Height float64
	Paths         []Path
}

// Draw draws the connectors of res.
//
// A stale geometry is not an error, the paths are still produced and a warning is logged.
func Draw(g Geometry, res *align.Result) *Canvas {
	if g.Stale() {
		log.Printf("stale gutter geometry (line height %v, width %v), connectors may be misplaced", g.LineHeight, g.Width)
	}

	c := &Canvas{
		Width:  g.Width,
		Height: max(float64(res.LeftLines)*g.LineHeight, float64(res.RightLines)*g.LineHeight, g.Height),
		Paths:  make([]Path, 0, len(res.Connectors)),
	}
	for _, conn := range res.Connectors {
		c.Paths = append(c.Paths, g.path(conn))
	}
	return c
}

type point struct{ x, y float64 }

func (g Geometry) path(c align.Connector) Path {
	lh := g.LineHeight
	left, right := 0.0, g.Width+1
	leftScroll, rightScroll := g.LeftScrollTop, g.RightScrollTop
	class := ClassDeletedConnector
	if c.Direction == align.LeftToRight {
		// Mirrored: the text is in the left document, the target in the right one.
		left, right = right, -1
		leftScroll, rightScroll = rightScroll, leftScroll
		class = ClassNewConnector
	}

	p1 := point{left, float64(c.TargetLine)*lh - leftScroll}
	p2 := point{right, float64(c.Source.StartLine)*lh - rightScroll}
	p3 := point{right, float64(c.Source.EndLine)*lh + lh - rightScroll}

	var sb strings.Builder
	sb.WriteString(Curve(p1.x, p1.y, p2.x, p2.y))
	fmt.Fprintf(&sb, " L%s,%s %s,%s ", num(p2.x), num(p2.y), num(p3.x), num(p3.y))
	sb.WriteString(Curve(p3.x, p3.y, p1.x, p1.y))
	return Path{D: sb.String(), Class: class}
}

// Curve returns an SVG path for a cubic Bézier curve from (sx, sy) to (ex, ey). Both control
// points are placed halfway between the two points horizontally, so that the curve leaves and
// arrives horizontally.
func Curve(sx, sy, ex, ey float64) string {
	hx := (ex-sx)/2 + sx
	return fmt.Sprintf("M %s %s C %s,%s %s,%s %s,%s",
		num(sx), num(sy),
		num(hx), num(sy), num(hx), num(ey), num(ex), num(ey))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type svg struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Class   string    `xml:"class,attr"`
	Paths   []svgPath `xml:"path"`
}

type svgPath struct {
	D     string `xml:"d,attr"`
	Class string `xml:"class,attr"`
}

// WriteSVG writes the canvas as a standalone SVG document.
func (c *Canvas) WriteSVG(w io.Writer) error {
	doc := svg{
		Xmlns:  "http://www.w3.org/2000/svg",
		Width:  num(c.Width),
		Height: num(c.Height),
		Class:  "gutter",
	}
	for _, p := range c.Paths {
		doc.Paths = append(doc.Paths, svgPath(p))
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding svg: %v", err)
	}
	return enc.Close()
}

// SVG returns the canvas as a standalone SVG document.
func (c *Canvas) SVG() ([]byte, error) {
	var sb strings.Builder
	if err := c.WriteSVG(&sb); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
