// Package markdown renders the notes of a comparison.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render renders markdown to HTML and returns it together with a table of contents of all
// headings below the top level. The table of contents is empty if there are no such headings. Raw
// HTML in the input is passed through.
func Render(data []byte) (body, contents template.HTML, err error) {
	if len(data) == 0 {
		return "", "", nil
	}

	root := md.Parser().Parse(text.NewReader(data))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, data, root); err != nil {
		return "", "", fmt.Errorf("rendering markdown: %v", err)
	}
	body = template.HTML(buf.String())

	tree, err := toc.Inspect(root, data, toc.MinDepth(2))
	if err != nil {
		return "", "", fmt.Errorf("building table of contents: %v", err)
	}
	if list := toc.RenderList(tree); list != nil {
		buf.Reset()
		if err := md.Renderer().Render(&buf, data, list); err != nil {
			return "", "", fmt.Errorf("rendering table of contents: %v", err)
		}
		contents = template.HTML(buf.String())
	}
	return body, contents, nil
}
