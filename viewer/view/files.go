package view

import (
	"bytes"
	"fmt"
	"html/template"
)

// File is a single file of a rendered comparison.
type File struct {
	Path     string // Relative to the comparison
	MimeType string
	Data     []byte
}

// Files returns all files of a page.
func (p *Page) Files() []File {
	return []File{
		{"index.html", "text/html;charset=utf-8", p.HTML},
		{"gutter.svg", "image/svg+xml", p.SVG},
		{"result.json", "application/json", p.JSON},
	}
}

// File returns the file at path, or nil if there is none. The empty path is the page itself.
func (p *Page) File(path string) *File {
	if path == "" {
		path = "index.html"
	}
	for _, f := range p.Files() {
		if f.Path == path {
			return &f
		}
	}
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Comparisons</title>
</head>
<body>
<ul>
{{- range .}}
<li><a href="{{.Name}}/">{{.Name}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

// Index renders a page linking to all pages.
func Index(pages []*Page) (*File, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, pages); err != nil {
		return nil, fmt.Errorf("rendering index: %v", err)
	}
	return &File{"index.html", "text/html;charset=utf-8", buf.Bytes()}, nil
}
