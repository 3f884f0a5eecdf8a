package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"znkr.io/sidediff/viewer/diffs"
	"znkr.io/sidediff/viewer/pair"
	"znkr.io/sidediff/viewer/view"
)

// pairFlags registers the flags that override settings of comparison files. Flag names are the
// keys of comparison files.
func pairFlags(fs *pflag.FlagSet) {
	fs.String("left", "", "left (edited) document")
	fs.String("right", "", "right (reference) document")
	fs.String("lang", "", "language for syntax highlighting")
	fs.String("diff", "chars", fmt.Sprintf("diff provider %v", diffs.Names()))
	fs.String("granularity", "character", "highlight granularity [character, fullLine]")
	fs.Bool("merge", false, "merge connectors of consecutive single line insertions")
	fs.Bool("editable-left", true, "left document accepts input")
	fs.Bool("editable-right", false, "right document accepts input")
	fs.Float64("line-height", 16, "line height in pixels")
	fs.Float64("gutter-width", 60, "gutter width in pixels")
	fs.Float64("gutter-height", 0, "minimum gutter height in pixels")
}

var pairKeys = map[string]bool{
	"left": true, "right": true, "lang": true, "diff": true, "granularity": true, "merge": true,
	"editable-left": true, "editable-right": true,
	"line-height": true, "gutter-width": true, "gutter-height": true,
}

// load loads a comparison. Without a comparison file, the comparison is configured by flags only.
// Flags set explicitly take precedence over the comparison file.
func load(path string, fs *pflag.FlagSet) (*pair.Pair, error) {
	var p *pair.Pair
	if path != "" {
		var err error
		p, err = pair.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining workdir: %v", err)
		}
		p = pair.New()
		p.Dir = dir
		p.Name = "diff"
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || !pairKeys[f.Name] {
			return
		}
		if e := p.Set(f.Name, f.Value.String()); e != nil {
			err = fmt.Errorf("--%s: %v", f.Name, e)
		}
	})
	if err != nil {
		return nil, err
	}

	p.Title = cmp.Or(p.Title, fmt.Sprintf("%s ↔ %s", filepath.Base(p.Left), filepath.Base(p.Right)))
	return p, nil
}

// comparison is a comparison and where it came from.
type comparison struct {
	path   string // comparison file, empty if configured by flags only
	viewer *view.Viewer
}

// loadAll loads all comparisons named by args, or a single one configured by flags if there are
// none.
func loadAll(args []string, fs *pflag.FlagSet) ([]*comparison, error) {
	if len(args) == 0 {
		args = []string{""}
	}
	var cs []*comparison
	names := make(map[string]string)
	for _, path := range args {
		p, err := load(path, fs)
		if err != nil {
			return nil, err
		}
		if prev, ok := names[p.Name]; ok {
			return nil, fmt.Errorf("%s and %s have the same name %q", prev, path, p.Name)
		}
		names[p.Name] = path
		cs = append(cs, &comparison{path: path, viewer: view.New(p)})
	}
	return cs, nil
}

// renderAll renders all comparisons.
func renderAll(cs []*comparison) ([]*view.Page, error) {
	pages := make([]*view.Page, 0, len(cs))
	for _, c := range cs {
		page, err := c.viewer.Render()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", c.viewer.Pair().Name, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
