package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"znkr.io/sidediff/viewer/align"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	pairFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestLoadOverrides(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"x.pair": "# X\n:left: a.txt\n:right: b.txt\n:granularity: fullLine\n:merge: true\n",
	})
	path := filepath.Join(dir, "x.pair")

	p, err := load(path, flags(t, "--right", "c.txt", "--line-height", "20"))
	if err != nil {
		t.Fatal(err)
	}

	if p.Left != "a.txt" || p.Right != "c.txt" {
		t.Errorf("documents = %q, %q, want %q, %q", p.Left, p.Right, "a.txt", "c.txt")
	}
	want := align.Options{Granularity: align.FullLine, MergeConnectors: true, EditableLeft: true}
	if diff := cmp.Diff(want, p.Options); diff != "" {
		t.Errorf("options are different (-want, +got):\n%s", diff)
	}
	if p.Geometry.LineHeight != 20 || p.Geometry.Width != 60 {
		t.Errorf("geometry = %+v, want line height 20 and width 60", p.Geometry)
	}
	if p.Title != "X" {
		t.Errorf("title = %q, want %q", p.Title, "X")
	}
}

func TestLoadFlagsOnly(t *testing.T) {
	p, err := load("", flags(t, "--left", "new/a.go", "--right", "old/a.go", "--diff", "lines"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "diff" || p.Title != "a.go ↔ a.go" || p.Diff != "lines" {
		t.Errorf("got name %q, title %q, diff %q", p.Name, p.Title, p.Diff)
	}
}

func TestLoadInvalidFlag(t *testing.T) {
	if _, err := load("", flags(t, "--granularity", "word")); err == nil {
		t.Errorf("load succeeded with invalid granularity, want error")
	}
}

func TestLoadAllDuplicateNames(t *testing.T) {
	dir := writeFiles(t, map[string]string{"x.pair": ":left: a\n:right: b\n"})
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "x.pair"), []byte(":left: a\n:right: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAll([]string{filepath.Join(dir, "x.pair"), filepath.Join(sub, "x.pair")}, flags(t)); err == nil {
		t.Errorf("loadAll succeeded with duplicate names, want error")
	}
}

func TestRerender(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"x.pair": ":left: a.txt\n:right: b.txt\n",
		"a.txt":  "foo\nbar\n",
		"b.txt":  "foo\nbaz\n",
		"c.txt":  "foo\nbar\n",
	})
	cs, err := loadAll([]string{filepath.Join(dir, "x.pair")}, flags(t))
	if err != nil {
		t.Fatal(err)
	}
	c := cs[0]

	for _, name := range []string{"x.pair", "a.txt", "b.txt"} {
		if !c.dependsOn(filepath.Join(dir, name)) {
			t.Errorf("comparison does not depend on %s", name)
		}
	}
	if c.dependsOn(filepath.Join(dir, "c.txt")) {
		t.Errorf("comparison depends on c.txt")
	}

	// Point the comparison to an identical document.
	if err := os.WriteFile(filepath.Join(dir, "x.pair"), []byte(":left: a.txt\n:right: c.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	page, err := c.rerender(flags(t))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(page.Result.Connectors); n != 0 {
		t.Errorf("got %d connectors for identical documents, want 0", n)
	}
	if !c.dependsOn(filepath.Join(dir, "c.txt")) {
		t.Errorf("comparison does not depend on c.txt after re-rendering")
	}

	// A broken comparison file keeps the previous configuration.
	if err := os.WriteFile(filepath.Join(dir, "x.pair"), []byte(":colour: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.rerender(flags(t)); err == nil {
		t.Errorf("rerender succeeded with broken comparison file, want error")
	}
	if got := c.viewer.Pair().Right; got != "c.txt" {
		t.Errorf("right document = %q after failed reload, want %q", got, "c.txt")
	}
}
