package pair

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"znkr.io/sidediff/viewer/align"
	"znkr.io/sidediff/viewer/gutter"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Pair
	}{
		{
			name: "empty",
			in:   "",
			want: New(),
		},
		{
			name: "full",
			in: `# Parser rewrite
:left: new/parse.go
:right: old/parse.go
:lang: go
:diff: lines
:granularity: fullLine
:merge: true
:editable-left: false
:editable-right: true
:line-height: 18.5
:gutter-width: 80
:gutter-height: 600

Some *notes*.
`,
			want: &Pair{
				Title: "Parser rewrite",
				Left:  "new/parse.go",
				Right: "old/parse.go",
				Lang:  "go",
				Diff:  "lines",
				Options: align.Options{
					Granularity:     align.FullLine,
					MergeConnectors: true,
					EditableLeft:    false,
					EditableRight:   true,
				},
				Geometry: gutter.Geometry{LineHeight: 18.5, Width: 80, Height: 600},
				Notes:    []byte("Some *notes*.\n"),
			},
		},
		{
			name: "no_title",
			in:   ":left: a.txt\n:right: b.txt\n",
			want: func() *Pair {
				p := New()
				p.Left, p.Right = "a.txt", "b.txt"
				return p
			}(),
		},
		{
			name: "continuation",
			in:   "# T\n:left: a\\\nb\n:right: c\n\n\n\nnotes",
			want: func() *Pair {
				p := New()
				p.Title = "T"
				p.Left, p.Right = "a\nb", "c"
				p.Notes = []byte("notes")
				return p
			}(),
		},
		{
			name: "title_only",
			in:   "# Just a title",
			want: func() *Pair {
				p := New()
				p.Title = "Just a title"
				return p
			}(),
		},
		{
			name: "notes_only",
			in:   "Only notes.\n",
			want: func() *Pair {
				p := New()
				p.Notes = []byte("Only notes.\n")
				return p
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *SyntaxError
	}{
		{
			name: "unknown_key",
			in:   "# T\n:left: a\n:colour: red\n",
			want: &SyntaxError{Msg: `unknown key "colour"`, Line: 3, Col: 2},
		},
		{
			name: "missing_colon",
			in:   ":left a\n",
			want: &SyntaxError{Msg: `missing ":" after key`, Line: 1, Col: 2},
		},
		{
			name: "bad_bool",
			in:   ":merge: sometimes\n",
			want: &SyntaxError{Msg: `invalid value for merge: strconv.ParseBool: parsing "sometimes": invalid syntax`, Line: 1, Col: 2},
		},
		{
			name: "bad_granularity",
			in:   ":left: a\\\n  still a\n:granularity: word\n",
			want: &SyntaxError{Msg: `invalid value for granularity: unknown granularity "word"`, Line: 3, Col: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			var got *SyntaxError
			if !errors.As(err, &got) {
				t.Fatalf("Parse returned %v, want *SyntaxError", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("error is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSetUnknownDiff(t *testing.T) {
	p := New()
	if err := p.Set("diff", "words"); err == nil {
		t.Errorf("Set(diff, words) succeeded, want error")
	}
	if p.Diff != "chars" {
		t.Errorf("Diff = %q after failed Set, want %q", p.Diff, "chars")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	write("a.txt", "foo\nbar\n")
	write("b.txt", "foo\nbaz\n")
	path := write("example.pair", ":left: a.txt\n:right: b.txt\n")

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "example" || p.Title != "example" {
		t.Errorf("got name %q and title %q, want %q for both", p.Name, p.Title, "example")
	}

	lpath, rpath, err := p.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "a.txt"); lpath != want {
		t.Errorf("left path = %q, want %q", lpath, want)
	}
	if want := filepath.Join(dir, "b.txt"); rpath != want {
		t.Errorf("right path = %q, want %q", rpath, want)
	}

	left, right, err := p.Read()
	if err != nil {
		t.Fatal(err)
	}
	if left != "foo\nbar\n" || right != "foo\nbaz\n" {
		t.Errorf("Read() = %q, %q", left, right)
	}
}

func TestNoDocuments(t *testing.T) {
	p := New()
	p.Left = "a.txt"
	if _, _, err := p.Paths(); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("Paths() returned %v, want ErrNoDocuments", err)
	}
	if _, _, err := p.Read(); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("Read() returned %v, want ErrNoDocuments", err)
	}
}
