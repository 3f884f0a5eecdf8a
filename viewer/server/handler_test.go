package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"znkr.io/sidediff/viewer/align"
	"znkr.io/sidediff/viewer/gutter"
	"znkr.io/sidediff/viewer/view"
)

func page(name string) *view.Page {
	return &view.Page{
		Name: name,
		HTML: []byte("<p>" + name + "</p>"),
		SVG:  []byte("<svg></svg>"),
		JSON: []byte(`{"title":"` + name + `"}`),
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		pages    []*view.Page
		method   string
		path     string
		wantCode int
		wantType string
		wantBody string
	}{
		{"single_root", []*view.Page{page("a")}, "GET", "/", 200, "text/html;charset=utf-8", "<p>a</p>"},
		{"single_svg", []*view.Page{page("a")}, "GET", "/gutter.svg", 200, "image/svg+xml", "<svg></svg>"},
		{"single_json", []*view.Page{page("a")}, "GET", "/result.json", 200, "application/json", `{"title":"a"}`},
		{"single_unknown", []*view.Page{page("a")}, "GET", "/style.css", 404, "text/plain", "not found"},
		{"head", []*view.Page{page("a")}, "HEAD", "/", 200, "text/html;charset=utf-8", ""},
		{"head_unknown", []*view.Page{page("a")}, "HEAD", "/x", 404, "text/plain", ""},
		{"post", []*view.Page{page("a")}, "POST", "/", 501, "", ""},
		{"multi_page", []*view.Page{page("a"), page("b")}, "GET", "/b/", 200, "text/html;charset=utf-8", "<p>b</p>"},
		{"multi_json", []*view.Page{page("a"), page("b")}, "GET", "/a/result.json", 200, "application/json", `{"title":"a"}`},
		{"multi_unknown", []*view.Page{page("a"), page("b")}, "GET", "/c/", 404, "text/plain", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handler{}
			h.pages.Store(&tt.pages)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestHandlerIndex(t *testing.T) {
	pages := []*view.Page{page("a"), page("b")}
	h := &handler{}
	h.pages.Store(&pages)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(rec.Body.String(), `<a href="b/">b</a>`) {
		t.Errorf("index does not link to b:\n%s", rec.Body.String())
	}
}

func TestServer(t *testing.T) {
	s, err := Run("localhost:0", []*view.Page{page("a")})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Shutdown(context.Background())

	get := func() string {
		t.Helper()
		resp, err := http.Get("http://" + s.Addr().String() + "/")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}

	if got := get(); got != "<p>a</p>" {
		t.Errorf("got %q, want %q", got, "<p>a</p>")
	}

	next := page("a")
	next.HTML = []byte("<p>updated</p>")
	s.ReplacePage(next)
	if got := get(); got != "<p>updated</p>" {
		t.Errorf("got %q after ReplacePage, want %q", got, "<p>updated</p>")
	}

	s.ReplacePages([]*view.Page{page("x"), page("y")})
	if got := get(); !strings.Contains(got, `href="x/"`) {
		t.Errorf("got %q after ReplacePages, want index", got)
	}
}

func TestHandlerScrolledGutter(t *testing.T) {
	ops := []align.Op{
		{Kind: align.Equal, Text: "foo\n"},
		{Kind: align.Delete, Text: "baz"},
		{Kind: align.Insert, Text: "bar"},
		{Kind: align.Equal, Text: "\n"},
	}
	res, err := align.Align("foo\nbar\n", "foo\nbaz\n", ops, align.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	p := page("a")
	p.Result = res
	p.Geometry = gutter.DefaultGeometry()

	tests := []struct {
		name     string
		pages    []*view.Page
		path     string
		wantCode int
		wantBody string
	}{
		{"single", []*view.Page{p}, "/gutter.svg?left-scroll=8", 200, `d="M 0 8 C 30.5,8 30.5,16 61,16`},
		{"multi", []*view.Page{page("b"), p}, "/a/gutter.svg?left-scroll=8&right-scroll=16", 200, `d="M 0 8 C 30.5,8 30.5,0 61,0`},
		{"other_file", []*view.Page{p}, "/result.json?left-scroll=8", 200, `{"title":"a"}`},
		{"invalid", []*view.Page{p}, "/gutter.svg?right-scroll=up", 400, "invalid right-scroll"},
		{"nan", []*view.Page{p}, "/gutter.svg?left-scroll=NaN", 400, "invalid left-scroll: not a finite number"},
		{"inf", []*view.Page{p}, "/gutter.svg?right-scroll=-Inf", 400, "invalid right-scroll: not a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handler{}
			h.pages.Store(&tt.pages)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Body.String(); !strings.Contains(got, tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", got, tt.wantBody)
			}
		})
	}
}
