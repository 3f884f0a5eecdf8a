package server

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"znkr.io/sidediff/viewer/view"
)

type handler struct {
	pages atomic.Pointer[[]*view.Page]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	pages := *h.pages.Load()

	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	f, err := lookup(pages, req.URL.Path)
	if err == nil && f != nil && f.Path == "gutter.svg" && req.URL.RawQuery != "" {
		f, err = scrolled(pages, req, *f)
	}
	var qerr *queryError
	if errors.As(err, &qerr) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		log.Printf("failed to serve %v: %v", req.URL.EscapedPath(), err)
		return
	}
	if f == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", f.MimeType)
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(f.Data); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// lookup finds the file for a request path. A single comparison is served at the root, several
// comparisons are served below their names with an index at the root.
func lookup(pages []*view.Page, path string) (*view.File, error) {
	path = strings.TrimPrefix(path, "/")
	if len(pages) == 1 {
		return pages[0].File(path), nil
	}
	if path == "" || path == "index.html" {
		return view.Index(pages)
	}
	name, rest, _ := strings.Cut(path, "/")
	for _, p := range pages {
		if p.Name == name {
			return p.File(rest), nil
		}
	}
	return nil, nil
}

type queryError struct {
	param string
	err   error
}

func (err *queryError) Error() string {
	return fmt.Sprintf("invalid %s: %v", err.param, err.err)
}

// scrolled redraws the gutter f for the scroll positions in the query.
func scrolled(pages []*view.Page, req *http.Request, f view.File) (*view.File, error) {
	page := pages[0]
	if len(pages) > 1 {
		name, _, _ := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")
		for _, p := range pages {
			if p.Name == name {
				page = p
			}
		}
	}

	q := req.URL.Query()
	scroll := func(param string) (float64, error) {
		v := q.Get(param)
		if v == "" {
			return 0, nil
		}
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &queryError{param, err}
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, &queryError{param, errors.New("not a finite number")}
		}
		return s, nil
	}
	left, err := scroll("left-scroll")
	if err != nil {
		return nil, err
	}
	right, err := scroll("right-scroll")
	if err != nil {
		return nil, err
	}
	f.Data, err = page.Scrolled(left, right)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
