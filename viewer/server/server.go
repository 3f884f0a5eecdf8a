package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"znkr.io/sidediff/viewer/view"
)

// Server serves the latest rendering of a set of comparisons.
type Server struct {
	http    *http.Server
	handler *handler
	addr    net.Addr
	errc    chan error
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, pages []*view.Page) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{}
	h.pages.Store(&pages)

	s := &Server{
		http: &http.Server{
			Handler: h,
		},
		handler: h,
		addr:    l.Addr(),
		errc:    make(chan error, 1),
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// ReplacePages replaces the pages to serve with the ones provided. Requests in flight finish with
// the pages they started with.
func (s *Server) ReplacePages(pages []*view.Page) {
	s.handler.pages.Store(&pages)
}

// ReplacePage replaces a single page with one of the same name. Unknown pages are added.
func (s *Server) ReplacePage(page *view.Page) {
	for {
		old := s.handler.pages.Load()
		pages := make([]*view.Page, 0, len(*old)+1)
		replaced := false
		for _, p := range *old {
			if p.Name == page.Name {
				p, replaced = page, true
			}
			pages = append(pages, p)
		}
		if !replaced {
			pages = append(pages, page)
		}
		if s.handler.pages.CompareAndSwap(old, &pages) {
			return
		}
	}
}

// Shutdown gracefully stops the sever.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP sever: %v", err)
	}
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
