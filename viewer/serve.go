package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"znkr.io/sidediff/viewer/server"
	"znkr.io/sidediff/viewer/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve [comparison.pair...]",
	Short: "Serve comparisons and re-render them whenever a document changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}

		cs, err := loadAll(args, cmd.Flags())
		if err != nil {
			return fmt.Errorf("loading comparisons: %v", err)
		}
		pages, err := renderAll(cs)
		if err != nil {
			return err
		}

		// Start serving.
		srv, err := server.Run(addr, pages)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
		log.Printf("Now serving at http://%s, press Ctrl-C to shut down", srv.Addr())

		// Setup file watcher to trigger re-rendering should any document change on disk. Editors
		// often replace files instead of writing them, so the directories are watched instead of
		// the files.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %v", err)
		}
		defer watcher.Close()
		if err := watch(watcher, cs); err != nil {
			return fmt.Errorf("starting watch: %v", err)
		}
		{
			wl := watcher.WatchList()
			slices.Sort(wl)
			log.Printf("Watching:\n    %v", strings.Join(wl, "\n    "))
		}

		// Setup signals to react to Ctrl-C.
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		for {
			select {
			case event := <-watcher.Events:
				// Absolutely no need to react to chmod.
				if event.Has(fsnotify.Chmod) {
					continue
				}

				for _, c := range cs {
					if !c.dependsOn(event.Name) {
						continue
					}
					// Re-render from scratch. This is more than fast enough, there's no need for
					// any kind of incremental update.
					start := time.Now()
					page, err := c.rerender(cmd.Flags())
					if err != nil {
						log.Printf("failed to update %s: %v", c.viewer.Pair().Name, err)
						continue
					}
					srv.ReplacePage(page)
					log.Printf("%s re-rendered (%v)", page.Name, time.Since(start))
				}

				// A comparison file might name other documents now.
				if err := watch(watcher, cs); err != nil {
					return fmt.Errorf("adding watch: %v", err)
				}
			case err := <-watcher.Errors:
				return fmt.Errorf("watching: %v", err)
			case err := <-srv.Error():
				return fmt.Errorf("serving: %v", err)
			case <-sigint:
				fmt.Print("\r") // remove Ctrl-C output characters
				log.Printf("Received Ctrl-C, shutting down")
				return nil
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "localhost:8080", "address to serve at")
	pairFlags(serveCmd.Flags())
}

// files returns the absolute paths of all files the comparison depends on.
func (c *comparison) files() []string {
	files := c.viewer.Watched()
	if c.path != "" {
		files = append(files, c.path)
	}
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	return files
}

func (c *comparison) dependsOn(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return slices.Contains(c.files(), abs)
}

// rerender reloads the comparison file, if any, and renders the comparison again. If the
// comparison file is broken, the previous configuration stays in effect.
func (c *comparison) rerender(fs *pflag.FlagSet) (*view.Page, error) {
	if c.path != "" {
		p, err := load(c.path, fs)
		if err != nil {
			return nil, err
		}
		c.viewer.SetPair(p)
	}
	return c.viewer.Render()
}

// watch makes sure that the directories of all files of all comparisons are watched.
func watch(watcher *fsnotify.Watcher, cs []*comparison) error {
	for _, c := range cs {
		for _, f := range c.files() {
			dir := filepath.Dir(f)
			if slices.Contains(watcher.WatchList(), dir) {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}
	}
	return nil
}
