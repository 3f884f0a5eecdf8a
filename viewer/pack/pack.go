package pack

import (
	"archive/tar"
	"fmt"
	"io"
	"mime"
	"os"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"

	"znkr.io/sidediff/viewer/view"
)

// Pack writes the pages to a new tar file. Every page ends up in a directory of its name.
func Pack(filename string, pages []*view.Page) error {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %v", err)
	}
	defer file.Close()

	if err := Write(file, pages); err != nil {
		return err
	}
	return file.Close()
}

// Write writes the pages as a tar archive to w.
func Write(w io.Writer, pages []*view.Page) error {
	minifier := minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	minifier.AddFunc("image/svg+xml", svg.Minify)
	minifier.AddFunc("application/json", json.Minify)

	tw := tar.NewWriter(w)

	if err := tw.WriteHeader(&tar.Header{Name: "./", Mode: int64(0755), Typeflag: tar.TypeDir}); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}

	if len(pages) > 1 {
		index, err := view.Index(pages)
		if err != nil {
			return err
		}
		if err := writeFile(tw, minifier, "", *index); err != nil {
			return err
		}
	}

	for _, p := range pages {
		hdr := &tar.Header{
			Name:     "./" + p.Name + "/",
			Mode:     int64(0755),
			Typeflag: tar.TypeDir,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header: %v", err)
		}
		for _, f := range p.Files() {
			if err := writeFile(tw, minifier, p.Name+"/", f); err != nil {
				return err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %v", err)
	}
	return nil
}

func writeFile(tw *tar.Writer, minifier *minify.M, dir string, f view.File) error {
	if _, _, err := mime.ParseMediaType(f.MimeType); err != nil {
		return fmt.Errorf("invalid mime type: %v", err)
	}

	b, err := minifier.Bytes(f.MimeType, f.Data)
	if err != nil {
		return fmt.Errorf("minification of failed for %s%s: %v", dir, f.Path, err)
	}

	hdr := &tar.Header{
		Name:     "./" + dir + f.Path,
		Mode:     int64(0644),
		Size:     int64(len(b)),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}
	if _, err := tw.Write(b); err != nil {
		return fmt.Errorf("writing body: %v", err)
	}
	return nil
}
