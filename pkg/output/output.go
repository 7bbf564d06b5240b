// Package output serializes rendered framebuffers to image files, locally or
// into a blob bucket.
package output

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// Supported formats
const (
	PPM = "ppm"
	PNG = "png"
)

// Write encodes fb to w in the given format
func Write(w io.Writer, fb *renderer.Framebuffer, format string) error {
	switch format {
	case PPM:
		return WritePPM(w, fb)
	case PNG:
		return WritePNG(w, fb)
	}
	return errors.Errorf("unknown output format %q", format)
}

// WriteFile creates path and encodes fb into it. The path "-" writes to stdout.
func WriteFile(path string, fb *renderer.Framebuffer, format string) error {
	if path == "-" {
		return Write(os.Stdout, fb, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := Write(f, fb, format); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

// FormatFromPath guesses the format from a file extension, defaulting to PPM
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return PNG
	}
	return PPM
}

// ContentType returns the MIME type for format
func ContentType(format string) string {
	if format == PNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// WritePPM writes fb as a plain-text P3 pixmap: a "P3", "W H", "255" header,
// then one "r g b" line per pixel in row-major order.
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	if fb == nil {
		return errors.New("nothing to write: empty framebuffer")
	}

	buf := bufio.NewWriterSize(w, 1<<20) // use 1MB buffer
	if _, err := fmt.Fprintf(buf, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return errors.Wrap(err, "writing ppm header")
	}
	for _, c := range fb.Pix {
		r, g, b := core.ToRGB(c)
		if _, err := fmt.Fprintf(buf, "%d %d %d\n", r, g, b); err != nil {
			return errors.Wrap(err, "writing ppm pixels")
		}
	}
	return errors.Wrap(buf.Flush(), "flushing ppm")
}

// WritePNG writes fb as an 8-bit opaque PNG
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	if fb == nil {
		return errors.New("nothing to write: empty framebuffer")
	}
	return errors.Wrap(png.Encode(w, fb.ToRGBA()), "encoding png")
}
