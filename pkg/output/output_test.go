package output

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gocloud.dev/blob/memblob"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

func testFramebuffer() *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewVec3(1, 0, 0))
	fb.Set(1, 0, core.NewVec3(0.5, 0.5, 0.5))
	fb.Set(0, 1, core.NewVec3(-1, 2, 0.25))
	return fb
}

const expectedPPM = "P3\n2 2\n255\n255 0 0\n128 128 128\n0 255 64\n0 0 0\n"

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testFramebuffer()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != expectedPPM {
		t.Errorf("Expected:\n%q\ngot:\n%q", expectedPPM, buf.String())
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testFramebuffer()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode png: %v", err)
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 || a>>8 != 255 {
		t.Errorf("Expected gray pixel, got %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testFramebuffer(), "gif"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := Write(&buf, nil, PPM); err == nil {
		t.Error("Expected error for nil framebuffer")
	}
	if err := Write(&buf, nil, PNG); err == nil {
		t.Error("Expected error for nil framebuffer")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.png":   PNG,
		"OUT.PNG":   PNG,
		"out.ppm":   PPM,
		"-":         PPM,
		"render":    PPM,
		"dir/a.png": PNG,
	}
	for path, expected := range tests {
		if got := FormatFromPath(path); got != expected {
			t.Errorf("%s: expected %s, got %s", path, expected, got)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.ppm")
	if err := WriteFile(path, testFramebuffer(), PPM); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != expectedPPM {
		t.Errorf("Unexpected file contents %q", data)
	}
}

func TestWriteBucket(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	if err := WriteBucket(ctx, bucket, "renders/ring.ppm", testFramebuffer(), PPM); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := bucket.ReadAll(ctx, "renders/ring.ppm")
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if string(data) != expectedPPM {
		t.Errorf("Unexpected object contents %q", data)
	}

	attrs, err := bucket.Attributes(ctx, "renders/ring.ppm")
	if err != nil {
		t.Fatal(err)
	}
	if attrs.ContentType != "image/x-portable-pixmap" {
		t.Errorf("Expected pixmap content type, got %s", attrs.ContentType)
	}
}

func TestWriteBucket_FailedWriteLeavesNoObject(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	if err := WriteBucket(ctx, bucket, "broken.gif", testFramebuffer(), "gif"); err == nil {
		t.Fatal("Expected an error")
	}
	if exists, _ := bucket.Exists(ctx, "broken.gif"); exists {
		t.Error("Expected the failed object not to be committed")
	}
	if err := WriteBucket(ctx, bucket, "-", testFramebuffer(), PPM); err == nil {
		t.Error("Expected an error for a missing key")
	}
}

func TestWriteToBucket_File(t *testing.T) {
	dir := t.TempDir()
	if err := WriteToBucket(context.Background(), "file://"+filepath.ToSlash(dir), "out.ppm", testFramebuffer(), PPM); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out.ppm"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != expectedPPM {
		t.Errorf("Unexpected file contents %q", data)
	}

	if err := WriteToBucket(context.Background(), "nope://x", "out.ppm", testFramebuffer(), PPM); err == nil {
		t.Error("Expected an error for an unknown scheme")
	}
}
