package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

func TestBlit(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 3))
	update := renderer.TileUpdate{
		X: 1, Y: 1, Width: 2, Height: 2,
		Pixels: []byte{
			10, 20, 30, 40, 50, 60,
			70, 80, 90, 100, 110, 120,
		},
	}

	Blit(dst, update)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{1, 1, color.RGBA{10, 20, 30, 255}},
		{2, 1, color.RGBA{40, 50, 60, 255}},
		{1, 2, color.RGBA{70, 80, 90, 255}},
		{2, 2, color.RGBA{100, 110, 120, 255}},
		{0, 0, color.RGBA{}},
		{3, 2, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Expected %v at (%d,%d), got %v", tt.expected, tt.x, tt.y, got)
		}
	}
}

func TestBlit_ClipsToImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	update := renderer.TileUpdate{
		X: 1, Y: 1, Width: 2, Height: 2,
		Pixels: []byte{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
		},
	}

	Blit(dst, update)

	if got := dst.RGBAAt(1, 1); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Expected first pixel to land at (1,1), got %v", got)
	}
}

func TestCanvas_StartsOpaqueBlack(t *testing.T) {
	c := NewCanvas(3, 2)

	if c.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Expected 3x2 bounds, got %v", c.Bounds())
	}
	for i := 0; i < len(c.img.Pix); i += 4 {
		if c.img.Pix[i] != 0 || c.img.Pix[i+3] != 255 {
			t.Fatalf("Expected opaque black, got %v", c.img.Pix[i:i+4])
		}
	}
	if _, changed := c.Snapshot(); changed {
		t.Error("Expected no snapshot before any tile")
	}
}

func TestCanvas_ReceivesRender(t *testing.T) {
	s := scene.New("golden", background.White)
	width, height := 40, 20
	config := renderer.DefaultProgressiveConfig()
	config.TileSize = 16
	config.SamplesPerPixel = 1
	pr := renderer.NewProgressiveRaytracer(s, width, height, config, nil)

	c := NewCanvas(width, height)
	var completed bool
	c.OnComplete(func(renderer.RenderStats) { completed = true })

	fb, _ := pr.RenderProgressive(c)

	tiles, total, done := c.Progress()
	if tiles != 6 || total != 6 || !done || !completed {
		t.Errorf("Expected 6/6 tiles and completion, got %d/%d done=%v callback=%v", tiles, total, done, completed)
	}
	if c.Stats().TotalPixels != width*height {
		t.Errorf("Expected %d pixels in stats, got %d", width*height, c.Stats().TotalPixels)
	}

	pix, changed := c.Snapshot()
	if !changed {
		t.Fatal("Expected a snapshot after rendering")
	}
	expected := fb.ToRGBA()
	if string(pix) != string(expected.Pix) {
		t.Error("Expected canvas pixels to match the framebuffer")
	}
	if _, changed := c.Snapshot(); changed {
		t.Error("Expected no change after snapshot was taken")
	}
}
