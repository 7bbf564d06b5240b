package renderer

import (
	"image"

	"github.com/pkg/errors"
)

// Order selects how tiles are visited
type Order string

const (
	// Raster visits tiles row by row, left to right
	Raster Order = "raster"
	// Spiral starts at the center tile and winds outward
	Spiral Order = "spiral"
)

// ParseOrder converts a name to an Order
func ParseOrder(name string) (Order, error) {
	switch Order(name) {
	case Raster, Spiral:
		return Order(name), nil
	}
	return "", errors.Errorf("unknown tile order %q (want %s or %s)", name, Raster, Spiral)
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Row-major tile index
	TileX  int             // Tile column
	TileY  int             // Tile row
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// TileGrid covers an image with square tiles. Tiles on the right and bottom
// edges are clipped to the image.
type TileGrid struct {
	TilesX, TilesY int
	tiles          []*Tile
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) TileGrid {
	if width <= 0 || height <= 0 {
		return TileGrid{}
	}
	tileSize = max(tileSize, 1)

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				TileX:  tileX,
				TileY:  tileY,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return TileGrid{TilesX: tilesX, TilesY: tilesY, tiles: tiles}
}

// Len returns the number of tiles in the grid
func (g TileGrid) Len() int {
	return len(g.tiles)
}

// At returns the tile at column tileX, row tileY, or nil when outside the grid
func (g TileGrid) At(tileX, tileY int) *Tile {
	if tileX < 0 || tileY < 0 || tileX >= g.TilesX || tileY >= g.TilesY {
		return nil
	}
	return g.tiles[tileY*g.TilesX+tileX]
}

// Traverse returns every tile once in the given order. Unknown orders fall
// back to raster.
func (g TileGrid) Traverse(order Order) []*Tile {
	if order == Spiral {
		return g.spiral()
	}
	return g.raster()
}

func (g TileGrid) raster() []*Tile {
	out := make([]*Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// spiral walks legs of length side, side, side+1, side+1 (right, down, left,
// up) around the center tile, growing side by two each lap. Positions outside
// the grid are skipped.
func (g TileGrid) spiral() []*Tile {
	total := len(g.tiles)
	out := make([]*Tile, 0, total)
	if total == 0 {
		return out
	}

	x := (g.TilesX - 1) / 2
	y := (g.TilesY - 1) / 2
	emit := func() {
		if t := g.At(x, y); t != nil {
			out = append(out, t)
		}
	}
	emit()

	// A lap of side s reaches s/2+1 tiles out from the center, so this bound
	// is never hit on a well-formed grid.
	limit := 2*max(g.TilesX, g.TilesY) + 3
	for side := 1; len(out) < total && side <= limit; side += 2 {
		legs := []struct{ dx, dy, n int }{
			{1, 0, side},
			{0, 1, side},
			{-1, 0, side + 1},
			{0, -1, side + 1},
		}
		for _, leg := range legs {
			for i := 0; i < leg.n && len(out) < total; i++ {
				x += leg.dx
				y += leg.dy
				emit()
			}
		}
	}
	return out
}
