package cliffside

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// DefaultTileSize is the edge length of one ground tile in pixels.
const DefaultTileSize = 32

// Reserved tile indices (type code minus one).
const (
	// FlatTile renders as base variant 0 regardless of its index.
	FlatTile = 9
	// TreeTile marks a cell carrying a tall decorative object. It also
	// renders ground as base variant 0.
	TreeTile = 511
	// MaxGroundTile is the highest tile index that draws ground.
	MaxGroundTile = 511
)

// MaxElevation bounds the magnitude of a cell elevation in pixels.
const MaxElevation = 1 << 16

// ErrMalformedGrid is returned when world data is not a rectangular grid of
// [typeCode, elevation] pairs.
var ErrMalformedGrid = errors.New("cliffside: malformed world grid")

// Cell is one grid position.
type Cell struct {
	// Type is the 1-based type code from the world file.
	Type int
	// Elevation is a vertical pixel offset, a multiple of the tile size.
	// Negative values raise the tile.
	Elevation int
}

// Tile returns the 0-based tile index.
func (c Cell) Tile() int { return c.Type - 1 }

// IsTree reports whether the cell carries a tall decorative object.
func (c Cell) IsTree() bool { return c.Tile() == TreeTile }

// Direction names one of the four grid neighbors.
type Direction uint8

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

var directionOffsets = [4][2]int{
	DirUp:    {-1, 0},
	DirRight: {0, 1},
	DirDown:  {1, 0},
	DirLeft:  {0, -1},
}

// Grid is an immutable rectangular world grid stored row-major.
type Grid struct {
	cells []Cell
	rows  int
	cols  int
}

// NewGrid builds a Grid from rows of cells. Every row must have the same
// non-zero length and every type code must be at least 1.
func NewGrid(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedGrid)
	}
	cols := len(rows[0])
	g := &Grid{
		cells: make([]Cell, 0, len(rows)*cols),
		rows:  len(rows),
		cols:  cols,
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedGrid, r, len(row), cols)
		}
		for c, cell := range row {
			if cell.Type < 1 {
				return nil, fmt.Errorf("%w: cell (%d,%d) has type code %d", ErrMalformedGrid, r, c, cell.Type)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// ParseGrid decodes world data serialized as nested JSON arrays:
// [[[typeCode, elevation], ...], ...]. Both values must be integers that fit
// in an int32; elevations are further limited to MaxElevation.
func ParseGrid(data []byte) (*Grid, error) {
	var raw [][][]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGrid, err)
	}
	rows := make([][]Cell, len(raw))
	for r, rawRow := range raw {
		rows[r] = make([]Cell, len(rawRow))
		for c, pair := range rawRow {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: cell (%d,%d) has %d values, want 2", ErrMalformedGrid, r, c, len(pair))
			}
			if pair[0] == nil || pair[1] == nil {
				return nil, fmt.Errorf("%w: cell (%d,%d) has a null value", ErrMalformedGrid, r, c)
			}
			typ, elev := *pair[0], *pair[1]
			if typ != math.Trunc(typ) || elev != math.Trunc(elev) {
				return nil, fmt.Errorf("%w: cell (%d,%d) is not integral", ErrMalformedGrid, r, c)
			}
			if typ < 1 || typ > math.MaxInt32 {
				return nil, fmt.Errorf("%w: cell (%d,%d) has type code %v", ErrMalformedGrid, r, c, typ)
			}
			if math.Abs(elev) > MaxElevation {
				return nil, fmt.Errorf("%w: cell (%d,%d) elevation %v exceeds %d", ErrMalformedGrid, r, c, elev, MaxElevation)
			}
			rows[r][c] = Cell{Type: int(typ), Elevation: int(elev)}
		}
	}
	return NewGrid(rows)
}

// LoadGrid reads and parses a world file.
func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cliffside: read world %s: %w", path, err)
	}
	g, err := ParseGrid(data)
	if err != nil {
		return nil, fmt.Errorf("cliffside: load world %s: %w", path, err)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col). It panics if the position is out of
// bounds; use Neighbor for edge-tolerant lookups.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("cliffside: cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return g.cells[row*g.cols+col]
}

// Neighbor returns the cell adjacent to (row, col) in direction d. The
// boolean is false when the neighbor lies outside the grid.
func (g *Grid) Neighbor(row, col int, d Direction) (Cell, bool) {
	off := directionOffsets[d]
	nr, nc := row+off[0], col+off[1]
	if !g.InBounds(nr, nc) {
		return Cell{}, false
	}
	return g.cells[nr*g.cols+nc], true
}

// PixelSize returns the world extent in pixels for the given tile size.
func (g *Grid) PixelSize(tileSize int) (w, h float64) {
	return float64(g.cols * tileSize), float64(g.rows * tileSize)
}
