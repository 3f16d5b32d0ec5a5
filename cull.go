package cliffside

import "math"

// DefaultCullBuffer is the number of extra tiles scanned beyond each
// viewport edge.
const DefaultCullBuffer = 5

// CullRect is a half-open range of tile indices [StartCol, EndCol) x
// [StartRow, EndRow), always within the grid.
type CullRect struct {
	StartCol, EndCol int
	StartRow, EndRow int
}

// ComputeCullRect returns the tiles to rebuild for a camera at (cx, cy) with
// a w x h viewport. The range extends buffer tiles past every edge and one
// extra tile past the right and bottom edges, then is clamped to the grid.
func ComputeCullRect(cx, cy, w, h float64, tileSize, buffer, rows, cols int) CullRect {
	startCol, endCol := cullAxis(cx, w, tileSize, buffer, cols)
	startRow, endRow := cullAxis(cy, h, tileSize, buffer, rows)
	return CullRect{StartCol: startCol, EndCol: endCol, StartRow: startRow, EndRow: endRow}
}

func cullAxis(pos, view float64, tileSize, buffer, n int) (start, end int) {
	ts := float64(tileSize)
	start = min(max(0, int(math.Floor(pos/ts))-buffer), n)
	end = min(n, int(math.Ceil((pos+view+ts)/ts))+buffer)
	if end < start {
		end = start
	}
	return start, end
}

// Empty reports whether the rectangle covers no tiles.
func (r CullRect) Empty() bool {
	return r.EndCol <= r.StartCol || r.EndRow <= r.StartRow
}

// Contains reports whether tile (row, col) is inside the rectangle.
func (r CullRect) Contains(row, col int) bool {
	return col >= r.StartCol && col < r.EndCol && row >= r.StartRow && row < r.EndRow
}

// Cells returns the number of tiles covered.
func (r CullRect) Cells() int {
	if r.Empty() {
		return 0
	}
	return (r.EndCol - r.StartCol) * (r.EndRow - r.StartRow)
}
