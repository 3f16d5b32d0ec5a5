package cliffside

import "math"

// CliffFaceBase is the ground atlas frame of the first cliff-face variant.
const CliffFaceBase = 32

// BaseVariant maps a type code to its base ground frame. Tree cells and the
// flat tile both normalize to frame 0.
func BaseVariant(typeCode int) int {
	t := typeCode - 1
	if t == TreeTile || t == FlatTile {
		return 0
	}
	return t
}

// ResolveGroundVariant selects the edge variant of the ground tile at
// (row, col). Starting from the base variant it adds 1, 2 and 4 when the
// up, right and left neighbors exist and are not higher than the cell.
// The down neighbor is never tested.
func ResolveGroundVariant(g *Grid, row, col int) int {
	self := g.At(row, col)
	v := BaseVariant(self.Type)
	if n, ok := g.Neighbor(row, col, DirUp); ok && n.Elevation <= self.Elevation {
		v++
	}
	if n, ok := g.Neighbor(row, col, DirRight); ok && n.Elevation <= self.Elevation {
		v += 2
	}
	if n, ok := g.Neighbor(row, col, DirLeft); ok && n.Elevation <= self.Elevation {
		v += 4
	}
	return v
}

// CliffFace is one stacked face decal below an elevated tile.
type CliffFace struct {
	// RowOffset is the face's vertical position in tiles relative to the
	// cell row. The face is anchored at (row+RowOffset)*tileSize.
	RowOffset int
	// Variant is the ground atlas frame.
	Variant int
}

// CliffFaceCount returns how many faces ResolveCliffFaces produces for an
// elevation, without a limit.
func CliffFaceCount(elevation, tileSize int) int {
	if elevation >= 0 || tileSize <= 0 {
		return 0
	}
	return int(math.Floor(-float64(elevation) / float64(tileSize)))
}

// ResolveCliffFaces appends at most limit cliff faces of the cell at
// (row, col) to dst and returns the extended slice. Cells at elevation 0
// produce none.
//
// With z = elevation/tileSize the faces run from i = 0 down to z+1. Each face
// starts at CliffFaceBase and adds 1 when the right neighbor sits below i,
// 2 when the left neighbor does, 4 when z < -1, 4 for faces strictly inside
// the column and 4 for the bottom face.
func ResolveCliffFaces(g *Grid, row, col, tileSize, limit int, dst []CliffFace) []CliffFace {
	self := g.At(row, col)
	if self.Elevation == 0 || tileSize <= 0 || limit <= 0 {
		return dst
	}
	ts := float64(tileSize)
	z := float64(self.Elevation) / ts

	right, hasRight := g.Neighbor(row, col, DirRight)
	left, hasLeft := g.Neighbor(row, col, DirLeft)
	rightZ := float64(right.Elevation) / ts
	leftZ := float64(left.Elevation) / ts

	for i := 0; float64(i) >= z+1 && i > -limit; i-- {
		fi := float64(i)
		m := CliffFaceBase
		if hasRight && rightZ < fi {
			m++
		}
		if hasLeft && leftZ < fi {
			m += 2
		}
		if z < -1 {
			m += 4
		}
		if i != 0 && fi != z {
			m += 4
		}
		if fi == z+1 && i != 0 {
			m += 4
		}
		dst = append(dst, CliffFace{RowOffset: i, Variant: m})
	}
	return dst
}
