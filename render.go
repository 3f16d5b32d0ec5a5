package cliffside

// DrawCommand is a single sprite draw emitted from an active pool entry.
type DrawCommand struct {
	Pool     PoolID
	Frame    int
	X, Y     float64
	OriginX  float64
	OriginY  float64
	Rotation float64
	Depth    float64
	Shader   ShaderBinding
	order    int // emission order, used for stable sort
}

// commandFromEntry copies the drawable state of e.
func commandFromEntry(id PoolID, e *Entry, order int) DrawCommand {
	return DrawCommand{
		Pool:     id,
		Frame:    e.Variant,
		X:        e.X,
		Y:        e.Y,
		OriginX:  e.OriginX,
		OriginY:  e.OriginY,
		Rotation: e.Rotation,
		Depth:    e.Depth,
		Shader:   e.Shader,
		order:    order,
	}
}

// commandLessOrEqual returns true if a should draw before or at the same
// position as b: lower anchor Y first, then higher depth key first. Using <=
// on emission order keeps the sort stable.
func commandLessOrEqual(a, b DrawCommand) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.order <= b.order
}

// commandSorter owns the command list and its scratch buffer so sorting is
// allocation-free once both reach their high-water mark.
type commandSorter struct {
	commands []DrawCommand
	sortBuf  []DrawCommand
}

// mergeSort sorts s.commands in place using s.sortBuf as scratch space.
func (s *commandSorter) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]DrawCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []DrawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
