package shape

// Mask is a square occupancy matrix indexed [y][x].
type Mask [][]bool

// NewMask allocates an empty size×size mask.
func NewMask(size int) Mask {
	m := make(Mask, size)
	for y := range m {
		m[y] = make([]bool, size)
	}
	return m
}

// FillRange returns the inclusive bounds on filled cells for an n×n frame:
// ceil(n²/3) and min(n², ceil(n²·0.7)).
func FillRange(n int) (lo, hi int) {
	area := n * n
	lo = (area + 2) / 3
	hi = (7*area + 9) / 10
	if hi > area {
		hi = area
	}
	return lo, hi
}

// Count returns the number of filled cells.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	return n
}

// Valid reports whether the mask is an acceptable polyomino: filled count
// inside FillRange, one 4-connected component and no enclosed holes.
func Valid(m Mask) bool {
	lo, hi := FillRange(len(m))
	count := m.Count()
	if count < lo || count > hi {
		return false
	}
	return Connected(m) && !HasHoles(m)
}

// Connected reports whether all filled cells form a single 4-connected
// component. An empty mask is not connected.
func Connected(m Mask) bool {
	var seeds []cell
	total := 0
	for y, row := range m {
		for x, filled := range row {
			if !filled {
				continue
			}
			if total == 0 {
				seeds = append(seeds, cell{x, y})
			}
			total++
		}
	}
	if total == 0 {
		return false
	}

	reached := floodFill(m, seeds, true)
	return reached == total
}

// HasHoles reports whether any empty cell is unreachable from the border
// through empty cells.
func HasHoles(m Mask) bool {
	n := len(m)
	var seeds []cell
	empty := 0
	for y, row := range m {
		for x, filled := range row {
			if filled {
				continue
			}
			empty++
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				seeds = append(seeds, cell{x, y})
			}
		}
	}
	if empty == 0 {
		return false
	}

	reached := floodFill(m, seeds, false)
	return reached < empty
}

type cell struct{ x, y int }

var neighbors = [4]cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// floodFill visits every cell whose value equals want and that is
// 4-reachable from a seed, using an explicit queue. Returns the number of
// cells visited. Seeds not matching want are ignored.
func floodFill(m Mask, seeds []cell, want bool) int {
	n := len(m)
	visited := NewMask(n)
	queue := make([]cell, 0, n*n)
	for _, s := range seeds {
		if m[s.y][s.x] == want && !visited[s.y][s.x] {
			visited[s.y][s.x] = true
			queue = append(queue, s)
		}
	}

	count := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		count++

		for _, d := range neighbors {
			nx, ny := c.x+d.x, c.y+d.y
			if nx < 0 || ny < 0 || nx >= n || ny >= n {
				continue
			}
			if visited[ny][nx] || m[ny][nx] != want {
				continue
			}
			visited[ny][nx] = true
			queue = append(queue, cell{nx, ny})
		}
	}
	return count
}

// Fallback returns the deterministic shape used when generation runs out of
// attempts: the top ceil(lo/n) rows filled solid. It satisfies Valid for
// every n >= 1.
func Fallback(size int) Mask {
	m := NewMask(size)
	if size == 0 {
		return m
	}
	lo, _ := FillRange(size)
	rows := (lo + size - 1) / size
	for y := 0; y < rows; y++ {
		for x := range m[y] {
			m[y][x] = true
		}
	}
	return m
}
