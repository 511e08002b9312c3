package shape

import (
	"strings"
	"testing"
)

// parseMask builds a mask from rows of '#' and '.'.
func parseMask(rows ...string) Mask {
	m := NewMask(len(rows))
	for y, row := range rows {
		for x, r := range strings.TrimSpace(row) {
			m[y][x] = r == '#'
		}
	}
	return m
}

func TestFillRange(t *testing.T) {
	tests := []struct {
		n, lo, hi int
	}{
		{1, 1, 1},
		{2, 2, 3},
		{3, 3, 7},
		{4, 6, 12},
		{5, 9, 18},
		{6, 12, 26},
		{7, 17, 35},
		{8, 22, 45},
	}

	for _, tc := range tests {
		lo, hi := FillRange(tc.n)
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("FillRange(%d) = (%d, %d), expected (%d, %d)", tc.n, lo, hi, tc.lo, tc.hi)
		}
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		expected bool
	}{
		{"single cell", parseMask("#...", "....", "....", "...."), true},
		{"L shape", parseMask("#...", "#...", "##..", "...."), true},
		{"diagonal only", parseMask("#...", ".#..", "....", "...."), false},
		{"two islands", parseMask("##..", "....", "..##", "...."), false},
		{"empty", parseMask("....", "....", "....", "...."), false},
		{"snake", parseMask("####", "...#", "####", "#..."), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Connected(tc.mask); got != tc.expected {
				t.Errorf("Connected() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestHasHoles(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		expected bool
	}{
		{"ring", parseMask("###.", "#.#.", "###.", "...."), true},
		{"open ring", parseMask("###.", "#...", "###.", "...."), false},
		{"full", parseMask("####", "####", "####", "####"), false},
		{"border empties only", parseMask(".##.", "####", "####", ".##."), false},
		{"large cavity", parseMask("#####", "#...#", "#...#", "#####", "....."), true},
		{"diagonal leak does not count", parseMask(".#..", "#.#.", ".#..", "...."), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasHoles(tc.mask); got != tc.expected {
				t.Errorf("HasHoles() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		expected bool
	}{
		{"good hook", parseMask("##..", "#...", "###.", "...."), true},
		{"too few cells", parseMask("#...", "#...", "....", "...."), false},
		{"too many cells", parseMask("####", "####", "####", "###."), false},
		{"hole", parseMask("###.", "#.#.", "###.", "...."), false},
		{"split", parseMask("###.", "....", "###.", "...."), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Valid(tc.mask); got != tc.expected {
				t.Errorf("Valid() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFallbackAlwaysValid(t *testing.T) {
	for n := 1; n <= 12; n++ {
		if !Valid(Fallback(n)) {
			t.Errorf("Fallback(%d) is not valid", n)
		}
	}
}

func TestFloodFillLargeGrid(t *testing.T) {
	// A serpentine path through a big grid exercises the explicit queue.
	n := 64
	m := NewMask(n)
	for y := 0; y < n; y += 2 {
		for x := range n {
			m[y][x] = true
		}
		if y+1 < n {
			if (y/2)%2 == 0 {
				m[y+1][n-1] = true
			} else {
				m[y+1][0] = true
			}
		}
	}
	if !Connected(m) {
		t.Error("serpentine should be connected")
	}
	if HasHoles(m) {
		t.Error("serpentine should have no holes")
	}
}
