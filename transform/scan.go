/*
DESCRIPTION
  scan.go holds the inverse zig-zag scan tables (8.5.6) that map a
  residual block's 1-D coefficient list back to 2-D (row, col) position,
  used before both the 4x4 and 8x8 scaling/transform processes.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/mod.rs inverse_scanner_4x4/inverse_scanner_8x8 functions
  (frame-coded zig-zag order; field scan order is out of scope).
*/

package transform

// InverseScan4x4 maps a 16-entry zig-zag coefficient list to its 4x4
// block position, table 8-13's frame scan (field scan is not modelled).
func InverseScan4x4(value []int) [4][4]int {
	var c [4][4]int
	pos := [16][2]int{
		{0, 0}, {0, 1}, {1, 0}, {2, 0},
		{1, 1}, {0, 2}, {0, 3}, {1, 2},
		{2, 1}, {3, 0}, {3, 1}, {2, 2},
		{1, 3}, {2, 3}, {3, 2}, {3, 3},
	}
	for i, p := range pos {
		c[p[0]][p[1]] = value[i]
	}
	return c
}

// InverseScan8x8 maps a 64-entry zig-zag coefficient list to its 8x8
// block position, table 8-14's frame scan.
func InverseScan8x8(value []int) [8][8]int {
	var c [8][8]int
	pos := [64][2]int{
		{0, 0}, {0, 1}, {1, 0}, {2, 0}, {1, 1}, {0, 2}, {0, 3}, {1, 2},
		{2, 1}, {3, 0}, {4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}, {0, 5},
		{1, 4}, {2, 3}, {3, 2}, {4, 1}, {5, 0}, {6, 0}, {5, 1}, {4, 2},
		{3, 3}, {2, 4}, {1, 5}, {0, 6}, {0, 7}, {1, 6}, {2, 5}, {3, 4},
		{4, 3}, {5, 2}, {6, 1}, {7, 0}, {7, 1}, {6, 2}, {5, 3}, {4, 4},
		{3, 5}, {2, 6}, {1, 7}, {2, 7}, {3, 6}, {4, 5}, {5, 4}, {6, 3},
		{7, 2}, {7, 3}, {6, 4}, {5, 5}, {4, 6}, {3, 7}, {4, 7}, {5, 6},
		{6, 5}, {7, 4}, {7, 5}, {6, 6}, {5, 7}, {6, 7}, {7, 6}, {7, 7},
	}
	for i, p := range pos {
		c[p[0]][p[1]] = value[i]
	}
	return c
}
