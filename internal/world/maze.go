package world

import "math"

// Maze is a grid of cells indexed [row][col]. Rows may have different lengths.
// It is never mutated while a frame is rendered.
type Maze [][]CellKind

// Rows returns the number of rows.
func (m Maze) Rows() int {
	return len(m)
}

// MaxCols returns the length of the widest row.
func (m Maze) MaxCols() int {
	widest := 0
	for _, row := range m {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// At returns the cell at column x, row y. Anything outside a row is CellVoid.
func (m Maze) At(x, y int) CellKind {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return CellVoid
	}
	return m[y][x]
}

// IsBlocked reports whether the cell stops movement and rays.
// Out-of-range cells are always blocked.
func (m Maze) IsBlocked(x, y int) bool {
	return m.At(x, y).IsBlocking()
}

// IsGoal reports whether the cell is the maze exit.
func (m Maze) IsGoal(x, y int) bool {
	return m.At(x, y) == CellGoal
}

// IsOpen reports whether the cell is walkable space.
func (m Maze) IsOpen(x, y int) bool {
	return m.At(x, y) == CellOpen
}

// CellIndex converts a continuous world coordinate into a grid index.
func CellIndex(coord, blockSize float64) int {
	return int(math.Floor(coord / blockSize))
}

// CellAtPoint returns the grid indices containing the world point (x, y).
func CellAtPoint(x, y, blockSize float64) (int, int) {
	return CellIndex(x, blockSize), CellIndex(y, blockSize)
}

// KindAtPoint returns the kind of the cell containing the world point (x, y).
func (m Maze) KindAtPoint(x, y, blockSize float64) CellKind {
	cx, cy := CellAtPoint(x, y, blockSize)
	return m.At(cx, cy)
}
