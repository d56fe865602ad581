package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow occupies every cell of row y except the listed holes.
func fillRow(b *Board, y int, c Cell, holes ...int) {
	for x := range b.Cols() {
		b.Set(x, y, c)
	}
	for _, x := range holes {
		b.Set(x, y, Empty)
	}
}

func TestIsValidMoveBounds(t *testing.T) {
	b := NewBoard(15, 10)
	o := ShapeOf(KindO)
	i := ShapeOf(KindI)

	tests := []struct {
		name     string
		shape    Shape
		x, y     int
		expected bool
	}{
		{"spawn position", o, 4, 0, true},
		{"left edge", o, 0, 0, true},
		{"past left edge", o, -1, 0, false},
		{"right edge", o, 8, 0, true},
		{"past right edge", o, 9, 0, false},
		{"bottom row", o, 4, 13, true},
		{"below bottom", o, 4, 14, false},
		{"above the grid", o, 4, -2, true},
		{"partly above the grid", i, 3, -1, true},
		{"far above but out of columns", i, 7, -5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidMove(tc.shape, tc.x, tc.y, b))
		})
	}
}

func TestIsValidMoveOccupancy(t *testing.T) {
	b := NewBoard(15, 10)
	b.Set(5, 1, Red)
	t1 := ShapeOf(KindT) // .#. / ###

	assert.False(t, IsValidMove(t1, 4, 0, b), "bottom row of T overlaps (5,1)")
	assert.True(t, IsValidMove(t1, 4, -1, b), "T cell at (5,0) is free, rest above grid")
	assert.True(t, IsValidMove(t1, 6, 0, b))

	// Empty shape cells never collide.
	b2 := NewBoard(15, 10)
	b2.Set(4, 0, Red)
	assert.True(t, IsValidMove(t1, 4, 0, b2), "(4,0) is a hole in the T")
}

func TestIsValidMoveIgnoresBoardAboveGrid(t *testing.T) {
	b := NewBoard(15, 10)
	fillRow(b, 0, Blue)
	vertical := Rotate(ShapeOf(KindI))

	assert.True(t, IsValidMove(vertical, 2, -4, b), "all cells above row 0")
	assert.False(t, IsValidMove(vertical, 2, -3, b), "bottom cell lands on row 0")
}

func TestMergeLeavesInputUntouched(t *testing.T) {
	b := NewBoard(15, 10)
	p := NewPiece(KindS, 10)
	p.Y = 5

	merged := Merge(p, b)

	require.True(t, b.IsEmpty(), "Merge must not modify its input")
	covered := make(map[Point]bool)
	for _, pt := range p.Cells() {
		covered[pt] = true
		assert.Equal(t, Green, merged.At(pt.X, pt.Y))
	}
	for y := range merged.Rows() {
		for x := range merged.Cols() {
			if !covered[Point{X: x, Y: y}] {
				assert.Equal(t, Empty, merged.At(x, y), "cell (%d,%d)", x, y)
			}
		}
	}
}

func TestClearSingleRow(t *testing.T) {
	b := NewBoard(15, 10)
	fillRow(b, 14, Red, 3)
	fillRow(b, 13, Cyan)
	fillRow(b, 12, Blue, 0, 1)
	b.Set(7, 11, Yellow)

	out, n := ClearFullRows(b)

	require.Equal(t, 1, n)
	assert.Equal(t, 15, out.Rows())
	assert.Equal(t, 10, out.Cols())
	assert.Equal(t, b.Grid()[14], out.Grid()[14], "row below the cleared one is unchanged")
	assert.Equal(t, b.Grid()[12], out.Grid()[13], "row above shifts down")
	assert.Equal(t, Yellow, out.At(7, 12))
	assert.Equal(t, make([]Cell, 10), out.Grid()[0])
	assert.Equal(t, Cyan, b.At(0, 13), "input must not be modified")
}

func TestClearNonAdjacentRows(t *testing.T) {
	b := NewBoard(15, 10)
	fillRow(b, 12, Red)
	fillRow(b, 10, Green)
	b.Set(1, 14, Blue)
	b.Set(2, 13, Orange)
	b.Set(3, 11, Purple)
	b.Set(4, 9, Cyan)

	out, n := ClearFullRows(b)

	require.Equal(t, 2, n)
	assert.Equal(t, Blue, out.At(1, 14))
	assert.Equal(t, Orange, out.At(2, 13))
	assert.Equal(t, Purple, out.At(3, 12))
	assert.Equal(t, Cyan, out.At(4, 11))
	assert.Equal(t, make([]Cell, 10), out.Grid()[0])
	assert.Equal(t, make([]Cell, 10), out.Grid()[1])
	for y := range 15 {
		assert.False(t, out.RowFull(y), "row %d still full", y)
	}
}

func TestClearAdjacentRows(t *testing.T) {
	b := NewBoard(15, 10)
	fillRow(b, 14, Red)
	fillRow(b, 13, Red)
	fillRow(b, 12, Red)
	b.Set(0, 11, Yellow)

	out, n := ClearFullRows(b)

	require.Equal(t, 3, n)
	assert.Equal(t, Yellow, out.At(0, 14))
	assert.Equal(t, 1, countOccupied(out))
}

func TestClearNothing(t *testing.T) {
	b := NewBoard(4, 4)
	fillRow(b, 3, Red, 2)

	out, n := ClearFullRows(b)

	assert.Zero(t, n)
	assert.Equal(t, b.String(), out.String())
}

func TestBoardString(t *testing.T) {
	b := NewBoard(2, 3)
	b.Set(0, 1, Cyan)
	b.Set(2, 1, Red)

	assert.Equal(t, "...\nc.r", b.String())
}

func countOccupied(b *Board) int {
	n := 0
	for y := range b.Rows() {
		for x := range b.Cols() {
			if b.At(x, y) != Empty {
				n++
			}
		}
	}
	return n
}
