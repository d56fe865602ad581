package tetris

import "fmt"

// Board is the fixed-size grid of locked cells. Dimensions never change
// after construction; only cell contents do.
type Board struct {
	rows, cols int
	cells      [][]Cell
}

// NewBoard returns an empty rows×cols board.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", rows, cols))
	}
	b := &Board{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for y := range b.cells {
		b.cells[y] = make([]Cell, cols)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// At returns the cell at (x, y). Positions outside the grid read as Empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a cell in place. Used to build fixtures and by Merge on its
// private copy.
func (b *Board) Set(x, y int, c Cell) {
	b.cells[y][x] = c
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, cols: b.cols, cells: make([][]Cell, b.rows)}
	for y, row := range b.cells {
		c.cells[y] = append([]Cell(nil), row...)
	}
	return c
}

// Grid returns a copy of the cells, indexed [row][col].
func (b *Board) Grid() [][]Cell {
	return b.Clone().cells
}

// IsEmpty reports whether no cell is occupied.
func (b *Board) IsEmpty() bool {
	for _, row := range b.cells {
		for _, c := range row {
			if c != Empty {
				return false
			}
		}
	}
	return true
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	for _, c := range b.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// String renders the board with '.' for empty cells and the first letter
// of the color tag for occupied ones.
func (b *Board) String() string {
	out := make([]byte, 0, (b.cols+1)*b.rows)
	for y, row := range b.cells {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range row {
			if c == Empty {
				out = append(out, '.')
			} else {
				out = append(out, c.String()[0])
			}
		}
	}
	return string(out)
}

// IsValidMove reports whether shape s with its origin at (x, y) fits on b.
// Every occupied cell must lie in [0, cols) horizontally and below rows
// vertically. Cells above the grid (negative y) never collide; cells inside
// it must be empty.
func IsValidMove(s Shape, x, y int, b *Board) bool {
	for dy := range s.h {
		for dx := range s.w {
			if !s.cells[dy*s.w+dx] {
				continue
			}
			bx, by := x+dx, y+dy
			if bx < 0 || bx >= b.cols || by >= b.rows {
				return false
			}
			if by >= 0 && b.cells[by][bx] != Empty {
				return false
			}
		}
	}
	return true
}

// Merge returns a copy of b with the piece's color written into every
// cell it covers. b is not modified. Callers merge only once the piece can
// no longer descend. Cells above the grid are dropped.
func Merge(p Piece, b *Board) *Board {
	out := b.Clone()
	for _, pt := range p.Cells() {
		if pt.Y < 0 {
			continue
		}
		out.cells[pt.Y][pt.X] = p.Color
	}
	return out
}

// ClearFullRows returns a copy of b with every fully occupied row removed
// and the same number of empty rows inserted at the top, plus the number of
// rows removed. Rows are scanned bottom to top and each full row is spliced
// out immediately; the scan then re-examines the same index, since the row
// above has just shifted into it.
func ClearFullRows(b *Board) (*Board, int) {
	out := b.Clone()
	cleared := 0
	for y := out.rows - 1; y >= 0; {
		if !out.RowFull(y) {
			y--
			continue
		}
		copy(out.cells[1:y+1], out.cells[:y])
		out.cells[0] = make([]Cell, out.cols)
		cleared++
	}
	return out, cleared
}
