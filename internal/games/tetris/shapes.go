// Package tetris implements the falling-block game: shapes, rotation,
// collision, line clears and the state machine that ties them together.
// It is pure logic; frontends feed it intents and wall-clock ticks.
package tetris

import (
	"fmt"
	"math/rand"
)

// Cell is the content of one board position: Empty or a color tag.
type Cell uint8

const (
	Empty Cell = iota
	Cyan
	Blue
	Orange
	Yellow
	Green
	Purple
	Red
)

// Valid reports whether c is one of the seven color tags.
func (c Cell) Valid() bool {
	return c >= Cyan && c <= Red
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Cyan:
		return "cyan"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Purple:
		return "purple"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Point is an (x, y) offset; y grows downward.
type Point struct {
	X, Y int
}

// Shape is an immutable rectangular occupancy matrix with its origin at the
// top-left corner.
type Shape struct {
	w, h  int
	cells []bool // row-major, len w*h
}

// NewShape builds a shape from rows of 0/1 values.
// Panics on empty, ragged or non-binary input.
func NewShape(rows [][]uint8) Shape {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("tetris: shape must have at least one row and column")
	}
	w := len(rows[0])
	s := Shape{w: w, h: len(rows), cells: make([]bool, 0, w*len(rows))}
	for y, row := range rows {
		if len(row) != w {
			panic(fmt.Sprintf("tetris: shape row %d has width %d, expected %d", y, len(row), w))
		}
		for x, v := range row {
			if v > 1 {
				panic(fmt.Sprintf("tetris: shape cell (%d, %d) = %d, expected 0 or 1", x, y, v))
			}
			s.cells = append(s.cells, v == 1)
		}
	}
	return s
}

// Width returns the number of columns.
func (s Shape) Width() int { return s.w }

// Height returns the number of rows.
func (s Shape) Height() int { return s.h }

// At reports whether the local cell (x, y) is occupied.
// Coordinates outside the matrix are unoccupied.
func (s Shape) At(x, y int) bool {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return false
	}
	return s.cells[y*s.w+x]
}

// Cells returns the occupied offsets in row-major order.
func (s Shape) Cells() []Point {
	pts := make([]Point, 0, 4)
	for y := range s.h {
		for x := range s.w {
			if s.cells[y*s.w+x] {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Rows returns a copy of the matrix as 0/1 rows.
func (s Shape) Rows() [][]uint8 {
	rows := make([][]uint8, s.h)
	for y := range s.h {
		rows[y] = make([]uint8, s.w)
		for x := range s.w {
			if s.cells[y*s.w+x] {
				rows[y][x] = 1
			}
		}
	}
	return rows
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.w != o.w || s.h != o.h {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the shape with '#' for occupied and '.' for empty cells.
func (s Shape) String() string {
	b := make([]byte, 0, (s.w+1)*s.h)
	for y := range s.h {
		if y > 0 {
			b = append(b, '\n')
		}
		for x := range s.w {
			if s.cells[y*s.w+x] {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "?"
	}
	return string("IJLOSTZ"[k])
}

var (
	shapeTable = [KindCount]Shape{
		KindI: NewShape([][]uint8{
			{1, 1, 1, 1},
		}),
		KindJ: NewShape([][]uint8{
			{1, 0, 0},
			{1, 1, 1},
		}),
		KindL: NewShape([][]uint8{
			{0, 0, 1},
			{1, 1, 1},
		}),
		KindO: NewShape([][]uint8{
			{1, 1},
			{1, 1},
		}),
		KindS: NewShape([][]uint8{
			{0, 1, 1},
			{1, 1, 0},
		}),
		KindT: NewShape([][]uint8{
			{0, 1, 0},
			{1, 1, 1},
		}),
		KindZ: NewShape([][]uint8{
			{1, 1, 0},
			{0, 1, 1},
		}),
	}

	colorTable = [KindCount]Cell{
		KindI: Cyan,
		KindJ: Blue,
		KindL: Orange,
		KindO: Yellow,
		KindS: Green,
		KindT: Purple,
		KindZ: Red,
	}
)

// ShapeOf returns the spawn orientation of a kind.
func ShapeOf(k Kind) Shape {
	return shapeTable[k]
}

// ColorOf returns the color tag of a kind.
func ColorOf(k Kind) Cell {
	return colorTable[k]
}

// Piece is a shape placed on the board. X, Y locate the shape's top-left
// corner in board coordinates.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color Cell
	X, Y  int
}

// Cells returns the board coordinates covered by the piece.
func (p Piece) Cells() []Point {
	pts := p.Shape.Cells()
	for i := range pts {
		pts[i].X += p.X
		pts[i].Y += p.Y
	}
	return pts
}

// SpawnPoint returns where new pieces appear on a board with the given
// number of columns.
func SpawnPoint(cols int) Point {
	return Point{X: cols/2 - 1, Y: 0}
}

// NewPiece returns a piece of kind k at the spawn point.
func NewPiece(k Kind, cols int) Piece {
	at := SpawnPoint(cols)
	return Piece{
		Kind:  k,
		Shape: ShapeOf(k),
		Color: ColorOf(k),
		X:     at.X,
		Y:     at.Y,
	}
}

// Spawner draws pieces uniformly at random. Each draw is independent.
type Spawner struct {
	rng  *rand.Rand
	cols int
}

// NewSpawner creates a spawner for a board with cols columns.
func NewSpawner(rng *rand.Rand, cols int) *Spawner {
	return &Spawner{rng: rng, cols: cols}
}

// Spawn returns a new random piece at the spawn point.
func (s *Spawner) Spawn() Piece {
	return NewPiece(Kind(s.rng.Intn(KindCount)), s.cols)
}
