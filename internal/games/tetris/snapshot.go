package tetris

import "time"

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Rows, Cols  int
	Grid        [][]Cell // locked cells, [row][col]
	Active      Piece
	SoftDrop    bool
	Interval    time.Duration
	Pieces      int
	RowsCleared int
	GamesOver   int
}

// Snapshot returns the current render state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Rows:        g.cfg.Rows,
		Cols:        g.cfg.Cols,
		Grid:        g.board.Grid(),
		Active:      g.piece,
		SoftDrop:    g.softDrop,
		Interval:    g.Interval(),
		Pieces:      g.pieces,
		RowsCleared: g.rowsCleared,
		GamesOver:   g.gamesOver,
	}
}

// Cell returns what is visible at (x, y): the active piece if it covers the
// position, otherwise the locked cell.
func (s Snapshot) Cell(x, y int) Cell {
	p := s.Active
	if p.Shape.At(x-p.X, y-p.Y) {
		return p.Color
	}
	if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
		return Empty
	}
	return s.Grid[y][x]
}
