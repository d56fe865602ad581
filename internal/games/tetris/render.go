package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// CellWidth is how many terminal columns one board cell occupies.
const CellWidth = 2

// Color maps a cell tag to a screen color.
func (c Cell) Color() core.Color {
	switch c {
	case Cyan:
		return core.ColorCyan
	case Blue:
		return core.ColorBlue
	case Orange:
		return core.ColorOrange
	case Yellow:
		return core.ColorYellow
	case Green:
		return core.ColorGreen
	case Purple:
		return core.ColorPurple
	case Red:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// BoardRect returns where the framed board is drawn on a w×h screen,
// including its border.
func BoardRect(s Snapshot, w, h int) core.Rect {
	return core.NewRect(0, 0, w, h).Centered(s.Cols*CellWidth+2, s.Rows+2)
}

// FitsScreen reports whether the framed board fits on a w×h screen.
func FitsScreen(s Snapshot, w, h int) bool {
	return w >= s.Cols*CellWidth+2 && h >= s.Rows+2
}

// Render draws the board, the active piece and a frame into dst.
// It only reads the snapshot.
func Render(s Snapshot, dst *core.Screen) {
	if !FitsScreen(s, dst.Width(), dst.Height()) {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, "Resize to continue")
		return
	}

	frame := BoardRect(s, dst.Width(), dst.Height())
	dst.DrawBox(frame)

	for y := range s.Rows {
		for x := range s.Cols {
			sx := frame.X + 1 + x*CellWidth
			sy := frame.Y + 1 + y
			c := s.Cell(x, y)
			if c == Empty {
				dst.SetCell(sx, sy, ' ', core.ColorDefault)
				dst.SetCell(sx+1, sy, '.', core.ColorGray)
				continue
			}
			dst.SetCell(sx, sy, '[', c.Color())
			dst.SetCell(sx+1, sy, ']', c.Color())
		}
	}
}
