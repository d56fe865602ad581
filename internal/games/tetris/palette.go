package tetris

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// RGBA returns the CSS color of a cell tag for pixel renderers.
// Empty cells are fully transparent.
func (c Cell) RGBA() color.RGBA {
	if c == Empty {
		return color.RGBA{}
	}
	return colornames.Map[c.Color().String()]
}
