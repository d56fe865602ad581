package tetris

// Rotate returns s turned a quarter turn: the matrix is transposed and its
// rows are reversed, so column i of s becomes row w-1-i of the result.
// On screen (y down) this is a counter-clockwise turn. The input is not
// modified; width and height swap.
func Rotate(s Shape) Shape {
	r := Shape{w: s.h, h: s.w, cells: make([]bool, len(s.cells))}
	for y := range r.h {
		srcX := s.w - 1 - y
		for x := range r.w {
			r.cells[y*r.w+x] = s.cells[x*s.w+srcX]
		}
	}
	return r
}

// RotateN applies Rotate n times. n is taken modulo 4.
func RotateN(s Shape, n int) Shape {
	n = ((n % 4) + 4) % 4
	for range n {
		s = Rotate(s)
	}
	return s
}
