// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}

// Grid lays out Cols x Rows rooms of equal size separated by one-character
// walls. Neighbouring rooms share the wall between them.
type Grid struct {
	X, Y         int // top-left corner of the outer wall
	Cols, Rows   int
	RoomW, RoomH int // inner size of a room, walls excluded
}

// NewGrid creates a grid whose outer wall starts at (x, y).
func NewGrid(x, y, cols, rows, roomW, roomH int) Grid {
	return Grid{X: x, Y: y, Cols: cols, Rows: rows, RoomW: roomW, RoomH: roomH}
}

// Bounds returns the rectangle covered by the grid, outer walls included.
func (g Grid) Bounds() Rect {
	return NewRect(g.X, g.Y, g.Cols*(g.RoomW+1)+1, g.Rows*(g.RoomH+1)+1)
}

// WallX returns the x-coordinate of vertical wall col (0..Cols).
func (g Grid) WallX(col int) int {
	return g.X + col*(g.RoomW+1)
}

// WallY returns the y-coordinate of horizontal wall row (0..Rows).
func (g Grid) WallY(row int) int {
	return g.Y + row*(g.RoomH+1)
}

// Room returns the inner rectangle of the room at (col, row).
func (g Grid) Room(col, row int) Rect {
	return NewRect(g.WallX(col)+1, g.WallY(row)+1, g.RoomW, g.RoomH)
}

// Junction returns the box-drawing rune where horizontal wall row meets
// vertical wall col.
func (g Grid) Junction(row, col int) rune {
	top, bottom := row == 0, row == g.Rows
	left, right := col == 0, col == g.Cols
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}
