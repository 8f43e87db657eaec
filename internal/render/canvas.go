package render

import "strings"

// Color is a foreground color for a canvas cell, as an ANSI 256-color index.
// ColorDefault leaves the terminal's color alone.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// Cell is one character position on the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Canvas is a 2D cell buffer a frame is drawn into. Drawing outside the
// bounds is clipped silently.
type Canvas struct {
	cols, rows int
	cells      []Cell
}

// NewCanvas creates a blank canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Cols returns the canvas width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Resize reallocates the buffer when the dimensions change. Content is not
// preserved; every frame is redrawn from scratch.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.cols && rows == c.rows && c.cells != nil {
		return
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]Cell, cols*rows)
	c.Clear()
}

// Clear fills the canvas with blank cells.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// Set places a rune at (x, y).
func (c *Canvas) Set(x, y int, r rune, color Color) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = Cell{Rune: r, Color: color}
}

// At returns the cell at (x, y), or a blank cell when out of bounds.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return blank
	}
	return c.cells[y*c.cols+x]
}

// Text writes s horizontally starting at (x, y).
func (c *Canvas) Text(x, y int, s string, color Color) {
	i := 0
	for _, r := range s {
		c.Set(x+i, y, r, color)
		i++
	}
}

// TextCentered writes s centered on row y.
func (c *Canvas) TextCentered(y int, s string, color Color) {
	n := len([]rune(s))
	c.Text((c.cols-n)/2, y, s, color)
}

// Box draws a box outline with its top-left corner at (x, y).
func (c *Canvas) Box(x, y, w, h int, color Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	c.Set(x, y, '┌', color)
	c.Set(right, y, '┐', color)
	c.Set(x, bottom, '└', color)
	c.Set(right, bottom, '┘', color)
	for i := x + 1; i < right; i++ {
		c.Set(i, y, '─', color)
		c.Set(i, bottom, '─', color)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, '│', color)
		c.Set(right, j, '│', color)
	}
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.cols*c.rows + c.rows)
	for y := range c.rows {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range c.cols {
			sb.WriteRune(c.cells[y*c.cols+x].Rune)
		}
	}
	return sb.String()
}

// Row returns row y as plain text.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.rows {
		return strings.Repeat(" ", c.cols)
	}
	var sb strings.Builder
	for x := range c.cols {
		sb.WriteRune(c.cells[y*c.cols+x].Rune)
	}
	return sb.String()
}
