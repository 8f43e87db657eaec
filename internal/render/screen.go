package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxCells bounds the canvas a ScreenRenderer will allocate.
const DefaultMaxCells = 1 << 20

// ScreenOptions configures a ScreenRenderer.
type ScreenOptions struct {
	Title string

	// CellWidth and CellHeight map viewport units onto canvas cells.
	// A terminal viewport is already in cells (1x1); a pixel viewport
	// typically uses 8x16.
	CellWidth  int
	CellHeight int

	// MaxCells is the largest canvas allowed. Larger viewports fail with
	// KindOutOfMemory. Zero means DefaultMaxCells.
	MaxCells int
}

// ScreenRenderer draws a status frame of the simulation into a Canvas and
// encodes it as styled terminal output.
type ScreenRenderer struct {
	src    Source
	opts   ScreenOptions
	canvas *Canvas

	width, height int
	counters
}

// NewScreenRenderer creates a renderer reading from src with the given
// viewport.
func NewScreenRenderer(src Source, width, height int, opts ScreenOptions) *ScreenRenderer {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 1
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 1
	}
	if opts.MaxCells <= 0 {
		opts.MaxCells = DefaultMaxCells
	}
	return &ScreenRenderer{
		src:    src,
		opts:   opts,
		canvas: NewCanvas(0, 0),
		width:  width,
		height: height,
	}
}

// Render draws the current snapshot. Every failure is detected before the
// canvas is touched, so a failed frame leaves the previous one intact.
func (r *ScreenRenderer) Render() error {
	cols, rows := r.width/r.opts.CellWidth, r.height/r.opts.CellHeight
	if cols <= 0 || rows <= 0 {
		return NewError(KindSurfaceLost, fmt.Errorf("viewport %dx%d has no cells", r.width, r.height))
	}
	if cols*rows > r.opts.MaxCells {
		return NewError(KindOutOfMemory, fmt.Errorf("canvas %dx%d exceeds %d cells", cols, rows, r.opts.MaxCells))
	}

	r.canvas.Resize(cols, rows)
	r.canvas.Clear()
	r.draw()
	r.commit()
	return nil
}

// draw lays out the status frame.
func (r *ScreenRenderer) draw() {
	c := r.canvas
	snap := r.src.Snapshot()

	c.Box(0, 0, c.Cols(), c.Rows(), ColorGray)
	c.TextCentered(1, r.opts.Title, ColorCyan)

	fps := 0.0
	if snap.Elapsed > 0 {
		fps = float64(snap.Frames) / snap.Elapsed
	}
	c.Text(2, 3, fmt.Sprintf("frame   %d", snap.Frames), ColorWhite)
	c.Text(2, 4, fmt.Sprintf("elapsed %.3fs", snap.Elapsed), ColorWhite)
	c.Text(2, 5, fmt.Sprintf("fps     %.1f", fps), ColorWhite)
	c.Text(2, 6, fmt.Sprintf("view    %dx%d", r.width, r.height), ColorGray)

	if snap.Activity == "" {
		c.Text(2, 8, "no activity", ColorGray)
		return
	}
	c.Text(2, 8, snap.Activity, ColorYellow)
	barW := c.Cols() - 12
	if barW < 4 {
		return
	}
	c.Text(2, 9, progressBar(snap.Progress, barW), ColorGreen)
	c.Text(barW+4, 9, fmt.Sprintf("%3.0f%%", float64(snap.Progress)*100), ColorGreen)
}

// progressBar renders p in [0,1] as a bar of width w. Values outside the
// range are drawn clamped; the stored progress itself is never changed.
func progressBar(p float32, w int) string {
	inner := w - 2
	filled := int(float32(inner) * min(max(p, 0), 1))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", inner-filled) + "]"
}

// Resize sets the viewport for the next frame.
func (r *ScreenRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Viewport returns the current viewport.
func (r *ScreenRenderer) Viewport() (int, int) {
	return r.width, r.height
}

// Frames returns the number of frames drawn.
func (r *ScreenRenderer) Frames() uint64 {
	return r.frames
}

// RenderCalls returns the number of successful render calls.
func (r *ScreenRenderer) RenderCalls() uint64 {
	return r.calls
}

// Canvas returns the buffer holding the last drawn frame.
func (r *ScreenRenderer) Canvas() *Canvas {
	return r.canvas
}

// colorStyles maps canvas colors to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault: lipgloss.NewStyle(),
	ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Output encodes the last drawn frame as a styled string.
func (r *ScreenRenderer) Output() string {
	return Encode(r.canvas)
}

// Encode converts a canvas to styled text, grouping adjacent cells of the
// same color into one styled run to keep escape sequences down.
func Encode(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Cols()*c.Rows()*2 + c.Rows())

	for y := range c.Rows() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < c.Cols() {
			color := c.At(x, y).Color
			var run strings.Builder
			for x < c.Cols() && c.At(x, y).Color == color {
				run.WriteRune(c.At(x, y).Rune)
				x++
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
