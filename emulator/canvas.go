package emulator

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	CANVAS_WIDTH_MAX      = 80 // Widest canvas.
	CANVAS_HEIGHT_MAX     = 24 // Tallest canvas.
	CANVAS_WIDTH_DEFAULT  = 40 // Width of a canvas created with width 0.
	CANVAS_HEIGHT_DEFAULT = 10 // Height of a canvas created with height 0.
	CANVAS_WIDTH_AUTO     = 40 // Width of a canvas drawn on before creation.
	CANVAS_HEIGHT_AUTO    = 12 // Height of a canvas drawn on before creation.
)

// Color is one of the eight terminal colours.
type Color int

//go:generate go tool stringer -linecomment -type=Color
const (
	COLOR_BLACK   = Color(0) // black
	COLOR_RED     = Color(1) // red
	COLOR_GREEN   = Color(2) // green
	COLOR_YELLOW  = Color(3) // yellow
	COLOR_BLUE    = Color(4) // blue
	COLOR_MAGENTA = Color(5) // magenta
	COLOR_CYAN    = Color(6) // cyan
	COLOR_WHITE   = Color(7) // white
)

// Cell is a single character position of the canvas.
type Cell struct {
	Char byte
	Fg   Color
	Bg   Color
}

var blankCell = Cell{Char: ' ', Fg: COLOR_WHITE, Bg: COLOR_BLACK}

// Canvas is the character grid that programs draw on.
type Canvas struct {
	Active bool  // Set once the program creates or draws on the canvas.
	Width  int   // Columns.
	Height int   // Rows.
	Fg     Color // Current foreground.
	Bg     Color // Current background.

	cells []Cell
}

// Defines returns the canvas limits as assembler equates.
func (cv *Canvas) Defines() iter.Seq2[string, int64] {
	defines := map[string]int64{
		"CANVAS_WIDTH_MAX":  CANVAS_WIDTH_MAX,
		"CANVAS_HEIGHT_MAX": CANVAS_HEIGHT_MAX,
	}
	for color := COLOR_BLACK; color <= COLOR_WHITE; color++ {
		defines["COLOR_"+strings.ToUpper(color.String())] = int64(color)
	}
	return maps.All(defines)
}

// Reset discards the canvas.
func (cv *Canvas) Reset() {
	cv.Active = false
	cv.Width = 0
	cv.Height = 0
	cv.cells = nil
	cv.ResetColor()
}

// Create makes a new, blank canvas. A zero size selects the default, and
// sizes beyond the maximum are clamped.
func (cv *Canvas) Create(width, height int) {
	if width < 1 {
		width = CANVAS_WIDTH_DEFAULT
	}
	if height < 1 {
		height = CANVAS_HEIGHT_DEFAULT
	}
	cv.Width = min(width, CANVAS_WIDTH_MAX)
	cv.Height = min(height, CANVAS_HEIGHT_MAX)
	cv.Active = true
	cv.cells = make([]Cell, cv.Width*cv.Height)
	cv.Clear()
}

func (cv *Canvas) ensure() {
	if !cv.Active {
		cv.Create(CANVAS_WIDTH_AUTO, CANVAS_HEIGHT_AUTO)
	}
}

// Clear blanks every cell.
func (cv *Canvas) Clear() {
	cv.ensure()
	for n := range cv.cells {
		cv.cells[n] = blankCell
	}
}

// SetColor selects the drawing colours.
func (cv *Canvas) SetColor(fg, bg Color) {
	cv.ensure()
	cv.Fg = fg & 7
	cv.Bg = bg & 7
}

// ResetColor restores white on black.
func (cv *Canvas) ResetColor() {
	cv.Fg = COLOR_WHITE
	cv.Bg = COLOR_BLACK
}

// At returns the cell at a position. Positions off the canvas are blank.
func (cv *Canvas) At(x, y int) Cell {
	if x < 0 || x >= cv.Width || y < 0 || y >= cv.Height {
		return blankCell
	}
	return cv.cells[y*cv.Width+x]
}

// Plot puts a character in the current colours. NUL plots a space, and
// positions off the canvas are ignored.
func (cv *Canvas) Plot(x, y int, char byte) {
	cv.ensure()
	if x < 0 || x >= cv.Width || y < 0 || y >= cv.Height {
		return
	}
	if char == 0 {
		char = ' '
	}
	cv.cells[y*cv.Width+x] = Cell{Char: char, Fg: cv.Fg, Bg: cv.Bg}
}

// Line draws a horizontal or vertical line, inclusive of both ends. NUL
// draws '*'. Diagonal lines draw nothing.
func (cv *Canvas) Line(x1, y1, x2, y2 int, char byte) {
	cv.ensure()
	if char == 0 {
		char = '*'
	}
	switch {
	case y1 == y2:
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			cv.Plot(x, y1, char)
		}
	case x1 == x2:
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			cv.Plot(x1, y, char)
		}
	}
}

// Box draws a bordered, space filled rectangle.
func (cv *Canvas) Box(x, y, width, height int) {
	cv.ensure()
	if width < 1 || height < 1 {
		return
	}
	right := x + width - 1
	bottom := y + height - 1
	for row := y; row <= bottom; row++ {
		for col := x; col <= right; col++ {
			edgeX := col == x || col == right
			edgeY := row == y || row == bottom
			switch {
			case edgeX && edgeY:
				cv.Plot(col, row, '+')
			case edgeY:
				cv.Plot(col, row, '-')
			case edgeX:
				cv.Plot(col, row, '|')
			default:
				cv.Plot(col, row, ' ')
			}
		}
	}
}

// Rows iterates the canvas rows as text.
func (cv *Canvas) Rows() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for y := range cv.Height {
			row := make([]byte, cv.Width)
			for x := range cv.Width {
				row[x] = cv.At(x, y).Char
			}
			if !yield(y, string(row)) {
				return
			}
		}
	}
}

// Render writes the canvas as ANSI coloured text. Nothing is written for a
// canvas the program never used.
func (cv *Canvas) Render(w io.Writer) (err error) {
	if !cv.Active {
		return
	}

	out := bufio.NewWriter(w)
	for y := range cv.Height {
		last := Cell{Fg: -1, Bg: -1}
		for x := range cv.Width {
			cell := cv.At(x, y)
			if cell.Fg != last.Fg || cell.Bg != last.Bg {
				fmt.Fprintf(out, "\x1b[3%d;4%dm", cell.Fg, cell.Bg)
				last = cell
			}
			out.WriteByte(cell.Char)
		}
		out.WriteString("\x1b[0m\n")
	}

	return out.Flush()
}

// Style returns the tcell style of a cell.
func (cell Cell) Style() tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(cell.Fg))).
		Background(tcell.PaletteColor(int(cell.Bg)))
}

// Draw paints the canvas on a screen with its top left corner at (x, y).
func (cv *Canvas) Draw(screen tcell.Screen, x, y int) {
	for row := range cv.Height {
		for col := range cv.Width {
			cell := cv.At(col, row)
			screen.SetContent(x+col, y+row, rune(cell.Char), nil, cell.Style())
		}
	}
}
