package emulator

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestCanvas_Create(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		width, height int
		expect        [2]int
	}{
		{0, 0, [2]int{CANVAS_WIDTH_DEFAULT, CANVAS_HEIGHT_DEFAULT}},
		{5, 3, [2]int{5, 3}},
		{200, 100, [2]int{CANVAS_WIDTH_MAX, CANVAS_HEIGHT_MAX}},
	}

	for _, entry := range table {
		var cv Canvas
		cv.Create(entry.width, entry.height)
		assert.True(cv.Active)
		assert.Equal(entry.expect, [2]int{cv.Width, cv.Height}, entry)
		assert.Equal(blankCell, cv.At(0, 0))
	}
}

func TestCanvas_Auto(t *testing.T) {
	assert := assert.New(t)

	var cv Canvas
	assert.False(cv.Active)

	cv.Plot(1, 1, 0)
	assert.True(cv.Active)
	assert.Equal(CANVAS_WIDTH_AUTO, cv.Width)
	assert.Equal(CANVAS_HEIGHT_AUTO, cv.Height)
	assert.Equal(byte(' '), cv.At(1, 1).Char)

	// Off canvas plots are ignored.
	cv.Plot(CANVAS_WIDTH_AUTO, 0, 'x')
	cv.Plot(-1, 0, 'x')
	for _, row := range cv.Rows() {
		assert.NotContains(row, "x")
	}

	cv.Reset()
	assert.False(cv.Active)
	assert.Equal(0, cv.Width)
}

func TestCanvas_Line(t *testing.T) {
	assert := assert.New(t)

	var cv Canvas
	cv.Create(4, 4)
	cv.Line(3, 0, 0, 0, '=')
	cv.Line(1, 3, 1, 1, '#')
	cv.Line(0, 0, 3, 3, 'x')

	var rows []string
	for _, row := range cv.Rows() {
		rows = append(rows, row)
	}
	assert.Equal([]string{
		"====",
		" #  ",
		" #  ",
		" #  ",
	}, rows)
}

func TestCanvas_Render(t *testing.T) {
	assert := assert.New(t)

	var cv Canvas
	buffer := &bytes.Buffer{}
	assert.NoError(cv.Render(buffer))
	assert.Equal("", buffer.String())

	cv.Create(3, 2)
	cv.SetColor(COLOR_GREEN, COLOR_RED)
	cv.Plot(1, 0, 'a')

	assert.NoError(cv.Render(buffer))
	assert.Equal(
		"\x1b[37;40m \x1b[32;41ma\x1b[37;40m \x1b[0m\n"+
			"\x1b[37;40m   \x1b[0m\n",
		buffer.String())
}

func TestCanvas_Draw(t *testing.T) {
	assert := assert.New(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if !assert.NoError(screen.Init()) {
		return
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	var cv Canvas
	cv.Create(4, 2)
	cv.SetColor(COLOR_YELLOW, COLOR_BLUE)
	cv.Plot(3, 1, 'Q')
	cv.Draw(screen, 2, 3)
	screen.Show()

	mainc, _, style, _ := screen.GetContent(5, 4)
	assert.Equal('Q', mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(tcell.PaletteColor(int(COLOR_YELLOW)), fg)
	assert.Equal(tcell.PaletteColor(int(COLOR_BLUE)), bg)

	mainc, _, _, _ = screen.GetContent(2, 3)
	assert.Equal(' ', mainc)
}

func TestCanvas_Defines(t *testing.T) {
	assert := assert.New(t)

	var cv Canvas
	count := 0
	for name, value := range cv.Defines() {
		switch name {
		case "COLOR_BLACK":
			assert.Equal(int64(0), value)
		case "COLOR_CYAN":
			assert.Equal(int64(6), value)
		case "CANVAS_HEIGHT_MAX":
			assert.Equal(int64(CANVAS_HEIGHT_MAX), value)
		}
		count++
	}
	assert.Equal(10, count)
}
