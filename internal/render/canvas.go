// Package render - реализации systems.Canvas: терминал (tcell) и текстовый кадр
// для CLI и websocket-просмотрщика.
package render

import (
	"strings"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/gdamore/tcell/v2"
)

// ScreenCanvas рисует в tcell.Screen со смещением.
type ScreenCanvas struct {
	Screen   tcell.Screen
	OffsetX  int
	OffsetY  int
	Backdrop tcell.Color
}

func NewScreenCanvas(s tcell.Screen) *ScreenCanvas {
	return &ScreenCanvas{Screen: s, Backdrop: tcell.ColorBlack}
}

func (c *ScreenCanvas) SetCell(x, y int, ch rune, fg domain.Color) {
	style := tcell.StyleDefault.Foreground(TermColor(fg)).Background(c.Backdrop)
	c.Screen.SetContent(c.OffsetX+x, c.OffsetY+y, ch, nil, style)
}

// TermColor переводит цвет в truecolor tcell.
func TermColor(c domain.Color) tcell.Color {
	r, g, b := c.Colorful().Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// TextCanvas - кадр из символов без цвета. Нетронутые клетки - пробелы.
type TextCanvas struct {
	width, height int
	cells         []rune
	colors        []domain.Color
}

func NewTextCanvas(width, height int) *TextCanvas {
	c := &TextCanvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
		colors: make([]domain.Color, width*height),
	}
	c.Clear()
	return c
}

func (c *TextCanvas) Width() int  { return c.width }
func (c *TextCanvas) Height() int { return c.height }

// Clear заполняет кадр пробелами.
func (c *TextCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
		c.colors[i] = domain.Black
	}
}

// SetCell игнорирует координаты за пределами кадра.
func (c *TextCanvas) SetCell(x, y int, ch rune, fg domain.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = ch
	c.colors[y*c.width+x] = fg
}

// Cell возвращает символ и цвет клетки.
func (c *TextCanvas) Cell(x, y int) (rune, domain.Color) {
	return c.cells[y*c.width+x], c.colors[y*c.width+x]
}

// Lines возвращает кадр построчно.
func (c *TextCanvas) Lines() []string {
	lines := make([]string, c.height)
	for y := range c.height {
		lines[y] = string(c.cells[y*c.width : (y+1)*c.width])
	}
	return lines
}

// String - кадр целиком, строки через '\n'.
func (c *TextCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
