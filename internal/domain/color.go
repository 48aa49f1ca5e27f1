package domain

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color - RGB в диапазоне [0, 1] на канал.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// ParseColor разбирает "#RRGGBB".
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// Scale умножает все каналы на k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Max - поканальный максимум. Так складываются пересекающиеся источники,
// без пересвета.
func (c Color) Max(o Color) Color {
	return Color{R: max(c.R, o.R), G: max(c.G, o.G), B: max(c.B, o.B)}
}

// Mul - поканальное произведение (цвет глифа под светом).
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Intensity - яркость как максимум каналов.
func (c Color) Intensity() float64 {
	return max(c.R, c.G, c.B)
}

func (c Color) IsBlack() bool { return c == Black }

// Colorful конвертирует в тип go-colorful (для смешивания при рендере).
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex возвращает "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}
