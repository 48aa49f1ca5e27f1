package systems

import (
	"github.com/emlai/zenith-sub000/internal/domain"
)

// TraceLine проходит целочисленную прямую от from к to.
// Только целочисленная арифметика: ведущая ось выбирается сравнением 2|dx| и 2|dy|,
// по ней шаг каждый раз, по второй оси - когда накопленная ошибка превышает |ведущей|.
// При |dx| == |dy| шаг всегда диагональный.
//
// visit вызывается для каждой точки ПОСЛЕ from. Если visit вернул false,
// обход сразу прекращается и результат false ("заблокировано").
func TraceLine(from, to domain.Position, visit func(p domain.Position) bool) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	sx, sy := sign(dx), sign(dy)
	ax, ay := dx*sx, dy*sy

	x, y := from.X, from.Y

	switch {
	case ax == ay:
		for i := 0; i < ax; i++ {
			x += sx
			y += sy
			if !visit(domain.Position{X: x, Y: y}) {
				return false
			}
		}
	case 2*ax > 2*ay:
		err := 0
		for i := 0; i < ax; i++ {
			x += sx
			err += 2 * ay
			if err > ax {
				y += sy
				err -= 2 * ax
			}
			if !visit(domain.Position{X: x, Y: y}) {
				return false
			}
		}
	default:
		err := 0
		for i := 0; i < ay; i++ {
			y += sy
			err += 2 * ax
			if err > ay {
				x += sx
				err -= 2 * ay
			}
			if !visit(domain.Position{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

// Line возвращает точки прямой без стартовой.
func Line(from, to domain.Position) []domain.Position {
	var out []domain.Position
	TraceLine(from, to, func(p domain.Position) bool {
		out = append(out, p)
		return true
	})
	return out
}

// HasLineOfSight: цель видна, если прямая до неё свободна или первая
// преграда на пути - сама цель (стену видно, хотя сквозь неё нет).
// Тайлы не создаются: отсутствующая зона взгляд не блокирует.
func HasLineOfSight(w *domain.World, level int, from, to domain.Position) bool {
	return TraceLine(from, to, func(p domain.Position) bool {
		if p == to {
			return true
		}
		t := w.GetTile(p, level)
		return t == nil || !t.BlocksSight()
	})
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
