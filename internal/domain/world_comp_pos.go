package domain

import "math"

// Position - точка на глобальной сетке тайлов (или в пространстве зон,
// смотря по контексту). Координаты знаковые и ничем не ограничены.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Position) Scale(k int) Position { return Position{X: p.X * k, Y: p.Y * k} }

// --- ДЕЛЕНИЕ С ОКРУГЛЕНИЕМ ВНИЗ ---
//
// Оператор / в Go усекает к нулю: -1/64 == 0, -1%64 == -1.
// Для сетки нужен floor: -1 -> зона -1, локальная 63.

// FloorDiv делит с округлением к минус бесконечности. b > 0.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// FloorMod возвращает остаток в диапазоне [0, b). b > 0.
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// GlobalToArea переводит глобальную позицию тайла в позицию зоны.
func GlobalToArea(p Position) Position {
	return Position{X: FloorDiv(p.X, AreaSize), Y: FloorDiv(p.Y, AreaSize)}
}

// GlobalToLocal переводит глобальную позицию в локальную внутри зоны: [0, AreaSize).
func GlobalToLocal(p Position) Position {
	return Position{X: FloorMod(p.X, AreaSize), Y: FloorMod(p.Y, AreaSize)}
}

// AreaToGlobal - обратное преобразование: area*AreaSize + local.
func AreaToGlobal(area, local Position) Position {
	return area.Scale(AreaSize).Add(local)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- ПРЯМОУГОЛЬНИКИ ---

// Rect - прямоугольник на сетке, выровненный по осям. W/H - размеры в тайлах.
type Rect struct {
	X, Y, W, H int
}

func NewRect(topLeft Position, w, h int) Rect {
	return Rect{X: topLeft.X, Y: topLeft.Y, W: w, H: h}
}

func (r Rect) TopLeft() Position { return Position{X: r.X, Y: r.Y} }

// BottomRight - последняя клетка внутри прямоугольника (включительно).
func (r Rect) BottomRight() Position { return Position{X: r.X + r.W - 1, Y: r.Y + r.H - 1} }

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inflate расширяет прямоугольник на n клеток во все стороны.
func (r Rect) Inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Intersect возвращает пересечение (пустой Rect, если его нет).
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ForEach обходит все клетки построчно (row-major).
func (r Rect) ForEach(fn func(p Position)) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}

// Perimeter возвращает клетки рамки толщиной в один тайл, каждую ровно один раз:
// верхняя строка, нижняя строка, затем левый и правый столбцы без углов.
func (r Rect) Perimeter() []Position {
	if r.Empty() {
		return nil
	}
	out := make([]Position, 0, 2*r.W+2*r.H)
	br := r.BottomRight()
	for x := r.X; x <= br.X; x++ {
		out = append(out, Position{X: x, Y: r.Y})
		if br.Y != r.Y {
			out = append(out, Position{X: x, Y: br.Y})
		}
	}
	for y := r.Y + 1; y < br.Y; y++ {
		out = append(out, Position{X: r.X, Y: y})
		if br.X != r.X {
			out = append(out, Position{X: br.X, Y: y})
		}
	}
	return out
}
