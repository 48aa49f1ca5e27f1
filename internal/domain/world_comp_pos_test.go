package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 64, 0},
		{63, 64, 0},
		{64, 64, 1},
		{-1, 64, -1},
		{-64, 64, -1},
		{-65, 64, -2},
		{-128, 64, -2},
		{-129, 64, -3},
		{7, 3, 2},
		{-7, 3, -3},
	}
	for _, tt := range tests {
		got := FloorDiv(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFloorDiv_Bracket(t *testing.T) {
	// q*b <= d < (q+1)*b для всех d, включая отрицательные
	for _, b := range []int{1, 3, 16, AreaSize} {
		for d := -300; d <= 300; d++ {
			q := FloorDiv(d, b)
			if !(q*b <= d && d < (q+1)*b) {
				t.Fatalf("FloorDiv(%d, %d) = %d breaks bracket", d, b, q)
			}
			m := FloorMod(d, b)
			if m < 0 || m >= b || q*b+m != d {
				t.Fatalf("FloorMod(%d, %d) = %d inconsistent with FloorDiv", d, b, m)
			}
		}
	}
}

func TestGlobalToAreaAndLocal(t *testing.T) {
	tests := []struct {
		name  string
		p     Position
		area  Position
		local Position
	}{
		{"origin", Position{0, 0}, Position{0, 0}, Position{0, 0}},
		{"minus one", Position{-1, -1}, Position{-1, -1}, Position{AreaSize - 1, AreaSize - 1}},
		{"area edge", Position{-AreaSize, AreaSize}, Position{-1, 1}, Position{0, 0}},
		{"mixed", Position{-65, 130}, Position{-2, 2}, Position{63, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.area, GlobalToArea(tt.p))
			assert.Equal(t, tt.local, GlobalToLocal(tt.p))
			assert.Equal(t, tt.p, AreaToGlobal(tt.area, tt.local))
		})
	}
}

func TestGlobalLocalInvariant(t *testing.T) {
	for y := -3 * AreaSize; y <= 3*AreaSize; y += 7 {
		for x := -3*AreaSize - 1; x <= 3*AreaSize+1; x += 5 {
			p := Position{X: x, Y: y}
			local := GlobalToLocal(p)
			if local.X < 0 || local.X >= AreaSize || local.Y < 0 || local.Y >= AreaSize {
				t.Fatalf("local %v of %v out of range", local, p)
			}
			if got := AreaToGlobal(GlobalToArea(p), local); got != p {
				t.Fatalf("area*AreaSize+local = %v, want %v", got, p)
			}
		}
	}
}

func TestRect_Perimeter(t *testing.T) {
	r := Rect{X: -2, Y: 3, W: 4, H: 3}
	perim := r.Perimeter()

	// 2*W + 2*(H-2) клеток, без повторов
	assert.Len(t, perim, 2*4+2*1)
	seen := map[Position]bool{}
	for _, p := range perim {
		assert.False(t, seen[p], "duplicate %v", p)
		seen[p] = true
		assert.True(t, r.Contains(p))
	}
	// внутренность не трогаем
	assert.False(t, seen[Position{X: -1, Y: 4}])
	assert.False(t, seen[Position{X: 0, Y: 4}])
}

func TestRect_PerimeterDegenerate(t *testing.T) {
	assert.Len(t, Rect{W: 1, H: 1}.Perimeter(), 1)
	assert.Len(t, Rect{W: 5, H: 1}.Perimeter(), 5)
	assert.Len(t, Rect{W: 1, H: 4}.Perimeter(), 4)
	assert.Nil(t, Rect{W: 0, H: 4}.Perimeter())
}

func TestRect_InflateIntersect(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, Rect{X: -2, Y: -2, W: 14, H: 14}, r.Inflate(2))
	assert.Equal(t, Rect{X: 5, Y: 5, W: 5, H: 5}, r.Intersect(Rect{X: 5, Y: 5, W: 20, H: 20}))
	assert.True(t, r.Intersect(Rect{X: 10, Y: 0, W: 5, H: 5}).Empty())
}

func TestPosition_IsAdjacent(t *testing.T) {
	p := Position{X: 0, Y: 0}
	assert.True(t, p.IsAdjacent(Position{X: -1, Y: 1}))
	assert.False(t, p.IsAdjacent(p))
	assert.False(t, p.IsAdjacent(Position{X: 2, Y: 0}))
}
