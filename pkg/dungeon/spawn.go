package dungeon

import "github.com/emlai/zenith-sub000/internal/domain"

// FindSpawnPoint ищет ближайшую к center проходимую клетку без существ,
// обходя квадратные кольца радиусом до maxRadius. Зоны создаются по мере обхода.
func FindSpawnPoint(w *domain.World, center domain.Position, level, maxRadius int) (domain.Position, bool) {
	free := func(p domain.Position) bool {
		t := w.GetOrCreateTile(p, level)
		return !t.BlocksMovement() && len(t.Creatures) == 0
	}
	if free(center) {
		return center, true
	}
	for r := 1; r <= maxRadius; r++ {
		ring := domain.Rect{X: center.X - r, Y: center.Y - r, W: 2*r + 1, H: 2*r + 1}
		for _, p := range ring.Perimeter() {
			if free(p) {
				return p, true
			}
		}
	}
	return domain.Position{}, false
}
