package systems

import (
	"github.com/emlai/zenith-sub000/internal/domain"
)

type lightSource struct {
	pos     domain.Position
	emitter domain.Emitter
}

// ComputeLight пересчитывает освещение региона, расширенного на maxRadius:
// сброс, затем каждый источник освещает клетки своего круга, до которых
// доходит прямая. Перекрытия объединяются покомпонентным максимумом.
// Освещаются только клетки расширенного региона: остальные не сбрасывались.
func ComputeLight(w *domain.World, region domain.Rect, level, maxRadius int) {
	lit := region.Inflate(maxRadius)

	var sources []lightSource
	w.ForEachTile(lit, level, func(p domain.Position, t *domain.Tile) {
		t.Light = domain.Black
		if t.Object == nil {
			return
		}
		if e, ok := t.Object.Emitter(); ok && e.LightRadius() > 0 {
			sources = append(sources, lightSource{pos: p, emitter: e})
		}
	})

	for _, s := range sources {
		emit(w, lit, level, s)
	}
}

func emit(w *domain.World, lit domain.Rect, level int, s lightSource) {
	radius := s.emitter.LightRadius()
	color := s.emitter.LightColor()
	r2 := float64(radius * radius)

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			reverse := float64(dx*dx+dy*dy) / r2
			if reverse >= 1 {
				continue
			}
			target := s.pos.Shift(dx, dy)
			if !lit.Contains(target) {
				continue
			}
			tile := w.GetTile(target, level)
			if tile == nil || !HasLineOfSight(w, level, s.pos, target) {
				continue
			}
			tile.Light = tile.Light.Max(color.Scale(1 - reverse))
		}
	}
}
