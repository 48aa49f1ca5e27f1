package systems

import (
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ComputeVisibleTiles возвращает множество клеток, видимых из origin в круге radius.
// Центр виден всегда; при radius <= 0 видна только она.
func ComputeVisibleTiles(w *domain.World, level int, origin domain.Position, radius int) map[domain.Position]bool {
	visible := map[domain.Position]bool{origin: true}
	if radius <= 0 {
		return visible
	}

	r2 := radius * radius
	box := domain.Rect{X: origin.X - radius, Y: origin.Y - radius, W: 2*radius + 1, H: 2*radius + 1}
	box.ForEach(func(p domain.Position) {
		if origin.DistanceSquaredTo(p) > r2 {
			return
		}
		if HasLineOfSight(w, level, origin, p) {
			visible[p] = true
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"component":     "fov_system",
		"observer_pos":  origin,
		"radius":        radius,
		"visible_tiles": len(visible),
	}).Debug("FOV calculation complete.")

	return visible
}
