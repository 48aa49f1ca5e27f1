package systems

import (
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

// MaxActionsPerTurn ограничивает число действий быстрого существа за один ход.
const MaxActionsPerTurn = 4

type occupant struct {
	c   *domain.Creature
	pos domain.Position
}

// Exist продвигает симуляцию региона на один ход: каждое существо, стоящее
// в регионе, обрабатывается ровно один раз, даже если после своего хода
// оно оказалось на другой клетке региона. Затем мёртвые снимаются с тайлов.
// Возвращает число походивших и число убранных существ.
func Exist(w *domain.World, region domain.Rect, level int) (updated, removed int) {
	var queue []*occupant
	seen := make(map[*domain.Creature]*occupant)

	w.ForEachTile(region, level, func(p domain.Position, t *domain.Tile) {
		for _, c := range t.Creatures {
			if _, ok := seen[c]; ok {
				continue
			}
			o := &occupant{c: c, pos: p}
			seen[c] = o
			queue = append(queue, o)
		}
	})

	for _, o := range queue {
		if o.c.IsDead() {
			continue
		}
		o.c.Energy += energyGain(o.c)
		for n := 0; o.c.Energy >= 1 && n < MaxActionsPerTurn; n++ {
			o.c.Energy--
			if o.c.Behavior != nil {
				o.pos = o.c.Behavior.Act(w, o.c, o.pos, level)
			}
			if o.c.IsDead() {
				break
			}
		}
		updated++
	}

	for _, o := range queue {
		if !o.c.IsDead() {
			continue
		}
		if err := w.RemoveCreature(o.c, o.pos, level); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "exist_system",
				"creature":  o.c.ID,
				"pos":       o.pos,
			}).WithError(err).Warn("Dead creature is not where it was last seen")
			continue
		}
		removed++
	}
	return updated, removed
}

// energyGain - доля действия за ход: speed 100 = одно действие.
func energyGain(c *domain.Creature) float64 {
	speed := c.Attribute(domain.AttrSpeed)
	if speed <= 0 {
		return 1
	}
	return float64(speed) / 100
}
