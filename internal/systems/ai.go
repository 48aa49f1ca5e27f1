package systems

import (
	"math/rand"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/samber/oops"
)

// Имена поведений в конфиге.
const (
	BehaviorIdle   = "idle"
	BehaviorWander = "wander"
)

var directions = [8]domain.Position{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Behaviors возвращает резолвер поведений по имени. Случайные решения берутся из rng.
func Behaviors(rng *rand.Rand) func(name string) (domain.Behavior, error) {
	wander := Wander(rng)
	return func(name string) (domain.Behavior, error) {
		switch name {
		case "", BehaviorIdle:
			return Idle, nil
		case BehaviorWander:
			return wander, nil
		default:
			return nil, oops.Code("UNKNOWN_BEHAVIOR").With("behavior", name).Wrap(domain.ErrUnknownBehavior)
		}
	}
}

// Idle - стоит на месте.
var Idle = domain.BehaviorFunc(func(_ *domain.World, _ *domain.Creature, pos domain.Position, _ int) domain.Position {
	return pos
})

// Wander делает шаг в случайную соседнюю клетку, если она проходима и свободна.
func Wander(rng *rand.Rand) domain.Behavior {
	return domain.BehaviorFunc(func(w *domain.World, c *domain.Creature, pos domain.Position, level int) domain.Position {
		next := pos.Add(directions[rng.Intn(len(directions))])
		if !CanEnter(w, next, level) {
			return pos
		}
		if err := w.MoveCreature(c, pos, next, level); err != nil {
			return pos
		}
		return next
	})
}

// CanEnter: клетка проходима и на ней нет существ.
func CanEnter(w *domain.World, p domain.Position, level int) bool {
	t := w.GetOrCreateTile(p, level)
	return !t.BlocksMovement() && len(t.Creatures) == 0
}
