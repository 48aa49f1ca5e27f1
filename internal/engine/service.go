package engine

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/systems"
	"github.com/emlai/zenith-sub000/pkg/dungeon"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// ActionType - действие игрока.
type ActionType string

const (
	ActionMove    ActionType = "MOVE"
	ActionWait    ActionType = "WAIT"
	ActionUse     ActionType = "USE"
	ActionDescend ActionType = "DESCEND"
	ActionAscend  ActionType = "ASCEND"
)

var ErrUnknownAction = errors.New("unknown action")

// Command - команда игрока (приходит из websocket или CLI).
type Command struct {
	Action ActionType `json:"action"`
	Dx     int        `json:"dx,omitempty"`
	Dy     int        `json:"dy,omitempty"`
}

// ParseCommand разбирает JSON-команду.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return cmd, oops.Code("BAD_COMMAND").Wrap(err)
	}
	switch cmd.Action {
	case ActionMove, ActionWait, ActionUse, ActionDescend, ActionAscend:
		return cmd, nil
	default:
		return cmd, oops.Code("UNKNOWN_ACTION").With("action", cmd.Action).Wrap(ErrUnknownAction)
	}
}

// Submit ставит команду в очередь игрового цикла. Не блокирует:
// при переполненной очереди команда отбрасывается.
func (g *Game) Submit(cmd Command) bool {
	select {
	case g.commands <- cmd:
		return true
	default:
		return false
	}
}

// Apply выполняет команду игрока. true - ход потрачен.
func (g *Game) Apply(cmd Command) bool {
	if g.Player.IsDead() {
		return false
	}
	switch cmd.Action {
	case ActionWait:
		return true
	case ActionMove:
		return g.movePlayer(cmd.Dx, cmd.Dy)
	case ActionUse:
		return g.use(cmd.Dx, cmd.Dy)
	case ActionDescend:
		return g.changeLevel(g.level - 1)
	case ActionAscend:
		return g.changeLevel(g.level + 1)
	}
	return false
}

func (g *Game) movePlayer(dx, dy int) bool {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return false
	}
	target := g.playerPos.Shift(dx, dy)
	tile := g.World.GetOrCreateTile(target, g.level)

	// Закрытая дверь открывается вместо шага.
	if tile.Object != nil && tile.BlocksMovement() {
		return tile.Object.Use(g.Player)
	}
	if !systems.CanEnter(g.World, target, g.level) {
		return false
	}
	if err := g.World.MoveCreature(g.Player, g.playerPos, target, g.level); err != nil {
		g.log.WithError(err).Warn("Player move failed")
		return false
	}
	g.playerPos = target
	return true
}

func (g *Game) use(dx, dy int) bool {
	tile := g.World.GetOrCreateTile(g.playerPos.Shift(dx, dy), g.level)
	if tile.Object == nil {
		return false
	}
	return tile.Object.Use(g.Player)
}

func (g *Game) changeLevel(to int) bool {
	pos, ok := dungeon.FindSpawnPoint(g.World, g.playerPos, to, spawnSearchRadius)
	if !ok {
		return false
	}
	if err := g.World.MoveCreatureBetweenLevels(g.Player, g.playerPos, g.level, pos, to); err != nil {
		g.log.WithError(err).Warn("Level change failed")
		return false
	}
	g.log.WithFields(logrus.Fields{"from": g.level, "to": to, "pos": pos}).Info("Player changed level")
	g.playerPos, g.level = pos, to
	return true
}

// Tick - один ход мира: exist по области вокруг игрока, затем рендер
// и рассылка кадра.
func (g *Game) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.turn++

	updated, removed := g.Exist(g.Viewport(), g.level)
	if g.Player.IsDead() {
		g.log.WithField("turn", g.turn).Warn("Player died")
	}

	frame := g.Frame()
	g.Hub.Broadcast(frame)

	g.log.WithFields(logrus.Fields{
		"turn":    g.turn,
		"updated": updated,
		"removed": removed,
		"areas":   frame.Areas,
	}).Debug("Tick")
	return nil
}

// Run - игровой цикл: ход по таймеру или по команде игрока.
// Возвращается, когда ctx отменён.
func (g *Game) Run(ctx context.Context) error {
	g.log.WithField("interval", g.cfg.TickInterval).Info("Game loop started")

	interval := g.cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Первый кадр - сразу, чтобы зрителям было что показать.
	g.Hub.Broadcast(g.Frame())

	for {
		select {
		case <-ctx.Done():
			g.log.Info("Game loop stopped")
			return nil
		case cmd := <-g.commands:
			if !g.Apply(cmd) {
				continue
			}
			_ = g.Tick(ctx) // ошибка только при отменённом ctx
		case <-ticker.C:
			_ = g.Tick(ctx)
		}
	}
}

// findPlayer ищет существо игрока после загрузки.
func findPlayer(w *domain.World) (*domain.Creature, domain.Position, int, bool) {
	for _, a := range w.Areas() {
		for i := range a.Tiles {
			for _, c := range a.Tiles[i].Creatures {
				if c.Type == PlayerType {
					local := domain.Position{X: i % domain.AreaSize, Y: i / domain.AreaSize}
					return c, domain.AreaToGlobal(a.Pos, local), a.Level, true
				}
			}
		}
	}
	return nil, domain.Position{}, 0, false
}
