package engine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/emlai/zenith-sub000/pkg/dungeon"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// SavePath - имя файла сохранения по умолчанию в SaveDir.
func (g *Game) SavePath(at time.Time) string {
	return filepath.Join(g.cfg.SaveDir, "world_"+at.UTC().Format("20060102T150405.000")+storage.FileExt)
}

// Save пишет весь мир в файл. Вызывающий гарантирует, что мир в это время
// не меняется (в Run сохранение делается из той же горутины).
func (g *Game) Save(ctx context.Context, path string) (storage.Info, error) {
	now := time.Now()
	info, err := storage.SaveFile(path, g.World, storage.Meta{
		Seed:      g.cfg.Seed,
		SeedMode:  uint8(g.cfg.SeedMode),
		Timestamp: now,
	})
	if err != nil {
		return info, err
	}
	SaveBytes.Add(float64(info.Bytes))

	if g.index != nil {
		if _, err := g.index.Record(ctx, storage.SaveRecord{
			Path:      info.Path,
			Seed:      g.cfg.Seed,
			Areas:     info.Areas,
			Creatures: info.Creatures,
			Bytes:     info.Bytes,
			CreatedAt: now,
		}); err != nil {
			return info, err
		}
	}
	return info, nil
}

// Load восстанавливает игру из файла. Сид и режим берутся из сохранения,
// остальное из cfg. Поведения существ назначаются заново по их типу.
func Load(path string, cfg Config, data *config.Config) (*Game, error) {
	h, err := storage.ReadHeader(path)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	cfg.Seed = h.Meta.Seed
	cfg.SeedMode = dungeon.SeedMode(h.Meta.SeedMode)

	g, err := newGame(cfg, data)
	if err != nil {
		return nil, err
	}

	world, _, err := storage.LoadFile(path, g.factory.Components())
	if err != nil {
		return nil, err
	}
	world.SetGenerator(g.generator)
	world.OnAreaCreated = g.onAreaCreated
	g.World = world

	if err := g.attachBehaviors(); err != nil {
		return nil, err
	}

	player, pos, level, ok := findPlayer(world)
	if !ok {
		return nil, oops.Code("NO_PLAYER").With("path", path).Errorf("save has no %q creature", PlayerType)
	}
	g.Player, g.playerPos, g.level = player, pos, level

	g.log.WithFields(logrus.Fields{
		"path":      path,
		"seed":      cfg.Seed,
		"areas":     world.AreaCount(),
		"creatures": world.CreatureCount(),
	}).Info("World loaded")
	return g, nil
}

func (g *Game) attachBehaviors() error {
	for _, a := range g.World.Areas() {
		for i := range a.Tiles {
			for _, c := range a.Tiles[i].Creatures {
				if err := g.factory.AttachBehavior(c); err != nil {
					return oops.With("creature", c.ID.String()).Wrap(err)
				}
			}
		}
	}
	return nil
}

// CreatureAt - для отладки и тестов: первое существо на клетке.
func (g *Game) CreatureAt(p domain.Position, level int) *domain.Creature {
	t := g.World.GetTile(p, level)
	if t == nil || len(t.Creatures) == 0 {
		return nil
	}
	return t.Creatures[0]
}
