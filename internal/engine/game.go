package engine

import (
	"math/rand"
	"time"

	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/emlai/zenith-sub000/internal/network"
	"github.com/emlai/zenith-sub000/internal/render"
	"github.com/emlai/zenith-sub000/internal/systems"
	"github.com/emlai/zenith-sub000/pkg/dungeon"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// PlayerType - id существа игрока в игровых данных.
const PlayerType = "player"

// spawnSearchRadius - как далеко от точки входа искать свободную клетку.
const spawnSearchRadius = 32

// Game владеет миром. Все мутации идут из одной горутины (Run или вызывающего).
type Game struct {
	cfg  Config
	data *config.Config

	World     *domain.World
	Player    *domain.Creature
	playerPos domain.Position
	level     int
	turn      uint64

	rng       *rand.Rand
	factory   *dungeon.Factory
	generator *dungeon.Generator
	renderer  *systems.Renderer

	Hub      *network.Broadcaster
	commands chan Command
	index    *storage.SaveIndex

	log *logrus.Entry
}

// NewGame создаёт новый мир и ставит игрока у начала координат уровня cfg.Level.
func NewGame(cfg Config, data *config.Config) (*Game, error) {
	g, err := newGame(cfg, data)
	if err != nil {
		return nil, err
	}
	g.World = domain.NewWorld(g.generator)
	g.World.OnAreaCreated = g.onAreaCreated

	player, err := g.factory.NewCreature(PlayerType)
	if err != nil {
		return nil, err
	}
	pos, ok := dungeon.FindSpawnPoint(g.World, domain.Position{}, cfg.Level, spawnSearchRadius)
	if !ok {
		return nil, oops.Code("NO_SPAWN_POINT").With("level", cfg.Level).Errorf("no free tile near origin")
	}
	if err := g.World.SpawnCreature(player, pos, cfg.Level); err != nil {
		return nil, err
	}
	g.Player, g.playerPos, g.level = player, pos, cfg.Level

	g.log.WithFields(logrus.Fields{
		"seed":        cfg.Seed,
		"seed_mode":   cfg.SeedMode.String(),
		"player":      player.ID,
		"pos":         pos,
		"world_level": cfg.Level,
	}).Info("New world created")
	return g, nil
}

// newGame собирает всё, кроме мира: фабрику, генератор, рендерер.
func newGame(cfg Config, data *config.Config) (*Game, error) {
	if data == nil {
		data = config.Default()
	}
	g := &Game{
		cfg:      cfg,
		data:     data,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		Hub:      network.NewBroadcaster(),
		commands: make(chan Command, 100),
		log:      logger.Component("engine"),
	}

	g.factory = dungeon.NewFactory(data, domain.DefaultComponents(), systems.Behaviors(g.rng))

	settings, err := dungeon.SettingsFromConfig(data, cfg.Seed, cfg.SeedMode)
	if err != nil {
		return nil, err
	}
	// Общий поток: при SeedShared генерация и игровые решения тянут из него вместе.
	if g.generator, err = dungeon.NewGenerator(settings, g.factory, g.rng); err != nil {
		return nil, err
	}

	glyphs, err := systems.LoadGlyphs(data)
	if err != nil {
		return nil, err
	}
	reach, err := lightReach(data, cfg.MaxLightRadius)
	if err != nil {
		return nil, err
	}
	g.renderer = &systems.Renderer{Glyphs: glyphs, MaxLightRadius: reach}
	return g, nil
}

// lightReach - насколько расширять регион при пересчёте света: не меньше
// радиуса самого дальнего источника в данных.
func lightReach(data *config.Config, base int) (int, error) {
	reach := base
	for _, id := range data.ByKind("object") {
		if !data.Has(id, "light_radius") {
			continue
		}
		r, err := data.Int(id, "light_radius")
		if err != nil {
			return 0, err
		}
		reach = max(reach, r)
	}
	return reach, nil
}

func (g *Game) onAreaCreated(a *domain.Area, d time.Duration) {
	recordAreaGenerated(a.Level, d)
}

// Config возвращает параметры запуска.
func (g *Game) Config() Config { return g.cfg }

// Turn - номер текущего хода.
func (g *Game) Turn() uint64 { return g.turn }

// PlayerPos возвращает позицию и уровень игрока.
func (g *Game) PlayerPos() (domain.Position, int) { return g.playerPos, g.level }

// SetSaveIndex включает запись сохранений в индекс.
func (g *Game) SetSaveIndex(idx *storage.SaveIndex) { g.index = idx }

// Viewport - прямоугольник вокруг игрока.
func (g *Game) Viewport() domain.Rect {
	return domain.Rect{
		X: g.playerPos.X - g.cfg.ViewWidth/2,
		Y: g.playerPos.Y - g.cfg.ViewHeight/2,
		W: g.cfg.ViewWidth,
		H: g.cfg.ViewHeight,
	}
}

// Exist продвигает симуляцию всех существ региона на один ход.
func (g *Game) Exist(region domain.Rect, level int) (updated, removed int) {
	updated, removed = systems.Exist(g.World, region, level)
	CreaturesUpdated.Add(float64(updated))
	return updated, removed
}

// Render пересчитывает свет и рисует регион.
func (g *Game) Render(region domain.Rect, level int, canvas systems.Canvas) {
	g.renderer.Ambient = domain.Black
	if level >= domain.LevelSurface {
		g.renderer.Ambient = domain.White.Scale(g.cfg.SurfaceAmbient)
	}
	g.renderer.Render(g.World, region, level, canvas)
}

// Frame рисует область вокруг игрока в текстовый кадр.
func (g *Game) Frame() network.Frame {
	view := g.Viewport()
	canvas := render.NewTextCanvas(view.W, view.H)
	g.Render(view, g.level, canvas)
	return network.Frame{
		Turn:      g.turn,
		Level:     g.level,
		X:         g.playerPos.X,
		Y:         g.playerPos.Y,
		Lines:     canvas.Lines(),
		Areas:     g.World.AreaCount(),
		Creatures: g.World.CreatureCount(),
		PlayerHP:  g.Player.HP,
	}
}
