package dungeon

import (
	"math/rand"

	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/emlai/zenith-sub000/pkg/utils"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// MaxRoomsPerArea - предохранитель от бесконечного цикла при density >= 1.
const MaxRoomsPerArea = 64

// SeedMode - откуда зона берёт случайные числа.
type SeedMode uint8

const (
	// SeedPerArea: поток зоны = чистая функция (seed, ключ зоны).
	// Мир воспроизводим независимо от порядка, в котором зоны запрашивались.
	SeedPerArea SeedMode = iota
	// SeedShared: один общий поток на процесс, расходуется в порядке запросов.
	SeedShared
)

// ParseSeedMode: "per_area" | "shared".
func ParseSeedMode(s string) (SeedMode, error) {
	switch s {
	case "", "per_area":
		return SeedPerArea, nil
	case "shared":
		return SeedShared, nil
	default:
		return 0, oops.Code("CONFIG_INVALID").Errorf("unknown seed mode %q", s)
	}
}

func (m SeedMode) String() string {
	if m == SeedShared {
		return "shared"
	}
	return "per_area"
}

// Settings - параметры генерации (секция "generation" конфига + сид).
type Settings struct {
	Seed int64
	Mode SeedMode

	Density        float64
	RoomMin        int
	RoomMax        int
	TorchChance    float64
	CreatureChance float64

	Wall      string
	Door      string
	Torch     string
	Creatures []string

	SurfaceGrounds     []string
	UndergroundGrounds []string
}

// SettingsFromConfig читает секции generation/surface/underground.
func SettingsFromConfig(cfg *config.Config, seed int64, mode SeedMode) (Settings, error) {
	s := Settings{Seed: seed, Mode: mode}
	gen, err := cfg.Lookup("generation")
	if err != nil {
		return s, err
	}
	if s.Density, err = gen.Float("density"); err != nil {
		return s, err
	}
	if s.RoomMin, err = gen.Int("room_min"); err != nil {
		return s, err
	}
	if s.RoomMax, err = gen.Int("room_max"); err != nil {
		return s, err
	}
	if s.TorchChance, err = gen.FloatOr("torch_chance", 0); err != nil {
		return s, err
	}
	if s.CreatureChance, err = gen.FloatOr("creature_chance", 0); err != nil {
		return s, err
	}
	if s.Wall, err = gen.String("wall"); err != nil {
		return s, err
	}
	if s.Door, err = gen.StringOr("door", ""); err != nil {
		return s, err
	}
	if s.Torch, err = gen.StringOr("torch", ""); err != nil {
		return s, err
	}
	if gen.Has("creatures") {
		if s.Creatures, err = gen.Strings("creatures"); err != nil {
			return s, err
		}
	}
	if s.SurfaceGrounds, err = cfg.Strings("surface", "grounds"); err != nil {
		return s, err
	}
	if s.UndergroundGrounds, err = cfg.Strings("underground", "grounds"); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Validate проверяет диапазоны.
func (s Settings) Validate() error {
	if s.RoomMin < 1 || s.RoomMax < s.RoomMin {
		return oops.Code("CONFIG_INVALID").Errorf("room size range [%d, %d] is invalid", s.RoomMin, s.RoomMax)
	}
	if s.Density < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("density must not be negative, got %g", s.Density)
	}
	if len(s.SurfaceGrounds) == 0 || len(s.UndergroundGrounds) == 0 {
		return oops.Code("CONFIG_INVALID").Errorf("ground palettes must not be empty")
	}
	return nil
}

// Generator наполняет новую зону: земля, комнаты со стенами, факелы, существа.
type Generator struct {
	settings Settings
	factory  *Factory
	shared   *rand.Rand
	log      *logrus.Entry
}

// NewGenerator проверяет, что все объекты и существа из настроек собираются,
// чтобы во время генерации ошибок конфига уже не было.
// shared - общий поток процесса; nil - новый поток от s.Seed.
func NewGenerator(s Settings, f *Factory, shared *rand.Rand) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for _, id := range []string{s.Wall, s.Door, s.Torch} {
		if id == "" {
			continue
		}
		if _, err := f.NewObject(id); err != nil {
			return nil, err
		}
	}
	for _, id := range s.Creatures {
		if _, err := f.NewCreature(id); err != nil {
			return nil, err
		}
	}
	if shared == nil {
		shared = rand.New(rand.NewSource(s.Seed))
	}
	return &Generator{
		settings: s,
		factory:  f,
		shared:   shared,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "dungeon_generator",
			"seed_mode": s.Mode.String(),
		}),
	}, nil
}

// Settings возвращает настройки генератора.
func (g *Generator) Settings() Settings { return g.settings }

// Rand - общий поток процесса (режим SeedShared). Его же используют
// остальные стохастические решения игры.
func (g *Generator) Rand() *rand.Rand { return g.shared }

func (g *Generator) rngFor(area *domain.Area) *rand.Rand {
	if g.settings.Mode == SeedShared {
		return g.shared
	}
	seed := utils.Hash3(g.settings.Seed, area.Pos.X, area.Pos.Y, area.Level)
	return rand.New(rand.NewSource(int64(seed)))
}

// Generate реализует domain.Generator.
func (g *Generator) Generate(w *domain.World, area *domain.Area) {
	rng := g.rngFor(area)
	region := area.Bounds()

	g.fillGround(area, rng)

	rooms := 0
	for rooms < MaxRoomsPerArea && rng.Float64() < g.settings.Density {
		room := g.randomRoom(region, rng)
		g.placeRoom(w, area, room, rng)
		rooms++
	}

	g.log.WithFields(logrus.Fields{
		"area":        area.Pos,
		"world_level": area.Level,
		"rooms":       rooms,
	}).Debug("Area generated")
}

// fillGround - вариации материала: земля выбирается из палитры уровня.
func (g *Generator) fillGround(area *domain.Area, rng *rand.Rand) {
	palette := g.settings.SurfaceGrounds
	if area.Level < 0 {
		palette = g.settings.UndergroundGrounds
	}
	for i := range area.Tiles {
		area.Tiles[i].Ground = palette[rng.Intn(len(palette))]
	}
}

// randomRoom выбирает размер в [RoomMin, RoomMax] и левый верхний угол так,
// чтобы комната целиком лежала в регионе.
func (g *Generator) randomRoom(region domain.Rect, rng *rand.Rand) domain.Rect {
	w := min(randRange(rng, g.settings.RoomMin, g.settings.RoomMax), region.W)
	h := min(randRange(rng, g.settings.RoomMin, g.settings.RoomMax), region.H)
	x := region.X + rng.Intn(region.W-w+1)
	y := region.Y + rng.Intn(region.H-h+1)
	return domain.Rect{X: x, Y: y, W: w, H: h}
}

// placeRoom ставит стены по периметру; внутренность остаётся полом.
// Клетки периметра за пределами зоны молча пропускаются: соседние зоны
// не координируются.
func (g *Generator) placeRoom(w *domain.World, area *domain.Area, room domain.Rect, rng *rand.Rand) {
	perimeter := room.Perimeter()

	doorAt := -1
	if g.settings.Door != "" {
		if sides := doorCandidates(room, perimeter); len(sides) > 0 {
			doorAt = sides[rng.Intn(len(sides))]
		}
	}

	for i, p := range perimeter {
		tile := area.Tile(p)
		if tile == nil || tile.Object != nil || len(tile.Creatures) > 0 {
			continue
		}
		id := g.settings.Wall
		if i == doorAt {
			id = g.settings.Door
		}
		g.place(tile, id)
	}

	interior := room.Inflate(-1)
	if interior.Empty() {
		return
	}

	if g.settings.Torch != "" && rng.Float64() < g.settings.TorchChance {
		if tile := area.Tile(randomIn(interior, rng)); tile != nil && tile.Object == nil {
			g.place(tile, g.settings.Torch)
		}
	}

	if len(g.settings.Creatures) > 0 && rng.Float64() < g.settings.CreatureChance {
		id := g.settings.Creatures[rng.Intn(len(g.settings.Creatures))]
		p := randomIn(interior, rng)
		if tile := area.Tile(p); tile != nil && !tile.BlocksMovement() {
			g.spawn(w, id, p, area.Level)
		}
	}
}

func (g *Generator) place(tile *domain.Tile, id string) {
	obj, err := g.factory.NewObject(id)
	if err != nil {
		g.log.WithError(err).WithField("object", id).Error("Failed to build object")
		return
	}
	tile.Object = obj
}

func (g *Generator) spawn(w *domain.World, id string, p domain.Position, level int) {
	c, err := g.factory.NewCreature(id)
	if err != nil {
		g.log.WithError(err).WithField("creature", id).Error("Failed to build creature")
		return
	}
	if err := w.SpawnCreature(c, p, level); err != nil {
		g.log.WithError(err).WithField("creature", id).Error("Failed to spawn creature")
	}
}

// doorCandidates - индексы периметра, не являющиеся углами.
func doorCandidates(room domain.Rect, perimeter []domain.Position) []int {
	br := room.BottomRight()
	var out []int
	for i, p := range perimeter {
		cornerX := p.X == room.X || p.X == br.X
		cornerY := p.Y == room.Y || p.Y == br.Y
		if cornerX && cornerY {
			continue
		}
		out = append(out, i)
	}
	return out
}

func randomIn(r domain.Rect, rng *rand.Rand) domain.Position {
	return domain.Position{X: r.X + rng.Intn(r.W), Y: r.Y + rng.Intn(r.H)}
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
