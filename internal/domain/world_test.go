package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGenerator считает вызовы и ставит маркер в (0,0) каждой зоны.
type countingGenerator struct {
	calls map[AreaKey]int
}

func (g *countingGenerator) Generate(_ *World, a *Area) {
	if g.calls == nil {
		g.calls = map[AreaKey]int{}
	}
	g.calls[a.Key()]++
	a.TileAt(Position{}).Ground = "generated"
}

func TestWorld_GetOrCreateArea_Idempotent(t *testing.T) {
	gen := &countingGenerator{}
	w := NewWorld(gen)

	a1 := w.GetOrCreateArea(Position{X: -1, Y: 2}, LevelUnderground)
	a2 := w.GetOrCreateArea(Position{X: -1, Y: 2}, LevelUnderground)

	assert.Same(t, a1, a2)
	assert.Equal(t, 1, gen.calls[AreaKey{X: -1, Y: 2, Level: LevelUnderground}])
	assert.Equal(t, 1, w.AreaCount())

	// другой уровень - другая зона
	a3 := w.GetOrCreateArea(Position{X: -1, Y: 2}, LevelSurface)
	assert.NotSame(t, a1, a3)
	assert.Equal(t, 2, w.AreaCount())
}

func TestWorld_GetArea_DoesNotCreate(t *testing.T) {
	gen := &countingGenerator{}
	w := NewWorld(gen)

	assert.Nil(t, w.GetArea(Position{}, 0))
	assert.Nil(t, w.GetTile(Position{X: 5, Y: 5}, 0))
	assert.Equal(t, 0, w.AreaCount())
	assert.Empty(t, gen.calls)
}

func TestWorld_GetOrCreateTile_NegativeCoords(t *testing.T) {
	w := NewWorld(&countingGenerator{})

	tile := w.GetOrCreateTile(Position{X: -1, Y: -1}, 0)
	require.NotNil(t, tile)

	area := w.GetArea(Position{X: -1, Y: -1}, 0)
	require.NotNil(t, area, "global -1 must land in area -1, not 0")
	assert.Same(t, area.TileAt(Position{X: AreaSize - 1, Y: AreaSize - 1}), tile)
	assert.Nil(t, w.GetArea(Position{}, 0))

	assert.Same(t, tile, w.GetTile(Position{X: -1, Y: -1}, 0))
	assert.Same(t, tile, area.Tile(Position{X: -1, Y: -1}))
	assert.Nil(t, area.Tile(Position{X: 0, Y: 0}))
}

func TestWorld_ForEachTile_CrossesAreas(t *testing.T) {
	gen := &countingGenerator{}
	w := NewWorld(gen)

	region := Rect{X: -2, Y: -2, W: 4, H: 4}
	var visited []Position
	w.ForEachTile(region, 0, func(p Position, tile *Tile) {
		require.NotNil(t, tile)
		visited = append(visited, p)
	})

	assert.Len(t, visited, 16)
	assert.Equal(t, Position{X: -2, Y: -2}, visited[0])
	assert.Equal(t, Position{X: -1, Y: -2}, visited[1], "row-major order")
	assert.Equal(t, 4, w.AreaCount(), "region straddles four areas")
	for _, n := range gen.calls {
		assert.Equal(t, 1, n)
	}
}

func TestWorld_OnAreaCreatedHook(t *testing.T) {
	w := NewWorld(nil)
	var created []AreaKey
	w.OnAreaCreated = func(a *Area, _ time.Duration) { created = append(created, a.Key()) }

	w.GetOrCreateTile(Position{X: 100, Y: 0}, 3)
	w.GetOrCreateTile(Position{X: 101, Y: 0}, 3)

	assert.Equal(t, []AreaKey{{X: 1, Y: 0, Level: 3}}, created)
}

func TestWorld_AreasStableOrder(t *testing.T) {
	w := NewWorld(nil)
	w.GetOrCreateArea(Position{X: 1, Y: 0}, 0)
	w.GetOrCreateArea(Position{X: 0, Y: 1}, 0)
	w.GetOrCreateArea(Position{X: 5, Y: 5}, -1)
	w.GetOrCreateArea(Position{X: 0, Y: 0}, 0)

	var keys []AreaKey
	for _, a := range w.Areas() {
		keys = append(keys, a.Key())
	}
	assert.Equal(t, []AreaKey{
		{X: 5, Y: 5, Level: -1},
		{X: 0, Y: 0, Level: 0},
		{X: 1, Y: 0, Level: 0},
		{X: 0, Y: 1, Level: 0},
	}, keys)
}

func TestWorld_MoveCreature(t *testing.T) {
	w := NewWorld(nil)
	a := Position{X: -1, Y: 0}
	b := Position{X: 0, Y: 0} // соседняя зона

	goblin := &Creature{Type: "goblin", HP: 5}
	other := &Creature{Type: "rat", HP: 1}
	require.NoError(t, w.SpawnCreature(goblin, a, 0))
	require.NoError(t, w.SpawnCreature(other, b, 0))
	assert.NotEqual(t, NilEntityID, goblin.ID)
	total := w.CreatureCount()

	require.NoError(t, w.MoveCreature(goblin, a, b, 0))

	assert.False(t, w.GetTile(a, 0).HasCreature(goblin))
	n := 0
	for _, c := range w.GetTile(b, 0).Creatures {
		if c == goblin {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, total, w.CreatureCount())
}

func TestWorld_MoveCreature_NotOnSource(t *testing.T) {
	w := NewWorld(nil)
	c := &Creature{HP: 1}
	require.NoError(t, w.SpawnCreature(c, Position{X: 3, Y: 3}, 0))

	err := w.MoveCreature(c, Position{X: 4, Y: 4}, Position{X: 5, Y: 5}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotOnTile))
	assert.True(t, w.GetTile(Position{X: 3, Y: 3}, 0).HasCreature(c))
	assert.Equal(t, 1, w.CreatureCount())

	// источник ещё не материализован
	err = w.MoveCreature(c, Position{X: 500, Y: 500}, Position{X: 3, Y: 3}, 0)
	assert.True(t, errors.Is(err, ErrNotOnTile))
}

func TestWorld_MoveCreatureBetweenLevels(t *testing.T) {
	w := NewWorld(nil)
	c := &Creature{HP: 1}
	p := Position{X: 10, Y: 10}
	require.NoError(t, w.SpawnCreature(c, p, LevelSurface))

	require.NoError(t, w.MoveCreatureBetweenLevels(c, p, LevelSurface, p, LevelUnderground))
	assert.False(t, w.GetTile(p, LevelSurface).HasCreature(c))
	assert.True(t, w.GetTile(p, LevelUnderground).HasCreature(c))
}

func TestWorld_MoveCreature_RollbackKeepsStackOrder(t *testing.T) {
	w := NewWorld(nil)
	from, to := Position{X: 1, Y: 1}, Position{X: 2, Y: 1}
	c1, c, c2 := &Creature{Name: "1"}, &Creature{Name: "moving"}, &Creature{Name: "2"}
	for _, x := range []*Creature{c1, c, c2} {
		require.NoError(t, w.GetOrCreateTile(from, 0).GiveCreature(x))
	}
	// Целевой тайл уже держит то же существо: give откажет.
	require.NoError(t, w.GetOrCreateTile(to, 0).GiveCreature(c))

	err := w.MoveCreature(c, from, to, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyOnTile))
	assert.Equal(t, []*Creature{c1, c, c2}, w.GetTile(from, 0).Creatures)
}

func TestTile_GiveCreature_RejectsDuplicate(t *testing.T) {
	var tile Tile
	c := &Creature{}
	require.NoError(t, tile.GiveCreature(c))
	err := tile.GiveCreature(c)
	assert.True(t, errors.Is(err, ErrAlreadyOnTile))
	assert.Len(t, tile.Creatures, 1)
}

func TestTile_TakeCreature_KeepsOrder(t *testing.T) {
	var tile Tile
	c1, c2, c3 := &Creature{Name: "1"}, &Creature{Name: "2"}, &Creature{Name: "3"}
	for _, c := range []*Creature{c1, c2, c3} {
		require.NoError(t, tile.GiveCreature(c))
	}

	got, err := tile.TakeCreature(c2)
	require.NoError(t, err)
	assert.Same(t, c2, got)
	assert.Equal(t, []*Creature{c1, c3}, tile.Creatures)

	_, err = tile.TakeCreature(c2)
	assert.True(t, errors.Is(err, ErrNotOnTile))
}

func TestTile_Objects(t *testing.T) {
	var tile Tile
	wall := &Object{Type: "wall", Components: []Component{&WallComponent{}}}
	require.NoError(t, tile.SetObject(wall))
	assert.True(t, tile.BlocksSight())
	assert.True(t, tile.BlocksMovement())

	err := tile.SetObject(&Object{Type: "torch"})
	assert.True(t, errors.Is(err, ErrTileOccupied))

	assert.Same(t, wall, tile.TakeObject())
	assert.False(t, tile.BlocksSight())
	assert.Nil(t, tile.TakeObject())
}

func TestEntityID_Pack(t *testing.T) {
	id := PackEntityID(EntityTypeCreature, -3, 12345)
	assert.Equal(t, EntityTypeCreature, id.Type())
	assert.Equal(t, int16(-3), id.Level())
	assert.Equal(t, uint64(12345), id.Index())
	assert.Equal(t, "[creature:-3:12345]", id.String())

	w := NewWorld(nil)
	first := w.NewEntityID(EntityTypeCreature, 0)
	second := w.NewEntityID(EntityTypeCreature, 0)
	assert.NotEqual(t, first, second)
}
