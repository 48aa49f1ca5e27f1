package domain

import (
	"sort"
	"time"
)

// NewWorld создаёт пустой мир. gen может быть nil - тогда зоны остаются пустыми.
func NewWorld(gen Generator) *World {
	return &World{
		areas:     make(map[AreaKey]*Area),
		generator: gen,
	}
}

// SetGenerator подменяет генератор (например, после загрузки сохранения).
func (w *World) SetGenerator(gen Generator) {
	w.generator = gen
}

func newArea(pos Position, level int) *Area {
	return &Area{
		Pos:   pos,
		Level: level,
		Tiles: make([]Tile, AreaSize*AreaSize),
	}
}

// GetArea - поиск без создания. Не вызывает генерацию.
func (w *World) GetArea(pos Position, level int) *Area {
	return w.areas[AreaKey{X: pos.X, Y: pos.Y, Level: level}]
}

// GetOrCreateArea возвращает существующую зону или создаёт новую,
// вставляет её под ключом и прогоняет генератор по её границам.
// Повторный вызов с тем же ключом возвращает тот же экземпляр без генерации.
func (w *World) GetOrCreateArea(pos Position, level int) *Area {
	key := AreaKey{X: pos.X, Y: pos.Y, Level: level}
	if a, ok := w.areas[key]; ok {
		return a
	}

	a := newArea(pos, level)
	// Вставляем ДО генерации: генератор может обращаться к тайлам своей зоны через мир.
	w.areas[key] = a

	started := time.Now()
	if w.generator != nil {
		w.generator.Generate(w, a)
	}
	if w.OnAreaCreated != nil {
		w.OnAreaCreated(a, time.Since(started))
	}
	return a
}

// InsertArea кладёт готовую зону (из сохранения) без генерации.
// Существующая зона с тем же ключом заменяется.
func (w *World) InsertArea(a *Area) {
	w.areas[a.Key()] = a
}

// GetTile - поиск тайла без создания зоны.
func (w *World) GetTile(p Position, level int) *Tile {
	a := w.GetArea(GlobalToArea(p), level)
	if a == nil {
		return nil
	}
	return a.TileAt(GlobalToLocal(p))
}

// GetOrCreateTile материализует зону при необходимости.
func (w *World) GetOrCreateTile(p Position, level int) *Tile {
	return w.GetOrCreateArea(GlobalToArea(p), level).TileAt(GlobalToLocal(p))
}

// ForEachTile обходит прямоугольник построчно, создавая зоны по мере надобности.
// Поэтому даже обход "только для чтения" может запустить генерацию.
func (w *World) ForEachTile(region Rect, level int, visit func(p Position, t *Tile)) {
	region.ForEach(func(p Position) {
		visit(p, w.GetOrCreateTile(p, level))
	})
}

// ForEachExistingTile обходит только уже материализованные тайлы региона.
func (w *World) ForEachExistingTile(region Rect, level int, visit func(p Position, t *Tile)) {
	region.ForEach(func(p Position) {
		if t := w.GetTile(p, level); t != nil {
			visit(p, t)
		}
	})
}

// AreaCount - количество материализованных зон.
func (w *World) AreaCount() int {
	return len(w.areas)
}

// Areas возвращает зоны в стабильном порядке: уровень, Y, X.
func (w *World) Areas() []*Area {
	out := make([]*Area, 0, len(w.areas))
	for _, a := range w.areas {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		return a.Pos.X < b.Pos.X
	})
	return out
}

// CreatureCount считает существ во всём мире.
func (w *World) CreatureCount() int {
	n := 0
	for _, a := range w.areas {
		for i := range a.Tiles {
			n += len(a.Tiles[i].Creatures)
		}
	}
	return n
}

// NewEntityID выдаёт новый уникальный в рамках мира идентификатор.
func (w *World) NewEntityID(t EntityType, level int) EntityID {
	w.nextIndex++
	return PackEntityID(t, int16(level), w.nextIndex)
}

// NextIndex/SetNextIndex нужны для сохранения счётчика идентификаторов.
func (w *World) NextIndex() uint64 { return w.nextIndex }

func (w *World) SetNextIndex(v uint64) { w.nextIndex = v }

// --- ЗОНА ---

func (a *Area) Key() AreaKey { return AreaKey{X: a.Pos.X, Y: a.Pos.Y, Level: a.Level} }

// Origin - глобальная позиция локального (0,0).
func (a *Area) Origin() Position { return a.Pos.Scale(AreaSize) }

// Bounds - глобальные границы зоны.
func (a *Area) Bounds() Rect { return NewRect(a.Origin(), AreaSize, AreaSize) }

// TileAt возвращает тайл по локальной позиции в [0, AreaSize).
func (a *Area) TileAt(local Position) *Tile {
	return &a.Tiles[local.Y*AreaSize+local.X]
}

// Tile возвращает тайл по глобальной позиции; nil, если позиция вне зоны.
func (a *Area) Tile(global Position) *Tile {
	if !a.Bounds().Contains(global) {
		return nil
	}
	return a.TileAt(global.Sub(a.Origin()))
}
