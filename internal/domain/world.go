package domain

import "time"

// AreaKey - ключ зоны в мире: позиция в пространстве зон + уровень.
type AreaKey struct {
	X     int
	Y     int
	Level int
}

func (k AreaKey) Pos() Position { return Position{X: k.X, Y: k.Y} }

// Tile - минимальная адресуемая клетка.
type Tile struct {
	Ground    string      // id типа земли из конфига
	Object    *Object     // 0 или 1 объект (стена, факел, дверь)
	Creatures []*Creature // существа; каждое присутствует не более одного раза

	// Light - накопленный свет. Сбрасывается каждый проход рендера,
	// никогда не сохраняется.
	Light Color
}

// Area - квадрат AreaSize x AreaSize тайлов, хранится непрерывно построчно.
type Area struct {
	Pos   Position // позиция в пространстве зон
	Level int
	Tiles []Tile // len = AreaSize*AreaSize, индекс y*AreaSize + x
}

// Generator наполняет только что созданную зону. Вызывается ровно один раз на зону.
type Generator interface {
	Generate(w *World, area *Area)
}

// GeneratorFunc позволяет использовать обычную функцию как Generator.
type GeneratorFunc func(w *World, area *Area)

func (f GeneratorFunc) Generate(w *World, area *Area) { f(w, area) }

// World владеет всеми зонами на протяжении жизни процесса. Вытеснения нет.
// Не потокобезопасен: все вызовы идут из одного игрового цикла.
type World struct {
	areas     map[AreaKey]*Area
	generator Generator

	// nextIndex - счётчик для выдачи EntityID
	nextIndex uint64

	// OnAreaCreated вызывается после генерации новой зоны (метрики, логи).
	OnAreaCreated func(area *Area, took time.Duration)
}
