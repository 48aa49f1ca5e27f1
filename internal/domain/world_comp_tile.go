package domain

import (
	"slices"

	"github.com/samber/oops"
)

// BlocksSight - тайл непрозрачен, если его объект непрозрачен.
func (t *Tile) BlocksSight() bool {
	return t.Object != nil && t.Object.BlocksSight()
}

// BlocksMovement - в тайл нельзя войти.
func (t *Tile) BlocksMovement() bool {
	return t.Object != nil && t.Object.BlocksMovement()
}

// HasCreature проверяет присутствие по идентичности указателя.
func (t *Tile) HasCreature(c *Creature) bool {
	return t.creatureIndex(c) >= 0
}

func (t *Tile) creatureIndex(c *Creature) int {
	for i, other := range t.Creatures {
		if other == c {
			return i
		}
	}
	return -1
}

// GiveCreature вставляет существо. Дубликат - ошибка.
func (t *Tile) GiveCreature(c *Creature) error {
	if t.HasCreature(c) {
		return oops.With("creature", c.ID.String()).Wrap(ErrAlreadyOnTile)
	}
	t.Creatures = append(t.Creatures, c)
	return nil
}

// TakeCreature удаляет существо и возвращает его владельцу-вызывающему.
func (t *Tile) TakeCreature(c *Creature) (*Creature, error) {
	for i, other := range t.Creatures {
		if other == c {
			// Порядок существ на тайле сохраняем: он виден при рендере и в сохранении.
			t.Creatures = append(t.Creatures[:i], t.Creatures[i+1:]...)
			if len(t.Creatures) == 0 {
				t.Creatures = nil
			}
			return c, nil
		}
	}
	return nil, oops.With("creature", c.ID.String()).Wrap(ErrNotOnTile)
}

// SetObject ставит объект на пустой тайл.
func (t *Tile) SetObject(o *Object) error {
	if t.Object != nil {
		return oops.With("object", t.Object.Type).Wrap(ErrTileOccupied)
	}
	t.Object = o
	return nil
}

// TakeObject снимает объект с тайла (может вернуть nil).
func (t *Tile) TakeObject() *Object {
	o := t.Object
	t.Object = nil
	return o
}

// --- ПЕРЕМЕЩЕНИЯ В МИРЕ ---

// SpawnCreature выдаёт существу ID (если его нет) и кладёт на тайл.
func (w *World) SpawnCreature(c *Creature, p Position, level int) error {
	if c.ID == NilEntityID {
		c.ID = w.NewEntityID(EntityTypeCreature, level)
	}
	return w.GetOrCreateTile(p, level).GiveCreature(c)
}

// RemoveCreature забирает существо из мира (смерть, переход на другой уровень).
func (w *World) RemoveCreature(c *Creature, p Position, level int) error {
	t := w.GetTile(p, level)
	if t == nil {
		return oops.With("creature", c.ID.String(), "pos", p).Wrap(ErrNotOnTile)
	}
	_, err := t.TakeCreature(c)
	return err
}

// MoveCreature - атомарный перенос: take с исходного тайла, give на целевой.
// Если give не удался, существо возвращается на исходный тайл.
func (w *World) MoveCreature(c *Creature, from, to Position, level int) error {
	return w.MoveCreatureBetweenLevels(c, from, level, to, level)
}

// MoveCreatureBetweenLevels - то же, но целевой тайл может быть на другом уровне.
func (w *World) MoveCreatureBetweenLevels(c *Creature, from Position, fromLevel int, to Position, toLevel int) error {
	src := w.GetTile(from, fromLevel)
	if src == nil {
		return oops.With("creature", c.ID.String(), "pos", from).Wrap(ErrNotOnTile)
	}
	at := src.creatureIndex(c)
	if _, err := src.TakeCreature(c); err != nil {
		return err
	}
	dst := w.GetOrCreateTile(to, toLevel)
	if err := dst.GiveCreature(c); err != nil {
		// Возвращаем на прежнее место в стопке.
		src.Creatures = slices.Insert(src.Creatures, at, c)
		return err
	}
	return nil
}
