package storage

import (
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/binio"
)

// Тело сохранения:
//
//	world    = int32 count, area*
//	area     = int32 x, int32 y, int32 level, tile[AreaSize*AreaSize] (построчно)
//	tile     = string ground, bool hasObject, [object], int32 count, creature*
//	object   = string type, int32 count, (string name, payload)*
//	creature = uint64 id, string name, string type, int32 hp, int32 maxHp,
//	           int32 count, (string key, int32 value)*, float64 energy,
//	           int32 count, item*, int32 count, (string slot, item)*
//	item     = string type, int32 count, float64 durability
//
// Свет тайла не сохраняется: он пересчитывается перед каждым рендером.

// EncodeWorld пишет все зоны мира в стабильном порядке (уровень, Y, X).
func EncodeWorld(w *binio.Writer, world *domain.World) {
	binio.WriteSlice(w, world.Areas(), encodeArea)
}

func encodeArea(w *binio.Writer, a *domain.Area) {
	w.Int32(int32(a.Pos.X))
	w.Int32(int32(a.Pos.Y))
	w.Int32(int32(a.Level))
	for i := range a.Tiles {
		encodeTile(w, &a.Tiles[i])
	}
}

func encodeTile(w *binio.Writer, t *domain.Tile) {
	w.String(t.Ground)
	w.Bool(t.Object != nil)
	if t.Object != nil {
		encodeObject(w, t.Object)
	}
	binio.WriteSlice(w, t.Creatures, encodeCreature)
}

func encodeObject(w *binio.Writer, o *domain.Object) {
	w.String(o.Type)
	binio.WriteSlice(w, o.Components, func(w *binio.Writer, c domain.Component) {
		w.String(c.Name())
		c.Save(w)
	})
}

func encodeCreature(w *binio.Writer, c *domain.Creature) {
	w.Uint64(uint64(c.ID))
	w.String(c.Name)
	w.String(c.Type)
	w.Int32(int32(c.HP))
	w.Int32(int32(c.MaxHP))
	binio.WriteSlice(w, c.AttributeNames(), func(w *binio.Writer, key string) {
		w.String(key)
		w.Int32(int32(c.Attributes[key]))
	})
	w.Float64(c.Energy)
	binio.WriteSlice(w, c.Inventory, encodeItem)
	binio.WriteSlice(w, c.EquipmentSlots(), func(w *binio.Writer, slot string) {
		w.String(slot)
		encodeItem(w, c.Equipment[slot])
	})
}

func encodeItem(w *binio.Writer, it *domain.Item) {
	w.String(it.Type)
	w.Int32(int32(it.Count))
	w.Float64(it.Durability)
}

// Decoder читает тело сохранения. Компоненты объектов восстанавливаются
// через реестр: payload без известного компонента пропустить невозможно.
type Decoder struct {
	r          *binio.Reader
	components *domain.ComponentRegistry
}

func NewDecoder(r *binio.Reader, components *domain.ComponentRegistry) *Decoder {
	return &Decoder{r: r, components: components}
}

// DecodeWorld добавляет прочитанные зоны в world. Повтор ключа зоны - порча файла.
// Ошибку смотреть в Reader.Err().
func (d *Decoder) DecodeWorld(world *domain.World) {
	areas := binio.ReadSlice(d.r, d.area)
	for _, a := range areas {
		if a == nil {
			return
		}
		if world.GetArea(a.Pos, a.Level) != nil {
			d.r.Corrupt("duplicate area %v level %d", a.Pos, a.Level)
			return
		}
		world.InsertArea(a)
	}
}

func (d *Decoder) area(r *binio.Reader) *domain.Area {
	a := &domain.Area{
		Pos:   domain.Position{X: int(r.Int32()), Y: int(r.Int32())},
		Level: int(r.Int32()),
		Tiles: make([]domain.Tile, domain.AreaSize*domain.AreaSize),
	}
	for i := range a.Tiles {
		d.tile(&a.Tiles[i])
		if r.Err() != nil {
			return nil
		}
	}
	return a
}

func (d *Decoder) tile(t *domain.Tile) {
	t.Ground = d.r.String()
	if d.r.Bool() {
		t.Object = d.object(d.r)
	}
	t.Creatures = binio.ReadSlice(d.r, d.creature)
}

func (d *Decoder) object(r *binio.Reader) *domain.Object {
	o := &domain.Object{Type: r.String()}
	o.Components = binio.ReadSlice(r, func(r *binio.Reader) domain.Component {
		name := r.String()
		if r.Err() != nil {
			return nil
		}
		c, ok := d.components.Blank(name)
		if !ok {
			r.Corrupt("unknown component %q on object %q", name, o.Type)
			return nil
		}
		c.Load(r)
		return c
	})
	return o
}

func (d *Decoder) creature(r *binio.Reader) *domain.Creature {
	c := &domain.Creature{
		ID:    domain.EntityID(r.Uint64()),
		Name:  r.String(),
		Type:  r.String(),
		HP:    int(r.Int32()),
		MaxHP: int(r.Int32()),
	}
	binio.ReadSlice(r, func(r *binio.Reader) struct{} {
		key, v := r.String(), r.Int32()
		if r.Err() == nil {
			c.SetAttribute(key, int(v))
		}
		return struct{}{}
	})
	c.Energy = r.Float64()
	c.Inventory = binio.ReadSlice(r, decodeItem)
	binio.ReadSlice(r, func(r *binio.Reader) struct{} {
		slot, it := r.String(), decodeItem(r)
		if r.Err() == nil {
			if c.Equipment == nil {
				c.Equipment = make(map[string]*domain.Item)
			}
			c.Equipment[slot] = it
		}
		return struct{}{}
	})
	return c
}

func decodeItem(r *binio.Reader) *domain.Item {
	return &domain.Item{
		Type:       r.String(),
		Count:      int(r.Int32()),
		Durability: r.Float64(),
	}
}
