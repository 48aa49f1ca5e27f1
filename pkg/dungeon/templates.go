package dungeon

import (
	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/samber/oops"
)

// Атрибуты существ, которые копируются из конфига в Creature.Attributes.
var creatureAttributes = []string{domain.AttrStrength, domain.AttrSpeed, domain.AttrSight}

// ObjectTemplate - разобранное описание объекта из конфига.
type ObjectTemplate struct {
	ID         string
	Components []string
	attrs      *config.Entity
}

// CreatureTemplate - разобранное описание существа.
type CreatureTemplate struct {
	ID         string
	Name       string
	HP         int
	Attributes map[string]int
	Behavior   string
	Items      []ItemTemplate
}

// ItemTemplate - описание предмета.
type ItemTemplate struct {
	ID         string
	Count      int
	Durability float64
}

// LoadObjectTemplate читает объект по id.
func LoadObjectTemplate(cfg *config.Config, id string) (ObjectTemplate, error) {
	e, err := cfg.Lookup(id)
	if err != nil {
		return ObjectTemplate{}, err
	}
	t := ObjectTemplate{ID: id, attrs: e}
	if e.Has("components") {
		if t.Components, err = e.Strings("components"); err != nil {
			return ObjectTemplate{}, err
		}
	}
	return t, nil
}

// LoadItemTemplate читает предмет по id. count по умолчанию 1, durability - 1.0.
func LoadItemTemplate(cfg *config.Config, id string) (ItemTemplate, error) {
	e, err := cfg.Lookup(id)
	if err != nil {
		return ItemTemplate{}, err
	}
	t := ItemTemplate{ID: id}
	if t.Count, err = e.IntOr("count", 1); err != nil {
		return ItemTemplate{}, err
	}
	if t.Durability, err = e.FloatOr("durability", 1.0); err != nil {
		return ItemTemplate{}, err
	}
	return t, nil
}

// LoadCreatureTemplate читает существо по id вместе с его стартовыми предметами.
func LoadCreatureTemplate(cfg *config.Config, id string) (CreatureTemplate, error) {
	e, err := cfg.Lookup(id)
	if err != nil {
		return CreatureTemplate{}, err
	}
	t := CreatureTemplate{ID: id, Attributes: map[string]int{}}
	if t.Name, err = e.StringOr("name", id); err != nil {
		return CreatureTemplate{}, err
	}
	if t.HP, err = e.Int("hp"); err != nil {
		return CreatureTemplate{}, err
	}
	if t.HP <= 0 {
		return CreatureTemplate{}, oops.Code("CONFIG_INVALID").
			With("entity", id).
			Errorf("%s: hp must be positive, got %d", id, t.HP)
	}
	if t.Behavior, err = e.StringOr("behavior", ""); err != nil {
		return CreatureTemplate{}, err
	}
	for _, attr := range creatureAttributes {
		if !e.Has(attr) {
			continue
		}
		v, err := e.Int(attr)
		if err != nil {
			return CreatureTemplate{}, err
		}
		t.Attributes[attr] = v
	}
	if e.Has("items") {
		ids, err := e.Strings("items")
		if err != nil {
			return CreatureTemplate{}, err
		}
		for _, itemID := range ids {
			it, err := LoadItemTemplate(cfg, itemID)
			if err != nil {
				return CreatureTemplate{}, oops.With("creature", id).Wrap(err)
			}
			t.Items = append(t.Items, it)
		}
	}
	return t, nil
}

// Spawn создаёт предмет по шаблону.
func (t ItemTemplate) Spawn() *domain.Item {
	return &domain.Item{Type: t.ID, Count: t.Count, Durability: t.Durability}
}
