package domain

import (
	"sort"

	"github.com/samber/oops"
)

// --- СУЩЕСТВО ---

// Behavior - внешний "мозг" существа. Вызывается за каждое накопленное действие
// и возвращает позицию существа после него.
// Правила ИИ и боя живут вне пространственного индекса.
type Behavior interface {
	Act(w *World, c *Creature, pos Position, level int) Position
}

// BehaviorFunc - функция как Behavior.
type BehaviorFunc func(w *World, c *Creature, pos Position, level int) Position

func (f BehaviorFunc) Act(w *World, c *Creature, pos Position, level int) Position {
	return f(w, c, pos, level)
}

// Creature принадлежит ровно одному тайлу.
type Creature struct {
	ID   EntityID `json:"id"`
	Type string   `json:"type"` // id в конфиге ("goblin")
	Name string   `json:"name"`

	HP     int     `json:"hp"`
	MaxHP  int     `json:"maxHp"`
	Energy float64 `json:"energy"` // запас очков действия; дробный

	Attributes map[string]int   `json:"attributes,omitempty"`
	Inventory  []*Item          `json:"inventory,omitempty"`
	Equipment  map[string]*Item `json:"equipment,omitempty"`

	// Behavior не сохраняется: после загрузки назначается заново по Type.
	Behavior Behavior `json:"-"`
}

func (c *Creature) IsDead() bool { return c.HP <= 0 }

// Damage уменьшает HP, не уходя ниже нуля.
func (c *Creature) Damage(n int) {
	c.HP = max(c.HP-n, 0)
}

// Attribute возвращает атрибут или 0.
func (c *Creature) Attribute(name string) int {
	return c.Attributes[name]
}

func (c *Creature) SetAttribute(name string, v int) {
	if c.Attributes == nil {
		c.Attributes = make(map[string]int)
	}
	c.Attributes[name] = v
}

// AttributeNames - имена атрибутов по алфавиту (стабильный порядок для сохранения).
func (c *Creature) AttributeNames() []string {
	names := make([]string, 0, len(c.Attributes))
	for k := range c.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// EquipmentSlots - занятые слоты по алфавиту.
func (c *Creature) EquipmentSlots() []string {
	slots := make([]string, 0, len(c.Equipment))
	for k := range c.Equipment {
		slots = append(slots, k)
	}
	sort.Strings(slots)
	return slots
}

// --- ИНВЕНТАРЬ ---

func (c *Creature) holds(item *Item) bool {
	for _, it := range c.Inventory {
		if it == item {
			return true
		}
	}
	for _, it := range c.Equipment {
		if it == item {
			return true
		}
	}
	return false
}

// GiveItem кладёт предмет в инвентарь. Один и тот же предмет дважды - ошибка.
func (c *Creature) GiveItem(item *Item) error {
	if c.holds(item) {
		return oops.With("creature", c.ID.String(), "item", item.Type).Wrap(ErrItemAlreadyHeld)
	}
	c.Inventory = append(c.Inventory, item)
	return nil
}

// TakeItem вынимает предмет из инвентаря и возвращает его.
func (c *Creature) TakeItem(item *Item) (*Item, error) {
	for i, it := range c.Inventory {
		if it == item {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			if len(c.Inventory) == 0 {
				c.Inventory = nil
			}
			return it, nil
		}
	}
	return nil, oops.With("creature", c.ID.String(), "item", item.Type).Wrap(ErrItemNotOwned)
}

// Equip переносит предмет из инвентаря в слот. Занятый слот сначала
// освобождается: старый предмет возвращается в инвентарь.
func (c *Creature) Equip(slot string, item *Item) error {
	if _, err := c.TakeItem(item); err != nil {
		return err
	}
	if old, ok := c.Equipment[slot]; ok {
		c.Inventory = append(c.Inventory, old)
	}
	if c.Equipment == nil {
		c.Equipment = make(map[string]*Item)
	}
	c.Equipment[slot] = item
	return nil
}

// Unequip снимает предмет из слота обратно в инвентарь.
func (c *Creature) Unequip(slot string) (*Item, error) {
	item, ok := c.Equipment[slot]
	if !ok {
		return nil, oops.With("creature", c.ID.String(), "slot", slot).Wrap(ErrSlotEmpty)
	}
	delete(c.Equipment, slot)
	if len(c.Equipment) == 0 {
		c.Equipment = nil
	}
	c.Inventory = append(c.Inventory, item)
	return item, nil
}

// TransferItem: take у одного владельца, give другому. При неудаче предмет
// возвращается исходному владельцу.
func TransferItem(from, to *Creature, item *Item) error {
	it, err := from.TakeItem(item)
	if err != nil {
		return err
	}
	if err := to.GiveItem(it); err != nil {
		from.Inventory = append(from.Inventory, it)
		return err
	}
	return nil
}

// --- ПРЕДМЕТ ---

// Item принадлежит ровно одному инвентарю или слоту экипировки.
type Item struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Durability float64 `json:"durability"`
}
