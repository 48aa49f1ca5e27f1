package dungeon

import (
	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/samber/oops"
)

// BehaviorResolver находит "мозг" существа по имени из конфига.
// Пустое имя - существо без поведения.
type BehaviorResolver func(name string) (domain.Behavior, error)

// Factory создаёт обитателей тайлов по id из конфига.
type Factory struct {
	cfg        *config.Config
	components *domain.ComponentRegistry
	behaviors  BehaviorResolver

	objects   map[string]ObjectTemplate
	creatures map[string]CreatureTemplate
}

func NewFactory(cfg *config.Config, components *domain.ComponentRegistry, behaviors BehaviorResolver) *Factory {
	return &Factory{
		cfg:        cfg,
		components: components,
		behaviors:  behaviors,
		objects:    make(map[string]ObjectTemplate),
		creatures:  make(map[string]CreatureTemplate),
	}
}

// Components - реестр компонентов (нужен загрузчику сохранений).
func (f *Factory) Components() *domain.ComponentRegistry { return f.components }

// Config - исходные игровые данные.
func (f *Factory) Config() *config.Config { return f.cfg }

func (f *Factory) objectTemplate(id string) (ObjectTemplate, error) {
	if t, ok := f.objects[id]; ok {
		return t, nil
	}
	t, err := LoadObjectTemplate(f.cfg, id)
	if err != nil {
		return ObjectTemplate{}, err
	}
	f.objects[id] = t
	return t, nil
}

func (f *Factory) creatureTemplate(id string) (CreatureTemplate, error) {
	if t, ok := f.creatures[id]; ok {
		return t, nil
	}
	t, err := LoadCreatureTemplate(f.cfg, id)
	if err != nil {
		return CreatureTemplate{}, err
	}
	f.creatures[id] = t
	return t, nil
}

// NewObject собирает объект с компонентами. Неизвестные компоненты пропускаются
// (реестр пишет предупреждение).
func (f *Factory) NewObject(id string) (*domain.Object, error) {
	t, err := f.objectTemplate(id)
	if err != nil {
		return nil, err
	}
	obj := &domain.Object{Type: id}
	for _, name := range t.Components {
		c, ok, err := f.components.Build(name, t.attrs)
		if err != nil {
			return nil, oops.With("object", id).Wrap(err)
		}
		if ok {
			obj.Components = append(obj.Components, c)
		}
	}
	return obj, nil
}

// NewCreature создаёт существо со стартовыми предметами. ID выдаёт мир при спавне.
func (f *Factory) NewCreature(id string) (*domain.Creature, error) {
	t, err := f.creatureTemplate(id)
	if err != nil {
		return nil, err
	}
	c := &domain.Creature{
		Type:  id,
		Name:  t.Name,
		HP:    t.HP,
		MaxHP: t.HP,
	}
	for k, v := range t.Attributes {
		c.SetAttribute(k, v)
	}
	for _, it := range t.Items {
		if err := c.GiveItem(it.Spawn()); err != nil {
			return nil, err
		}
	}
	if err := f.AttachBehavior(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AttachBehavior назначает поведение по типу существа. Используется и после
// загрузки сохранения: поведение не сериализуется.
func (f *Factory) AttachBehavior(c *domain.Creature) error {
	if f.behaviors == nil {
		return nil
	}
	t, err := f.creatureTemplate(c.Type)
	if err != nil {
		return err
	}
	if t.Behavior == "" {
		c.Behavior = nil
		return nil
	}
	b, err := f.behaviors(t.Behavior)
	if err != nil {
		return oops.With("creature", c.Type, "behavior", t.Behavior).Wrap(err)
	}
	c.Behavior = b
	return nil
}
