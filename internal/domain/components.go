package domain

import (
	"sort"

	"github.com/emlai/zenith-sub000/pkg/binio"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// --- КОМПОНЕНТЫ ОБЪЕКТОВ ---

// Component - способность, подключаемая к объекту по имени из конфига.
type Component interface {
	Name() string
	BlocksSight() bool
	BlocksMovement() bool
	Save(w *binio.Writer)
	Load(r *binio.Reader)
}

// Emitter - компонент-источник света.
type Emitter interface {
	Component
	LightRadius() int
	LightColor() Color
}

// Usable - компонент, реагирующий на использование существом.
type Usable interface {
	Component
	Use(c *Creature) bool
}

// Attributes - доступ к атрибутам сущности в конфиге (entity-id уже привязан).
type Attributes interface {
	Int(attr string) (int, error)
	Float(attr string) (float64, error)
	String(attr string) (string, error)
	Bool(attr string) (bool, error)
	Has(attr string) bool
}

// Configurable - компонент, читающий параметры из конфига при создании.
type Configurable interface {
	Configure(attrs Attributes) error
}

// ComponentFactory создаёт пустой компонент.
type ComponentFactory func() Component

// ComponentRegistry - имя -> фабрика.
type ComponentRegistry struct {
	factories map[string]ComponentFactory
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{factories: make(map[string]ComponentFactory)}
}

// DefaultComponents - реестр со встроенными компонентами.
func DefaultComponents() *ComponentRegistry {
	r := NewComponentRegistry()
	r.Register(ComponentWall, func() Component { return &WallComponent{} })
	r.Register(ComponentLight, func() Component { return &LightComponent{} })
	r.Register(ComponentDoor, func() Component { return &DoorComponent{} })
	return r
}

func (r *ComponentRegistry) Register(name string, f ComponentFactory) {
	r.factories[name] = f
}

// Names - зарегистрированные имена по алфавиту.
func (r *ComponentRegistry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Blank создаёт пустой компонент (для загрузки сохранения).
func (r *ComponentRegistry) Blank(name string) (Component, bool) {
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Build создаёт и настраивает компонент. Неизвестное имя - не фатально:
// пишем предупреждение и возвращаем ok=false.
func (r *ComponentRegistry) Build(name string, attrs Attributes) (Component, bool, error) {
	c, ok := r.Blank(name)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "component_registry",
			"name":      name,
		}).Warn("Unknown component name, skipping")
		return nil, false, nil
	}
	if cfg, isCfg := c.(Configurable); isCfg && attrs != nil {
		if err := cfg.Configure(attrs); err != nil {
			return nil, false, oops.With("component", name).Wrap(err)
		}
	}
	return c, true, nil
}

// --- ОБЪЕКТ ---

// Object - неподвижный обитатель тайла (стена, факел, дверь).
type Object struct {
	Type       string      `json:"type"`
	Components []Component `json:"-"`
}

func (o *Object) BlocksSight() bool {
	for _, c := range o.Components {
		if c.BlocksSight() {
			return true
		}
	}
	return false
}

func (o *Object) BlocksMovement() bool {
	for _, c := range o.Components {
		if c.BlocksMovement() {
			return true
		}
	}
	return false
}

// Component ищет компонент по имени.
func (o *Object) Component(name string) Component {
	for _, c := range o.Components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Emitter возвращает первый светящийся компонент.
func (o *Object) Emitter() (Emitter, bool) {
	for _, c := range o.Components {
		if e, ok := c.(Emitter); ok {
			return e, true
		}
	}
	return nil, false
}

// Use передаёт использование всем Usable-компонентам. true, если кто-то отреагировал.
func (o *Object) Use(by *Creature) bool {
	used := false
	for _, c := range o.Components {
		if u, ok := c.(Usable); ok && u.Use(by) {
			used = true
		}
	}
	return used
}

// --- ВСТРОЕННЫЕ КОМПОНЕНТЫ ---

const (
	ComponentWall  = "wall"
	ComponentLight = "light"
	ComponentDoor  = "door"
)

// WallComponent - непрозрачная и непроходимая преграда. Состояния нет.
type WallComponent struct{}

func (*WallComponent) Name() string { return ComponentWall }
func (*WallComponent) BlocksSight() bool { return true }
func (*WallComponent) BlocksMovement() bool { return true }
func (*WallComponent) Save(*binio.Writer) {}
func (*WallComponent) Load(*binio.Reader) {}

// LightComponent - источник света радиуса Radius.
type LightComponent struct {
	Radius int
	Color  Color
}

func (*LightComponent) Name() string { return ComponentLight }
func (*LightComponent) BlocksSight() bool { return false }
func (*LightComponent) BlocksMovement() bool { return false }
func (l *LightComponent) LightRadius() int { return l.Radius }
func (l *LightComponent) LightColor() Color { return l.Color }

// Configure читает "light_radius" и "light_color" из конфига.
func (l *LightComponent) Configure(attrs Attributes) error {
	r, err := attrs.Int("light_radius")
	if err != nil {
		return err
	}
	l.Radius = r
	l.Color = White
	if attrs.Has("light_color") {
		hex, err := attrs.String("light_color")
		if err != nil {
			return err
		}
		c, err := ParseColor(hex)
		if err != nil {
			return oops.Code("CONFIG_TYPE_MISMATCH").With("attribute", "light_color").Wrap(err)
		}
		l.Color = c
	}
	return nil
}

func (l *LightComponent) Save(w *binio.Writer) {
	w.Int32(int32(l.Radius))
	w.Float64(l.Color.R)
	w.Float64(l.Color.G)
	w.Float64(l.Color.B)
}

func (l *LightComponent) Load(r *binio.Reader) {
	l.Radius = int(r.Int32())
	l.Color = Color{R: r.Float64(), G: r.Float64(), B: r.Float64()}
}

// DoorComponent - закрытая дверь ведёт себя как стена.
type DoorComponent struct {
	Open bool
}

func (*DoorComponent) Name() string { return ComponentDoor }
func (d *DoorComponent) BlocksSight() bool { return !d.Open }
func (d *DoorComponent) BlocksMovement() bool { return !d.Open }

// Use открывает/закрывает дверь.
func (d *DoorComponent) Use(*Creature) bool {
	d.Open = !d.Open
	return true
}

func (d *DoorComponent) Configure(attrs Attributes) error {
	if !attrs.Has("open") {
		return nil
	}
	open, err := attrs.Bool("open")
	if err != nil {
		return err
	}
	d.Open = open
	return nil
}

func (d *DoorComponent) Save(w *binio.Writer) { w.Bool(d.Open) }
func (d *DoorComponent) Load(r *binio.Reader) { d.Open = r.Bool() }
