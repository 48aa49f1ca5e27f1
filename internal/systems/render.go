package systems

import (
	"unicode/utf8"

	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/samber/oops"
)

// Canvas - поверхность вывода. Координаты относительно левого верхнего угла региона.
type Canvas interface {
	SetCell(x, y int, ch rune, fg domain.Color)
}

// Glyph - внешний вид сущности.
type Glyph struct {
	Rune  rune
	Color domain.Color
}

// Glyphs - таблица внешнего вида по id из конфига.
type Glyphs struct {
	byID     map[string]Glyph
	fallback Glyph
}

// LoadGlyphs собирает glyph/color всех сущностей, у которых есть glyph.
func LoadGlyphs(cfg *config.Config) (*Glyphs, error) {
	g := &Glyphs{
		byID:     make(map[string]Glyph),
		fallback: Glyph{Rune: '?', Color: domain.White},
	}
	for _, id := range cfg.IDs() {
		e, err := cfg.Lookup(id)
		if err != nil {
			return nil, err
		}
		if !e.Has("glyph") {
			continue
		}
		s, err := e.String("glyph")
		if err != nil {
			return nil, err
		}
		r, _ := utf8.DecodeRuneInString(s)
		if utf8.RuneCountInString(s) != 1 || r == utf8.RuneError {
			return nil, oops.Code("CONFIG_INVALID").With("entity", id).Errorf("%s: glyph must be a single character", id)
		}
		hex, err := e.StringOr("color", "#ffffff")
		if err != nil {
			return nil, err
		}
		c, err := domain.ParseColor(hex)
		if err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("entity", id).Wrapf(err, "%s: color", id)
		}
		g.byID[id] = Glyph{Rune: r, Color: c}
	}
	return g, nil
}

// Set добавляет или заменяет глиф.
func (g *Glyphs) Set(id string, glyph Glyph) { g.byID[id] = glyph }

// Lookup возвращает глиф сущности или '?' для неизвестной.
func (g *Glyphs) Lookup(id string) Glyph {
	if glyph, ok := g.byID[id]; ok {
		return glyph
	}
	return g.fallback
}

// Renderer рисует регион мира на Canvas.
type Renderer struct {
	Glyphs         *Glyphs
	MaxLightRadius int
	// Ambient - минимальная освещённость (день на поверхности, память игрока).
	Ambient domain.Color
}

// Render пересчитывает свет для расширенного региона и рисует каждую клетку:
// существо поверх объекта поверх земли. Зоны, которых ещё нет, создаются.
func (r *Renderer) Render(w *domain.World, region domain.Rect, level int, canvas Canvas) {
	ComputeLight(w, region, level, r.MaxLightRadius)

	origin := region.TopLeft()
	w.ForEachTile(region, level, func(p domain.Position, t *domain.Tile) {
		glyph := r.Glyphs.Lookup(tileAppearance(t))
		light := t.Light.Max(r.Ambient)
		local := p.Sub(origin)
		canvas.SetCell(local.X, local.Y, glyph.Rune, glyph.Color.Mul(light))
	})
}

func tileAppearance(t *domain.Tile) string {
	if n := len(t.Creatures); n > 0 {
		return t.Creatures[n-1].Type
	}
	if t.Object != nil {
		return t.Object.Type
	}
	return t.Ground
}
