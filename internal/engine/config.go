package engine

import (
	"time"

	"github.com/emlai/zenith-sub000/pkg/dungeon"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все зоны мира.
	Seed     int64
	SeedMode dungeon.SeedMode

	// Level - уровень, на котором появляется игрок.
	Level int

	// Размер видимой области вокруг игрока.
	ViewWidth  int
	ViewHeight int

	// MaxLightRadius - насколько расширять регион при пересчёте света.
	MaxLightRadius int
	// SurfaceAmbient - рассеянный свет на поверхности (0..1). Под землёй темно.
	SurfaceAmbient float64

	TickInterval time.Duration
	SaveDir      string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		SeedMode:       dungeon.SeedPerArea,
		Level:          0,
		ViewWidth:      79,
		ViewHeight:     23,
		MaxLightRadius: 12,
		SurfaceAmbient: 0.35,
		TickInterval:   500 * time.Millisecond,
		SaveDir:        "saves",
	}
}
