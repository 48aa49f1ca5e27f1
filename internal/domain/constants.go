package domain

// AreaSize - сторона зоны в тайлах. Зона - единица ленивой генерации.
const AreaSize = 64

// Типы сущностей (старший байт EntityID)
const (
	EntityTypeUnknown EntityType = iota
	EntityTypeCreature
	EntityTypeObject
	EntityTypeItem
)

// Уровни мира. Уровень - открытая целочисленная ось, это лишь именованные значения.
const (
	LevelSurface     = 0
	LevelUnderground = -1
)

// Слоты экипировки
const (
	SlotWeapon = "weapon"
	SlotArmor  = "armor"
)

// Стандартные атрибуты существ
const (
	AttrStrength = "strength"
	AttrSpeed    = "speed"
	AttrSight    = "sight"
)
