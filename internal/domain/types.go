package domain

// EntityType - тип сущности, упакованный в EntityID
type EntityType uint8

func (t EntityType) String() string {
	switch t {
	case EntityTypeCreature:
		return "creature"
	case EntityTypeObject:
		return "object"
	case EntityTypeItem:
		return "item"
	default:
		return "unknown"
	}
}
