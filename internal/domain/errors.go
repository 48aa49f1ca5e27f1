package domain

import "errors"

// Нарушения инвариантов владения. Проверяются всегда, не только в отладке.
var (
	ErrNotOnTile       = errors.New("creature is not on the tile")
	ErrAlreadyOnTile   = errors.New("creature is already on the tile")
	ErrTileOccupied    = errors.New("tile already holds an object")
	ErrItemNotOwned    = errors.New("item is not owned by the creature")
	ErrItemAlreadyHeld = errors.New("item is already held by the creature")
	ErrSlotEmpty       = errors.New("equipment slot is empty")
	ErrUnknownBehavior = errors.New("unknown behavior")
)
