package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Type + Level + Index)
//
//	[ Type (8) | Level (16) | Index (40) ]
//
// Level - уровень, на котором сущность родилась; дальше она может
// переходить между уровнями, ID не меняется.
type EntityID uint64

// NilEntityID - "нет сущности"
const NilEntityID EntityID = 0

// Конфигурация битов
const (
	bitsIndex = 40
	bitsLevel = 16
	bitsType  = 8

	shiftLevel = bitsIndex
	shiftType  = bitsIndex + bitsLevel

	maskIndex = (1 << bitsIndex) - 1
	maskLevel = (1 << bitsLevel) - 1
	maskType  = (1 << bitsType) - 1
)

// PackEntityID создает ID из компонентов
func PackEntityID(typeID EntityType, levelID int16, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(uint16(levelID)) & maskLevel) << shiftLevel
	id |= (uint64(typeID) & maskType) << shiftType
	return EntityID(id)
}

func (id EntityID) Type() EntityType {
	return EntityType((id >> shiftType) & maskType)
}

func (id EntityID) Level() int16 {
	return int16((id >> shiftLevel) & maskLevel)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// String для логов: [Type:Lvl:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%d:%d]", id.Type(), id.Level(), id.Index())
}
