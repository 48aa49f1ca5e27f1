package config

import (
	"github.com/samber/oops"
)

func (e *Entity) Has(attr string) bool {
	_, ok := e.Attrs[attr]
	return ok
}

// Value - сырое значение атрибута.
func (e *Entity) Value(attr string) (Value, error) {
	v, ok := e.Attrs[attr]
	if !ok {
		return Value{}, oops.Code("CONFIG_MISSING_KEY").
			With("file", e.file, "entity", e.ID, "attribute", attr).
			Wrapf(ErrMissingKey, "%s:%d:%d: %q has no attribute %q", e.file, e.line, e.column, e.ID, attr)
	}
	return v, nil
}

func (e *Entity) mismatch(attr string, v Value, want Kind) error {
	return oops.Code("CONFIG_TYPE_MISMATCH").
		With("file", e.file, "entity", e.ID, "attribute", attr).
		Wrapf(ErrTypeMismatch, "%s:%d:%d: %s.%s is %s, want %s", e.file, v.Line, v.Column, e.ID, attr, v.Kind, want)
}

func (e *Entity) Int(attr string) (int, error) {
	v, err := e.Value(attr)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindInt:
		return int(v.Int), nil
	case KindNull, KindFloat, KindString, KindBool, KindList:
		return 0, e.mismatch(attr, v, KindInt)
	}
	return 0, e.mismatch(attr, v, KindInt)
}

// Float принимает и целые: "radius: 6" годится там, где ждут дробное.
func (e *Entity) Float(attr string) (float64, error) {
	v, err := e.Value(attr)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindFloat:
		return v.Float, nil
	case KindInt:
		return float64(v.Int), nil
	case KindNull, KindString, KindBool, KindList:
		return 0, e.mismatch(attr, v, KindFloat)
	}
	return 0, e.mismatch(attr, v, KindFloat)
}

func (e *Entity) String(attr string) (string, error) {
	v, err := e.Value(attr)
	if err != nil {
		return "", err
	}
	switch v.Kind {
	case KindString:
		return v.String, nil
	case KindNull, KindInt, KindFloat, KindBool, KindList:
		return "", e.mismatch(attr, v, KindString)
	}
	return "", e.mismatch(attr, v, KindString)
}

func (e *Entity) Bool(attr string) (bool, error) {
	v, err := e.Value(attr)
	if err != nil {
		return false, err
	}
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindNull, KindInt, KindFloat, KindString, KindList:
		return false, e.mismatch(attr, v, KindBool)
	}
	return false, e.mismatch(attr, v, KindBool)
}

// Strings - список строк. Одиночная строка трактуется как список из одного элемента.
func (e *Entity) Strings(attr string) ([]string, error) {
	v, err := e.Value(attr)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case KindString:
		return []string{v.String}, nil
	case KindList:
		out := make([]string, 0, len(v.List))
		for _, it := range v.List {
			if it.Kind != KindString {
				return nil, e.mismatch(attr, it, KindString)
			}
			out = append(out, it.String)
		}
		return out, nil
	case KindNull, KindInt, KindFloat, KindBool:
		return nil, e.mismatch(attr, v, KindList)
	}
	return nil, e.mismatch(attr, v, KindList)
}

// IntOr / FloatOr / StringOr - значение по умолчанию, если атрибута нет.
// Неверный тип всё равно ошибка.
func (e *Entity) IntOr(attr string, def int) (int, error) {
	if !e.Has(attr) {
		return def, nil
	}
	return e.Int(attr)
}

func (e *Entity) FloatOr(attr string, def float64) (float64, error) {
	if !e.Has(attr) {
		return def, nil
	}
	return e.Float(attr)
}

func (e *Entity) StringOr(attr string, def string) (string, error) {
	if !e.Has(attr) {
		return def, nil
	}
	return e.String(attr)
}
