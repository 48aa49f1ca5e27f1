package config

import "fmt"

// Kind - тег варианта Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value - закрытое размеченное объединение значений конфига.
// Читать поле можно только то, которое соответствует Kind.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	String string
	Bool   bool
	List   []Value

	// Позиция в исходном файле - для сообщений об ошибках.
	Line   int
	Column int
}

// Format возвращает значение в читаемом виде (для логов и `inspect`).
func (v Value) Format() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return fmt.Sprintf("%q", v.String)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindList:
		s := "["
		for i, it := range v.List {
			if i > 0 {
				s += ", "
			}
			s += it.Format()
		}
		return s + "]"
	default:
		return "?"
	}
}
