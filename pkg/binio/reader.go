package binio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/samber/oops"
)

// ErrCorruptSave - данные обрываются или не соответствуют формату.
// Исходный формат не проверяет вход вообще; мы превращаем любое
// недочитывание в эту ошибку.
var ErrCorruptSave = errors.New("corrupt save")

// preallocLimit ограничивает предварительную аллокацию для последовательностей,
// чтобы битый счётчик не съел всю память до того, как поток кончится.
const preallocLimit = 1024

// Reader читает примитивы, записанные Writer. Ошибка "залипает" так же,
// как у Writer: после неё все чтения возвращают нулевые значения.
type Reader struct {
	r   io.Reader
	buf [8]byte
	n   int64
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err возвращает первую ошибку чтения (всегда оборачивает ErrCorruptSave).
func (r *Reader) Err() error { return r.err }

// Offset возвращает количество прочитанных байт.
func (r *Reader) Offset() int64 { return r.n }

// Corrupt помечает поток как битый. Используется составными загрузчиками,
// когда прочитанное значение невозможно (неизвестный компонент и т.п.).
func (r *Reader) Corrupt(format string, args ...any) {
	if r.err != nil {
		return
	}
	r.err = oops.Code("CORRUPT_SAVE").
		With("offset", r.n).
		Wrapf(ErrCorruptSave, format, args...)
}

func (r *Reader) read(p []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, p)
	r.n += int64(n)
	if err != nil {
		r.err = oops.Code("CORRUPT_SAVE").
			With("offset", r.n).
			With("cause", err.Error()).
			Wrapf(ErrCorruptSave, "unexpected end of data")
		return false
	}
	return true
}

func (r *Reader) Uint8() uint8 {
	if !r.read(r.buf[:1]) {
		return 0
	}
	return r.buf[0]
}

func (r *Reader) Uint16() uint16 {
	if !r.read(r.buf[:2]) {
		return 0
	}
	return binary.LittleEndian.Uint16(r.buf[:2])
}

func (r *Reader) Uint32() uint32 {
	if !r.read(r.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[:4])
}

func (r *Reader) Uint64() uint64 {
	if !r.read(r.buf[:8]) {
		return 0
	}
	return binary.LittleEndian.Uint64(r.buf[:8])
}

func (r *Reader) Int8() int8   { return int8(r.Uint8()) }
func (r *Reader) Int16() int16 { return int16(r.Uint16()) }
func (r *Reader) Int32() int32 { return int32(r.Uint32()) }
func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

// Bool принимает только 0 и 1, всё остальное - битые данные.
func (r *Reader) Bool() bool {
	b := r.Uint8()
	switch b {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Corrupt("invalid bool byte %d", b)
		return false
	}
}

func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

func (r *Reader) String() string {
	n := r.Uint16()
	if n == 0 || r.err != nil {
		return ""
	}
	b := make([]byte, n)
	if !r.read(b) {
		return ""
	}
	return string(b)
}

// ReadSlice читает int32 количество и затем элементы через read.
// Отрицательное количество считается битыми данными.
func ReadSlice[T any](r *Reader, read func(*Reader) T) []T {
	n := r.Int32()
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.Corrupt("negative sequence count %d", n)
		return nil
	}
	if n == 0 {
		return nil
	}
	out := make([]T, 0, min(int(n), preallocLimit))
	for i := int32(0); i < n; i++ {
		v := read(r)
		if r.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}
