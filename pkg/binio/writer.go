// Package binio реализует последовательный бинарный формат без схемы:
// числа фиксированной ширины в little-endian, строки с uint16-префиксом длины
// и последовательности с int32-префиксом количества.
//
// Читатель обязан знать форму данных заранее. Составные значения сами
// пишут и читают свои поля, и никакой длины у агрегатов нет.
package binio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/samber/oops"
)

// MaxStringLen - предел длины строки (uint16 префикс).
const MaxStringLen = math.MaxUint16

var ErrStringTooLong = errors.New("string too long")

// Writer пишет примитивы в поток. Первая ошибка "залипает":
// все последующие вызовы ничего не делают, а Err() её возвращает.
type Writer struct {
	w   io.Writer
	buf [8]byte
	n   int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err возвращает первую ошибку записи.
func (w *Writer) Err() error { return w.err }

// Len возвращает количество записанных байт.
func (w *Writer) Len() int64 { return w.n }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = oops.Code("SAVE_WRITE_FAILED").With("offset", w.n).Wrap(err)
	}
}

func (w *Writer) Uint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

func (w *Writer) Uint16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
}

func (w *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	w.write(w.buf[:8])
}

func (w *Writer) Int8(v int8)   { w.Uint8(uint8(v)) }
func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }
func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

// Bool пишет один байт: 0 или 1.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

// Float64 пишет IEEE-биты числа через 64-битный слот, без потери точности.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// String пишет uint16 длину и сырые байты строки.
func (w *Writer) String(s string) {
	if w.err != nil {
		return
	}
	if len(s) > MaxStringLen {
		w.err = oops.Code("SAVE_WRITE_FAILED").With("len", len(s)).Wrap(ErrStringTooLong)
		return
	}
	w.Uint16(uint16(len(s)))
	w.write([]byte(s))
}

// WriteSlice пишет int32 количество и каждый элемент своим сериализатором.
func WriteSlice[T any](w *Writer, items []T, write func(*Writer, T)) {
	if w.err != nil {
		return
	}
	if len(items) > math.MaxInt32 {
		w.err = oops.Code("SAVE_WRITE_FAILED").Errorf("sequence too long: %d", len(items))
		return
	}
	w.Int32(int32(len(items)))
	for _, it := range items {
		if w.err != nil {
			return
		}
		write(w, it)
	}
}
