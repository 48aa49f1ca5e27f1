package binio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_LittleEndianLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Uint16(0x0102)
	w.Int32(-2)
	w.Bool(true)
	w.String("ab")
	require.NoError(t, w.Err())

	want := []byte{
		0x02, 0x01, // uint16
		0xFE, 0xFF, 0xFF, 0xFF, // int32 -2
		0x01,       // bool
		0x02, 0x00, // длина строки
		'a', 'b',
	}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, int64(len(want)), w.Len())
}

func TestRoundTrip_Primitives(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int8(-7)
	w.Int16(math.MinInt16)
	w.Int32(math.MaxInt32)
	w.Int64(math.MinInt64)
	w.Uint64(math.MaxUint64)
	w.Bool(false)
	w.Float64(math.Pi)
	w.Float64(math.Inf(-1))
	w.String("")
	w.String("стена")
	require.NoError(t, w.Err())

	r := NewReader(&buf)
	assert.Equal(t, int8(-7), r.Int8())
	assert.Equal(t, int16(math.MinInt16), r.Int16())
	assert.Equal(t, int32(math.MaxInt32), r.Int32())
	assert.Equal(t, int64(math.MinInt64), r.Int64())
	assert.Equal(t, uint64(math.MaxUint64), r.Uint64())
	assert.False(t, r.Bool())
	assert.Equal(t, math.Pi, r.Float64())
	assert.True(t, math.IsInf(r.Float64(), -1))
	assert.Equal(t, "", r.String())
	assert.Equal(t, "стена", r.String())
	require.NoError(t, r.Err())
	assert.Equal(t, 0, buf.Len(), "reader must consume exactly what was written")
}

func TestFloat64_NaNBitsPreserved(t *testing.T) {
	nan := math.Float64frombits(0x7FF8000000000123)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Float64(nan)

	r := NewReader(&buf)
	got := r.Float64()
	assert.Equal(t, uint64(0x7FF8000000000123), math.Float64bits(got))
}

func TestSlice_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	WriteSlice(w, []string{"a", "bb", "ccc"}, (*Writer).String)
	WriteSlice(w, []int32(nil), (*Writer).Int32)
	require.NoError(t, w.Err())

	r := NewReader(&buf)
	assert.Equal(t, []string{"a", "bb", "ccc"}, ReadSlice(r, (*Reader).String))
	assert.Nil(t, ReadSlice(r, (*Reader).Int32))
	require.NoError(t, r.Err())
}

func TestString_TooLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.String(strings.Repeat("x", MaxStringLen+1))

	require.Error(t, w.Err())
	assert.True(t, errors.Is(w.Err(), ErrStringTooLong))
	assert.Equal(t, 0, buf.Len())
}

func TestReader_Truncated(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.String("hello")
	data := buf.Bytes()[:4] // длина есть, байтов строки не хватает

	r := NewReader(bytes.NewReader(data))
	assert.Equal(t, "", r.String())
	require.Error(t, r.Err())
	assert.True(t, errors.Is(r.Err(), ErrCorruptSave))

	// ошибка залипает
	assert.Equal(t, int32(0), r.Int32())
	assert.True(t, errors.Is(r.Err(), ErrCorruptSave))
}

func TestReader_InvalidBool(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{2}))
	r.Bool()
	assert.True(t, errors.Is(r.Err(), ErrCorruptSave))
}

func TestReader_NegativeCount(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int32(-1)

	r := NewReader(&buf)
	assert.Nil(t, ReadSlice(r, (*Reader).Int32))
	assert.True(t, errors.Is(r.Err(), ErrCorruptSave))
}

func TestReader_HugeCountDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int32(math.MaxInt32)
	w.Int32(1)

	r := NewReader(&buf)
	assert.Nil(t, ReadSlice(r, (*Reader).Int32))
	assert.True(t, errors.Is(r.Err(), ErrCorruptSave))
}
