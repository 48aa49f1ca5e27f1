package storage

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/binio"
	"github.com/klauspost/compress/zstd"
	"github.com/samber/oops"
)

// Header - разобранный заголовок файла (для inspect без чтения тела).
type Header struct {
	Version   uint32
	Meta      Meta
	NextIndex uint64
	AreaCount int
}

// ReadHeader читает и проверяет только заголовок.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return readHeader(f)
}

func readHeader(r io.Reader) (Header, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, oops.Code("CORRUPT_SAVE").Wrapf(binio.ErrCorruptSave, "failed to read header: %v", err)
	}

	// Валидация
	if string(h.Magic[:]) != MagicHeader {
		return Header{}, oops.Code("CORRUPT_SAVE").Wrapf(binio.ErrCorruptSave, "invalid magic %q", h.Magic[:])
	}
	if h.Version != Version1 {
		return Header{}, oops.Code("CORRUPT_SAVE").With("version", h.Version).
			Wrapf(binio.ErrCorruptSave, "unsupported version: %d (expected %d)", h.Version, Version1)
	}
	if h.AreaCount < 0 {
		return Header{}, oops.Code("CORRUPT_SAVE").Wrapf(binio.ErrCorruptSave, "negative area count %d", h.AreaCount)
	}

	return Header{
		Version: h.Version,
		Meta: Meta{
			Seed:      h.Seed,
			SeedMode:  h.SeedMode,
			Timestamp: time.Unix(0, h.Timestamp),
		},
		NextIndex: h.NextIndex,
		AreaCount: int(h.AreaCount),
	}, nil
}

// LoadFile читает мир из файла. Генератор у возвращённого мира не задан:
// его назначает вызывающий.
func LoadFile(path string, components *domain.ComponentRegistry) (*domain.World, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, oops.Code("SAVE_READ_FAILED").With("path", path).Wrap(err)
	}
	defer f.Close()

	world, h, err := readFile(f, components)
	if err != nil {
		return nil, h, oops.With("path", path).Wrap(err)
	}
	return world, h, nil
}

func readFile(r io.Reader, components *domain.ComponentRegistry) (*domain.World, Header, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, h, err
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, h, err
	}
	defer dec.Close()

	world, err := Decode(bufio.NewReaderSize(dec, 256*1024), components)
	if err != nil {
		return nil, h, err
	}
	if world.AreaCount() != h.AreaCount {
		return nil, h, oops.Code("CORRUPT_SAVE").
			Wrapf(binio.ErrCorruptSave, "header says %d areas, body has %d", h.AreaCount, world.AreaCount())
	}
	world.SetNextIndex(h.NextIndex)
	return world, h, nil
}

// Decode читает несжатое тело. Любая ошибка чтения (в том числе распаковки
// zstd) - это ErrCorruptSave.
func Decode(r io.Reader, components *domain.ComponentRegistry) (*domain.World, error) {
	br := binio.NewReader(r)
	world := domain.NewWorld(nil)
	NewDecoder(br, components).DecodeWorld(world)
	if err := br.Err(); err != nil {
		return nil, err
	}
	return world, nil
}
