package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/pkg/binio"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/klauspost/compress/zstd"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `ZNWS` // 4 байта
	Version1    uint32 = 1

	// FileExt - расширение файлов сохранения.
	FileExt = ".znws"
)

// FileHeader — точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут только массивы и числа.
// За заголовком следует тело, сжатое zstd.
type FileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Seed      int64   // 8 байт
	SeedMode  uint8   // 1 байт
	Timestamp int64   // 8 байт, unix nano
	NextIndex uint64  // 8 байт, счётчик EntityID
	AreaCount int32   // 4 байта
}

// Meta - то, что кроме зон нужно для продолжения игры.
type Meta struct {
	Seed      int64
	SeedMode  uint8
	Timestamp time.Time
}

// Info - итог записи (для индекса сохранений и метрик).
type Info struct {
	Path      string
	Bytes     int64
	Areas     int
	Creatures int
}

// SaveFile пишет мир целиком. Файл появляется атомарно: запись идёт
// во временный файл рядом, затем rename.
func SaveFile(path string, world *domain.World, meta Meta) (Info, error) {
	info := Info{Path: path, Areas: world.AreaCount(), Creatures: world.CreatureCount()}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return info, oops.Code("SAVE_WRITE_FAILED").With("path", path).Wrap(err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return info, oops.Code("SAVE_WRITE_FAILED").With("path", path).Wrap(err)
	}

	if err := writeFile(f, world, meta); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return info, oops.Code("SAVE_WRITE_FAILED").With("path", path).Wrap(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return info, oops.Code("SAVE_WRITE_FAILED").With("path", path).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return info, oops.Code("SAVE_WRITE_FAILED").With("path", path).Wrap(err)
	}

	if st, err := os.Stat(path); err == nil {
		info.Bytes = st.Size()
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      path,
		"areas":     info.Areas,
		"creatures": info.Creatures,
		"bytes":     info.Bytes,
	}).Info("World saved")
	return info, nil
}

func writeFile(f *os.File, world *domain.World, meta Meta) error {
	ts := meta.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	header := FileHeader{
		Version:   Version1,
		Seed:      meta.Seed,
		SeedMode:  meta.SeedMode,
		Timestamp: ts.UnixNano(),
		NextIndex: world.NextIndex(),
		AreaCount: int32(world.AreaCount()),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	w := binio.NewWriter(bw)
	EncodeWorld(w, world)
	if err := w.Err(); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Encode пишет несжатое тело без заголовка.
func Encode(w io.Writer, world *domain.World) error {
	bw := binio.NewWriter(w)
	EncodeWorld(bw, world)
	return bw.Err()
}
