package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

// SaveRecord - строка индекса сохранений.
type SaveRecord struct {
	ID        ulid.ULID
	Path      string
	Seed      int64
	Areas     int
	Creatures int
	Bytes     int64
	CreatedAt time.Time
}

// SaveIndex - SQLite-каталог сохранений. Сами миры лежат в файлах.
type SaveIndex struct {
	db *sql.DB
}

// OpenIndex открывает (или создаёт) базу. ":memory:" - для тестов.
func OpenIndex(path string) (*SaveIndex, error) {
	if path == "" {
		return nil, oops.Code("INDEX_OPEN_FAILED").Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, oops.Code("INDEX_OPEN_FAILED").With("path", path).Wrap(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, oops.Code("INDEX_OPEN_FAILED").With("path", path).Wrap(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, oops.Code("INDEX_OPEN_FAILED").With("path", path).Wrap(err)
	}
	return &SaveIndex{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			areas INTEGER NOT NULL,
			creatures INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SaveIndex) Close() error { return s.db.Close() }

// Record добавляет сохранение. Пустые ID и CreatedAt заполняются.
func (s *SaveIndex) Record(ctx context.Context, rec SaveRecord) (SaveRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.ID == (ulid.ULID{}) {
		rec.ID = ulid.MustNew(ulid.Timestamp(rec.CreatedAt), ulid.DefaultEntropy())
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (id, path, seed, areas, creatures, bytes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Path, rec.Seed, rec.Areas, rec.Creatures, rec.Bytes, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return rec, oops.Code("INDEX_WRITE_FAILED").With("path", rec.Path).Wrap(err)
	}
	return rec, nil
}

// List возвращает сохранения от новых к старым. limit <= 0 - без ограничения.
func (s *SaveIndex) List(ctx context.Context, limit int) ([]SaveRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, seed, areas, creatures, bytes, created_at FROM saves
		 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, oops.Code("INDEX_READ_FAILED").Wrap(err)
	}
	defer rows.Close()

	var out []SaveRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("INDEX_READ_FAILED").Wrap(err)
	}
	return out, nil
}

// Latest - самое свежее сохранение; false, если индекс пуст.
func (s *SaveIndex) Latest(ctx context.Context) (SaveRecord, bool, error) {
	recs, err := s.List(ctx, 1)
	if err != nil || len(recs) == 0 {
		return SaveRecord{}, false, err
	}
	return recs[0], true, nil
}

func scanRecord(rows *sql.Rows) (SaveRecord, error) {
	var (
		rec     SaveRecord
		id      string
		created int64
	)
	if err := rows.Scan(&id, &rec.Path, &rec.Seed, &rec.Areas, &rec.Creatures, &rec.Bytes, &created); err != nil {
		return rec, oops.Code("INDEX_READ_FAILED").Wrap(err)
	}
	parsed, err := ulid.Parse(id)
	if err != nil {
		return rec, oops.Code("INDEX_READ_FAILED").With("id", id).Wrap(err)
	}
	rec.ID = parsed
	rec.CreatedAt = time.Unix(0, created)
	return rec, nil
}
