package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"metaharvest/internal/iso639"
	"metaharvest/internal/logger"
)

const MemoryPath = ":memory:"

// DB keeps the ISO 639 lookup table in SQLite. The default path is
// in-memory; a file path only caches the seeded table.
type DB struct {
	conn *sql.DB
	log  *zap.Logger
}

var lookupColumns = map[iso639.Kind]string{
	iso639.KindName:   "name",
	iso639.KindPart3:  "part3",
	iso639.KindPart2B: "part2b",
	iso639.KindPart2T: "part2t",
	iso639.KindPart1:  "part1",
}

func Open(path string, log *zap.Logger) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// every pooled connection to :memory: would be a separate database
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, log: logger.OrNop(log)}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// OpenSeeded opens path and loads the embedded ISO 639 table into it.
func OpenSeeded(path string, log *zap.Logger) (*DB, error) {
	db, err := Open(path, log)
	if err != nil {
		return nil, err
	}
	langs, err := iso639.Languages()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.UpsertLanguages(langs); err != nil {
		_ = db.Close()
		return nil, err
	}
	_ = db.SetMetadata("iso639.rows", fmt.Sprintf("%d", len(langs)))
	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS languages (
  part3 TEXT PRIMARY KEY,
  part2b TEXT NOT NULL DEFAULT '',
  part2t TEXT NOT NULL DEFAULT '',
  part1 TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_languages_name ON languages(name);
CREATE INDEX IF NOT EXISTS idx_languages_part2b ON languages(part2b);
CREATE INDEX IF NOT EXISTS idx_languages_part2t ON languages(part2t);
CREATE INDEX IF NOT EXISTS idx_languages_part1 ON languages(part1);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertLanguages(langs []iso639.Language) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO languages (part3, part2b, part2t, part1, name)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(part3) DO UPDATE SET
  part2b=excluded.part2b,
  part2t=excluded.part2t,
  part1=excluded.part1,
  name=excluded.name
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range langs {
		if _, err := stmt.Exec(l.Part3, l.Part2B, l.Part2T, l.Part1, l.Name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LookupLanguage finds the first row whose kind column equals value.
func (d *DB) LookupLanguage(kind iso639.Kind, value string) (*iso639.Language, error) {
	column, ok := lookupColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported lookup kind: %s", kind)
	}
	if value == "" {
		return nil, nil
	}

	var lang iso639.Language
	err := d.conn.QueryRow(`
SELECT part3, part2b, part2t, part1, name
FROM languages WHERE `+column+` = ? ORDER BY rowid LIMIT 1
`, value).Scan(&lang.Part3, &lang.Part2B, &lang.Part2T, &lang.Part1, &lang.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// Lookup satisfies iso639.Table. Query errors are logged and count as misses.
func (d *DB) Lookup(kind iso639.Kind, value string) (iso639.Language, bool) {
	lang, err := d.LookupLanguage(kind, value)
	if err != nil {
		d.log.Error("language lookup failed",
			zap.Stringer("kind", kind),
			zap.String("value", value),
			zap.Error(err),
		)
		return iso639.Language{}, false
	}
	if lang == nil {
		return iso639.Language{}, false
	}
	return *lang, true
}

func (d *DB) CountLanguages() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM languages`).Scan(&n)
	return n, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
