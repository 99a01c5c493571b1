package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB holds the raw AniList and Jikan payloads fetched by the admin commands.
// It never stores catalog records.
type DB struct {
	handler  *sql.DB
	log      zerolog.Logger
	lock     sync.RWMutex
	squirrel sq.StatementBuilderType
}

// Connection pragmas applied after opening the payload cache.
var pragmas = []string{
	`PRAGMA journal_mode = wal;`,
	`PRAGMA synchronous = normal;`,
}

// NewDB opens the payload cache file at path. The parent directory is created
// and the schema brought up to date.
func NewDB(path string, log zerolog.Logger) (*DB, error) {
	db := &DB{
		log:      log.With().Str("module", "database").Logger(),
		squirrel: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "unable to create payload cache directory")
	}

	handler, err := sql.Open("sqlite", path+"?_pragma=busy_timeout%3d1000")
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open payload cache %s", path)
	}
	db.handler = handler

	for _, p := range pragmas {
		if _, err := db.handler.Exec(p); err != nil {
			db.handler.Close()
			return nil, errors.Wrapf(err, "unable to apply %q", p)
		}
	}

	if err := db.Migrate(); err != nil {
		db.handler.Close()
		return nil, errors.Wrap(err, "failed to migrate payload cache")
	}

	db.log.Debug().Str("path", path).Msg("Payload cache ready")
	return db, nil
}

// SchemaVersion reports the payload cache schema version stored in user_version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.handler.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, errors.Wrap(err, "failed to query schema version")
	}
	return version, nil
}

// Migrate creates the payload_cache table on a fresh file, or applies the
// cacheMigrations entries past the stored version.
func (db *DB) Migrate() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	version, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	target := len(cacheMigrations)
	switch {
	case version == target:
		return nil
	case version > target:
		return errors.Errorf("payload cache schema version %d is newer than supported %d", version, target)
	}

	tx, err := db.handler.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if version == 0 {
		if _, err := tx.Exec(cacheSchema); err != nil {
			return errors.Wrap(err, "failed to create payload_cache")
		}
		db.log.Info().Msg("Created payload cache")
	} else {
		for i := version; i < target; i++ {
			if cacheMigrations[i] == "" {
				continue
			}
			if _, err := tx.Exec(cacheMigrations[i]); err != nil {
				return errors.Wrapf(err, "failed to apply payload cache migration %d", i)
			}
		}
		db.log.Info().Int("from", version).Int("to", target).Msg("Upgraded payload cache schema")
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return errors.Wrap(err, "failed to bump schema version")
	}

	return tx.Commit()
}

// Close runs the query planner optimization and closes the file.
func (db *DB) Close() error {
	if _, err := db.handler.Exec(`PRAGMA optimize;`); err != nil {
		db.handler.Close()
		return errors.Wrap(err, "query planner optimization")
	}

	return db.handler.Close()
}

func (db *DB) Ping() error {
	return db.handler.Ping()
}
