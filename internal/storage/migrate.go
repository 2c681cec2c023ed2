package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type migration struct {
	version int
	name    string
}

// MigrateUp applies every pending migration in version order. The
// current version lives in PRAGMA user_version, so reopening an
// existing tracker database only runs what it is missing.
func MigrateUp(db *sql.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	migrations, err := loadMigrations(".up.sql")
	if err != nil {
		return err
	}
	for _, mig := range migrations {
		if mig.version <= current {
			continue
		}
		if err := applyMigration(db, mig, mig.version); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown unwinds applied migrations from newest to oldest.
func MigrateDown(db *sql.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	migrations, err := loadMigrations(".down.sql")
	if err != nil {
		return err
	}
	for i := len(migrations) - 1; i >= 0; i-- {
		mig := migrations[i]
		if mig.version > current {
			continue
		}
		if err := applyMigration(db, mig, mig.version-1); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, mig migration, nextVersion int) error {
	sqlBytes, err := migrationFiles.ReadFile(mig.name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", mig.name, err)
	}
	if _, err := db.Exec(string(sqlBytes)); err != nil {
		return fmt.Errorf("apply migration %s: %w", mig.name, err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", nextVersion)); err != nil {
		return fmt.Errorf("record schema version %d: %w", nextVersion, err)
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func loadMigrations(suffix string) ([]migration, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(entries))
	for _, name := range entries {
		base := path.Base(name)
		prefix, _, found := strings.Cut(base, "_")
		if !found {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		version, parseErr := strconv.Atoi(prefix)
		if parseErr != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", name, parseErr)
		}
		out = append(out, migration{version: version, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}
