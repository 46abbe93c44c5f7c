package goosehelper

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// MigrateUp выполняет миграции из директории migrationsDir файловой системы fsys.
// Повторный запуск на уже мигрированной базе ничего не делает.
func MigrateUp(db *sql.DB, dialect string, fsys fs.FS, migrationsDir string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
