package connector

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
	"posts-backend/pkg/retry"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// GetDatabaseConnector открывает соединение с базой и дожидается, пока она ответит на ping
func GetDatabaseConnector(ctx context.Context, driver string, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverPgx:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	err = retry.Retry(ctx, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite не умеет параллельную запись, держим одно соединение
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// GooseDialect возвращает диалект goose для драйвера
func GooseDialect(driver string) string {
	if driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}
