package mysql

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed sessions.sql
var sessionsSchema string

func LoadDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to DB: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the sessions table if it does not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(sessionsSchema); err != nil {
		return fmt.Errorf("failed to execute sessions.sql: %w", err)
	}
	return nil
}
