package postgres

import (
	"database/sql"
	"strings"

	_ "github.com/lib/pq" // Postgres driver
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

type PostgresRepository struct {
	*sqlstore.Store
}

func NewPostgresRepository(dbURL string, maxOpenConns int) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresRepository{Store: sqlstore.New(db, sqlstore.Dollar, true)}, nil
}

// IsPostgres reports whether dbURL is a postgres connection string.
func IsPostgres(dbURL string) bool {
	return strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://")
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS visits (
		id BIGSERIAL PRIMARY KEY,
		ip_address TEXT NOT NULL,
		page_url TEXT NOT NULL,
		page_domain TEXT NOT NULL,
		page_path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT (NOW() AT TIME ZONE 'utc')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_page ON visits(page_domain, page_path)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_created_at ON visits(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_page_url ON visits(page_url)`,
}

// lib/pq runs multi-statement strings only through the simple protocol,
// so each statement is applied on its own.
func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Repository = (*PostgresRepository)(nil)
