package sqlite

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	*sqlstore.Store
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if IsRemote(dbURL) {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if driverName == "sqlite" {
		// One writer at a time; avoids SQLITE_BUSY under concurrent tracking.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{Store: sqlstore.New(db, sqlstore.Question, false)}, nil
}

// IsRemote reports whether dbURL points at a Turso/libsql server.
func IsRemote(dbURL string) bool {
	return strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://")
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ip_address TEXT NOT NULL,
		page_url TEXT NOT NULL,
		page_domain TEXT NOT NULL,
		page_path TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_visits_page ON visits(page_domain, page_path);
	CREATE INDEX IF NOT EXISTS idx_visits_created_at ON visits(created_at);
	CREATE INDEX IF NOT EXISTS idx_visits_page_url ON visits(page_url);
	`
	_, err := db.Exec(query)
	return err
}

// Ensure interface compliance
var _ ports.Repository = (*SQLiteRepository)(nil)
