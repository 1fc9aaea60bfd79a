package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection holding decoded boarding passes
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite tunes SQLite for a small gate device writing in batches
func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		stmt string
		desc string
	}{
		// WAL lets readers run while the collector writes
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA cache_size=-64000", "set cache size"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA temp_store=MEMORY", "set temp_store"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// ScanRepository returns the repository for decoded and rejected scans
func (d *DB) ScanRepository() ScanRepository {
	return NewScanRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	tables := []struct {
		name   string
		schema string
	}{
		{"passes", `CREATE TABLE IF NOT EXISTS passes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scanned_at TIMESTAMP NOT NULL,
			source TEXT NOT NULL,
			raw TEXT NOT NULL UNIQUE,
			passenger_name TEXT NOT NULL,
			electronic_ticket TEXT,
			version_number TEXT,
			num_legs INTEGER NOT NULL,
			has_security_data INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
		{"legs", `CREATE TABLE IF NOT EXISTS legs (
			pass_id INTEGER NOT NULL REFERENCES passes(id),
			leg_index INTEGER NOT NULL,
			pnr TEXT NOT NULL,
			from_airport TEXT NOT NULL,
			to_airport TEXT NOT NULL,
			operating_carrier TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			date_of_flight TEXT NOT NULL,
			compartment TEXT,
			seat TEXT,
			check_in_sequence TEXT,
			passenger_status TEXT,
			marketing_carrier TEXT,
			frequent_flyer_airline TEXT,
			frequent_flyer_number TEXT,
			PRIMARY KEY (pass_id, leg_index)
		);`},
		{"rejected_scans", `CREATE TABLE IF NOT EXISTS rejected_scans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scanned_at TIMESTAMP NOT NULL,
			source TEXT NOT NULL,
			raw TEXT NOT NULL,
			error_code TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_passes_scanned_at ON passes(scanned_at)`,
		`CREATE INDEX IF NOT EXISTS idx_legs_flight ON legs(operating_carrier, flight_number, date_of_flight)`,
		`CREATE INDEX IF NOT EXISTS idx_rejected_scans_scanned_at ON rejected_scans(scanned_at)`,
	}

	for _, tbl := range tables {
		if _, err := d.db.Exec(tbl.schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", tbl.name, err)
		}
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
