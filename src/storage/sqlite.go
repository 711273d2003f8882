package storage

import (
	"database/sql"
	"fmt"
	"time"

	"options-observer/src/logger"
	"options-observer/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// The journal must survive restarts, so create-if-missing rather
	// than recreate.
	query := `
		CREATE TABLE IF NOT EXISTS request_journal (
			symbol TEXT,
			requested_at INTEGER,
			status INTEGER,
			duration_ms REAL,
			expirations INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create request_journal: %w", err)
	}

	query = `CREATE INDEX IF NOT EXISTS idx_request_journal_requested_at ON request_journal (requested_at);`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to index request_journal: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveRequestRecord(rec models.MRequestRecord) error {
	_, err := d.DB.Exec(`
		INSERT INTO request_journal (symbol, requested_at, status, duration_ms, expirations)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Symbol, rec.RequestedAt.UTC().Unix(), rec.Status, rec.DurationMs, rec.Expirations)
	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	if _, err := d.DB.Exec("DELETE FROM request_journal WHERE requested_at < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup request_journal error: %v", err)
		return err
	}

	d.Logger.Info("Cleanup completed (retention %d days)", retentionDays)
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
