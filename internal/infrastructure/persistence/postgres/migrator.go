// internal/infrastructure/persistence/postgres/migrator.go
package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jmoiron/sqlx"

	"crypto-engulfing-alert-bot/pkg/logger"
)

// Migration представляет одну миграцию
type Migration struct {
	ID   int
	Name string
	SQL  string
}

// Checksum - контрольная сумма SQL миграции
func (m Migration) Checksum() string {
	sum := sha256.Sum256([]byte(m.SQL))
	return hex.EncodeToString(sum[:])
}

// Migrations - схема журнала сигналов, по порядку применения
var Migrations = []Migration{
	{
		ID:   1,
		Name: "create_engulfing_alerts",
		SQL: `
	CREATE TABLE IF NOT EXISTS engulfing_alerts (
		id UUID PRIMARY KEY,
		symbol VARCHAR(32) NOT NULL,
		timeframe VARCHAR(8) NOT NULL,
		signal VARCHAR(16) NOT NULL,
		trend VARCHAR(16) NOT NULL,
		price NUMERIC(36, 18) NOT NULL,
		source VARCHAR(128) NOT NULL,
		candle_time TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);`,
	},
	{
		ID:   2,
		Name: "index_engulfing_alerts_symbol",
		SQL: `
	CREATE INDEX IF NOT EXISTS idx_engulfing_alerts_symbol_created
		ON engulfing_alerts(symbol, timeframe, created_at DESC);`,
	},
}

// Migrator управляет миграциями базы данных
type Migrator struct {
	db         *sqlx.DB
	migrations []Migration
}

// NewMigrator создает новый мигратор со встроенной схемой
func NewMigrator(db *sqlx.DB) *Migrator {
	return &Migrator{db: db, migrations: Migrations}
}

// Init инициализирует таблицу миграций
func (m *Migrator) Init(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		checksum VARCHAR(64) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Migrate применяет все непройденные миграции
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.Init(ctx); err != nil {
		return err
	}

	applied := map[int]string{}
	rows, err := m.db.QueryxContext(ctx, `SELECT id, checksum FROM migrations`)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	for rows.Next() {
		var (
			id       int
			checksum string
		)
		if err := rows.Scan(&id, &checksum); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration record: %w", err)
		}
		applied[id] = checksum
	}
	rows.Close()

	appliedCount := 0
	for _, migration := range m.migrations {
		if checksum, ok := applied[migration.ID]; ok {
			if checksum != migration.Checksum() {
				return fmt.Errorf("checksum mismatch for migration %d: %s", migration.ID, migration.Name)
			}
			continue
		}

		if err := m.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %s: %w", migration.ID, migration.Name, err)
		}
		appliedCount++
	}

	if appliedCount > 0 {
		logger.Info("✅ Applied %d new migrations", appliedCount)
	} else {
		logger.Debug("✅ Database is up to date")
	}
	return nil
}

func (m *Migrator) applyMigration(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO migrations (id, name, checksum) VALUES ($1, $2, $3)`,
		migration.ID, migration.Name, migration.Checksum(),
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	logger.Info("📄 Applied migration %d: %s", migration.ID, migration.Name)
	return tx.Commit()
}
