package persistence

import (
	"fmt"

	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDBConnection opens the key directory database described by settings.
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	switch settings.Type {
	case config.PostgresDbType:
		return openPostgres(settings)
	case config.SqliteDbType:
		return openSQLite(settings)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// openPostgres connects to the server and, when settings.Name is set,
// creates that database if needed and reconnects to it.
func openPostgres(settings config.DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if settings.Name == "" {
		return db, nil
	}

	var exists bool
	if err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)", settings.Name).Scan(&exists).Error; err != nil {
		_ = CloseDB(db)
		return nil, fmt.Errorf("failed to look up database '%s': %w", settings.Name, err)
	}
	if !exists {
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", settings.Name)).Error; err != nil {
			_ = CloseDB(db)
			return nil, fmt.Errorf("failed to create database '%s': %w", settings.Name, err)
		}
	}
	if err := CloseDB(db); err != nil {
		return nil, err
	}

	db, err = gorm.Open(postgres.Open(fmt.Sprintf("%s dbname=%s", settings.DSN, settings.Name)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database '%s': %w", settings.Name, err)
	}
	return db, nil
}

func openSQLite(settings config.DatabaseSettings) (*gorm.DB, error) {
	dsn := settings.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	return db, nil
}

// CloseDB closes the underlying sql.DB of db.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase removes a PostgreSQL database. Used by integration tests for cleanup.
func DropDatabase(adminDSN, dbName string) error {
	db, err := gorm.Open(postgres.Open(adminDSN), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() { _ = CloseDB(db) }()

	if err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %q", dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}
	return nil
}
