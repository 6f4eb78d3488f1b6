//go:build integration
// +build integration

package persistence

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize512  = 512
	TestKeySize1024 = 1024
	TestKeySize2048 = 2048

	TestDepartmentEngineering = "Engineering"
	TestDepartmentLegal       = "Legal"

	TestPublicKey = "65537:3233"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	KeyEntryRepo keys.KeyEntryRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  filepath.Join(t.TempDir(), "sigvault.db"),
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)
	keyEntryRepo, err := NewGormKeyEntryRepository(db, logger)
	require.NoError(t, err, "Failed to create key entry repository")

	return &TestContext{
		DB:           db,
		KeyEntryRepo: keyEntryRepo,
	}
}

// CreateTestKeyEntry creates a test key entry with default values
func CreateTestKeyEntry(t *testing.T, name string) *keys.KeyEntry {
	t.Helper()
	return CreateTestKeyEntryWithOptions(t, name, TestDepartmentEngineering, TestKeySize1024)
}

// CreateTestKeyEntryWithOptions creates a test key entry with custom options
func CreateTestKeyEntryWithOptions(t *testing.T, name, department string, keySize int) *keys.KeyEntry {
	t.Helper()

	return &keys.KeyEntry{
		ID:              keys.NewKeyEntryID(),
		Name:            name,
		Department:      department,
		PublicKey:       TestPublicKey,
		KeySize:         uint32(keySize),
		DateTimeCreated: time.Now(),
	}
}
