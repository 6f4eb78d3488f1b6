package persistence

import (
	"fmt"

	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the key directory schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KeyEntryModel{}); err != nil {
		return fmt.Errorf("failed to migrate key directory schema: %w", err)
	}
	return nil
}
