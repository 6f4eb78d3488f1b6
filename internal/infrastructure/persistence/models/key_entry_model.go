package models

import (
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
)

// KeyEntryModel is the GORM database model for key directory entries
type KeyEntryModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(8)"`
	Name            string    `gorm:"not null;index;type:varchar(255)"`
	Department      string    `gorm:"not null;index;type:varchar(255)"`
	PublicKey       string    `gorm:"not null;type:text"`
	KeySize         uint32    `gorm:"type:integer"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (KeyEntryModel) TableName() string {
	return "key_entries"
}

// ToDomain converts GORM model to domain entity
func (m *KeyEntryModel) ToDomain() *keys.KeyEntry {
	return &keys.KeyEntry{
		ID:              m.ID,
		Name:            m.Name,
		Department:      m.Department,
		PublicKey:       m.PublicKey,
		KeySize:         m.KeySize,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyEntryModel) FromDomain(k *keys.KeyEntry) {
	m.ID = k.ID
	m.Name = k.Name
	m.Department = k.Department
	m.PublicKey = k.PublicKey
	m.KeySize = k.KeySize
	m.DateTimeCreated = k.DateTimeCreated
}
