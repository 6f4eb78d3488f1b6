package keys

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// KeyEntry is a public key registered in the key directory.
// Private keys are never part of an entry.
type KeyEntry struct {
	ID              string    `validate:"required,len=8,hexadecimal"`
	Name            string    `validate:"required,min=1,max=255"`
	Department      string    `validate:"required,min=1,max=255"`
	PublicKey       string    `validate:"required,keyEncodingValidation"`
	KeySize         uint32    `validate:"required,min=6"`
	DateTimeCreated time.Time `validate:"required"`
}

// NewKeyEntryID returns a short directory ID: the first 8 characters of a random UUID.
func NewKeyEntryID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Signer returns the display name of the entry's owner.
func (k *KeyEntry) Signer() string {
	return fmt.Sprintf("%s (%s)", k.Name, k.Department)
}

// Validate for validating KeyEntry struct
func (k *KeyEntry) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err = validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
