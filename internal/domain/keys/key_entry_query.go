package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// KeyEntryQuery filters and pages key directory listings
type KeyEntryQuery struct {
	Name            string    `validate:"omitempty,max=255"`
	Department      string    `validate:"omitempty,max=255"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit  int `validate:"omitempty,gt=0"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=id name department key_size date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyEntryQuery creates a KeyEntryQuery sorted by creation time, newest first
func NewKeyEntryQuery() *KeyEntryQuery {
	return &KeyEntryQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyEntryQuery struct
func (q *KeyEntryQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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
