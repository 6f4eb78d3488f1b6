package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational response
type InfoResponse struct {
	Message string `json:"message"`
}

// StatusResponse reports the service status
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// GenerateKeyRequest holds the form fields of a key generation request
type GenerateKeyRequest struct {
	Name       string `form:"name" validate:"required,min=1,max=255"`
	Department string `form:"department" validate:"required,min=1,max=255"`
	KeySize    uint32 `form:"key_size,default=1024" validate:"keySizeValidation"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	return validateStruct(r)
}

// RegisterKeyRequest holds the form fields of a public key registration
type RegisterKeyRequest struct {
	Name       string `form:"name" validate:"required,min=1,max=255"`
	Department string `form:"department" validate:"required,min=1,max=255"`
}

// Validate for validating RegisterKeyRequest struct
func (r *RegisterKeyRequest) Validate() error {
	return validateStruct(r)
}

// RegisterKeyResponse is returned after a public key was added to the directory
type RegisterKeyResponse struct {
	Message string `json:"message"`
	KeyID   string `json:"key_id"`
}

// KeyEntryResponse represents a key directory entry
type KeyEntryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	PublicKey       string    `json:"public_key"`
	KeySize         uint32    `json:"key_size"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewKeyEntryResponse maps a directory entry to its response
func NewKeyEntryResponse(entry *keys.KeyEntry) KeyEntryResponse {
	return KeyEntryResponse{
		ID:              entry.ID,
		Name:            entry.Name,
		Department:      entry.Department,
		PublicKey:       entry.PublicKey,
		KeySize:         entry.KeySize,
		DateTimeCreated: entry.DateTimeCreated,
	}
}

// DirectoryResponse lists key directory entries
type DirectoryResponse struct {
	Entries []KeyEntryResponse `json:"entries"`
}

// VerifyResponse reports the outcome of a signature verification
type VerifyResponse struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Signer  *string `json:"signer"`
}

// NewVerifyResponse maps a verification result to its response; Signer is null for invalid signatures
func NewVerifyResponse(result *keys.VerificationResult) VerifyResponse {
	response := VerifyResponse{
		Valid:   result.Valid,
		Message: result.Message,
	}
	if result.Valid && result.Signer != "" {
		signer := result.Signer
		response.Signer = &signer
	}
	return response
}

// HashResponse carries the digest of an uploaded file
type HashResponse struct {
	FileName string `json:"file_name"`
	Digest   string `json:"digest"`
}

func validateStruct(s any) error {
	validate, err := validators.New()
	if err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err = validate.Struct(s)
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
