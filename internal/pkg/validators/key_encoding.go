package validators

import (
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"

	"github.com/go-playground/validator/v10"
)

// KeyEncodingValidation validates that a string field holds an exponent:modulus key.
func KeyEncodingValidation(fl validator.FieldLevel) bool {
	_, err := cryptoalg.ParsePublicKey(fl.Field().String())
	return err == nil
}

// New returns a validator with the keySizeValidation and keyEncodingValidation tags registered.
func New() (*validator.Validate, error) {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", KeySizeValidation); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("keyEncodingValidation", KeyEncodingValidation); err != nil {
		return nil, err
	}
	return validate, nil
}
