package validators

import (
	"github.com/go-playground/validator/v10"
)

// SupportedKeySizes lists the RSA modulus sizes served by the key directory.
var SupportedKeySizes = []uint32{512, 1024, 2048}

// IsSupportedKeySize reports whether keySize is one of SupportedKeySizes.
func IsSupportedKeySize(keySize uint32) bool {
	for _, size := range SupportedKeySizes {
		if size == keySize {
			return true
		}
	}
	return false
}

// KeySizeValidation validates an RSA modulus size against SupportedKeySizes.
func KeySizeValidation(fl validator.FieldLevel) bool {
	return IsSupportedKeySize(uint32(fl.Field().Uint()))
}
