package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds every uploaded file.
const maxUploadSize = 32 << 20

// statusFromError maps service errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, cryptoalg.ErrInvalidKeyEncoding),
		errors.Is(err, cryptoalg.ErrOutOfRange),
		errors.Is(err, cryptoalg.ErrInvalidKeySize),
		errors.Is(err, keys.ErrUnsupportedKeySize),
		errors.Is(err, keys.ErrVerificationKeyMissing):
		return http.StatusBadRequest
	case errors.Is(err, keys.ErrKeyEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, cryptoalg.ErrPrimalityExhaustion):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, format string, args ...any) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: fmt.Sprintf(format, args...)})
}

// readFormFile returns the content and file name of a multipart file field
func readFormFile(ctx *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing file field %q: %w", field, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %q: %w", field, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %q: %w", field, err)
	}
	if len(data) > maxUploadSize {
		return nil, "", fmt.Errorf("file field %q exceeds %d bytes", field, maxUploadSize)
	}

	return data, fileHeader.Filename, nil
}

// setAttachment sets a Content-Disposition header with a properly quoted filename.
func setAttachment(ctx *gin.Context, filename string) {
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
