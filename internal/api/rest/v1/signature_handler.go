package v1

import (
	"net/http"
	"strings"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// SignatureHandler defines the interface for handling signing, verification and hashing
type SignatureHandler interface {
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
	Hash(ctx *gin.Context)
}

type signatureHandler struct {
	signatureService keys.SignatureService
}

// NewSignatureHandler creates a new SignatureHandler
func NewSignatureHandler(signatureService keys.SignatureService) SignatureHandler {
	return &signatureHandler{
		signatureService: signatureService,
	}
}

// Sign handles the POST request to sign a file
// @Summary Sign a file
// @Description Sign an uploaded file with an exponent:modulus private key file. The signature file holds the base64 encoded decimal signature.
// @Tags Signature
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Document to sign"
// @Param private_key formData file true "exponent:modulus private key"
// @Success 200 {file} file "<file>.sig"
// @Failure 400 {object} ErrorResponse
// @Router /sign [post]
func (handler *signatureHandler) Sign(ctx *gin.Context) {
	data, filename, err := readFormFile(ctx, "file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	privateKey, _, err := readFormFile(ctx, "private_key")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	signature, err := handler.signatureService.Sign(ctx, data, string(privateKey))
	if err != nil {
		abortWithError(ctx, statusFromError(err), "signing failed: %v", err)
		return
	}

	setAttachment(ctx, filename+".sig")
	ctx.Data(http.StatusOK, "application/octet-stream", cryptoalg.EncodeSignatureFile(signature))
}

// Verify handles the POST request to verify a file signature
// @Summary Verify a file signature
// @Description Verify a signature file against a directory key ID or an uploaded public key file.
// @Tags Signature
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Signed document"
// @Param signature formData file true "Signature file"
// @Param key_id formData string false "Directory key ID"
// @Param public_key_file formData file false "exponent:modulus public key"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verify [post]
func (handler *signatureHandler) Verify(ctx *gin.Context) {
	data, _, err := readFormFile(ctx, "file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	signatureFile, _, err := readFormFile(ctx, "signature")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	signature, err := cryptoalg.DecodeSignatureFile(signatureFile)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "invalid signature file: %v", err)
		return
	}

	var publicKey string
	if _, err := ctx.FormFile("public_key_file"); err == nil {
		content, _, err := readFormFile(ctx, "public_key_file")
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, "%v", err)
			return
		}
		publicKey = string(content)
	}

	keyID := strings.TrimSpace(ctx.PostForm("key_id"))

	result, err := handler.signatureService.Verify(ctx, data, signature, keyID, publicKey)
	if err != nil {
		abortWithError(ctx, statusFromError(err), "verification failed: %v", err)
		return
	}

	ctx.JSON(http.StatusOK, NewVerifyResponse(result))
}

// Hash handles the POST request to compute a file digest
// @Summary Compute a file digest
// @Tags Signature
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 200 {object} HashResponse
// @Failure 400 {object} ErrorResponse
// @Router /hash [post]
func (handler *signatureHandler) Hash(ctx *gin.Context) {
	data, filename, err := readFormFile(ctx, "file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	ctx.JSON(http.StatusOK, HashResponse{
		FileName: filename,
		Digest:   handler.signatureService.Digest(data),
	})
}
