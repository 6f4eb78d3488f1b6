package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key generation and key directory operations
type KeyHandler interface {
	Generate(ctx *gin.Context)
	Register(ctx *gin.Context)
	ListEntries(ctx *gin.Context)
	GetEntryByID(ctx *gin.Context)
	DeleteEntryByID(ctx *gin.Context)
}

type keyHandler struct {
	keyGenerationService keys.KeyGenerationService
	keyDirectoryService  keys.KeyDirectoryService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keyGenerationService keys.KeyGenerationService, keyDirectoryService keys.KeyDirectoryService) KeyHandler {
	return &keyHandler{
		keyGenerationService: keyGenerationService,
		keyDirectoryService:  keyDirectoryService,
	}
}

// Generate handles the POST request to generate an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a key pair, register its public key in the directory and return the private key as a file. The directory ID is returned in the X-Key-ID header.
// @Tags Key
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param name formData string true "Key owner name"
// @Param department formData string true "Key owner department"
// @Param key_size formData int false "Modulus size in bits (512, 1024 or 2048)" default(1024)
// @Success 200 {file} file "exponent:modulus private key"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /keys/generate [post]
func (handler *keyHandler) Generate(ctx *gin.Context) {
	var request GenerateKeyRequest

	if err := ctx.ShouldBind(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, "invalid key generation data: %v", err)
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, "validation failed: %v", err)
		return
	}

	generated, err := handler.keyGenerationService.Generate(ctx, request.Name, request.Department, request.KeySize)
	if err != nil {
		abortWithError(ctx, statusFromError(err), "key generation failed: %v", err)
		return
	}

	filename := fmt.Sprintf("%s_private.key", strings.ReplaceAll(request.Name, " ", "_"))
	setAttachment(ctx, filename)
	ctx.Header("X-Key-ID", generated.Entry.ID)
	ctx.Data(http.StatusOK, "application/octet-stream", []byte(generated.PrivateKey.Encode()))
}

// Register handles the POST request to add a public key to the directory
// @Summary Register a public key
// @Description Register an exponent:modulus public key file under an owner name and department.
// @Tags Directory
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Key owner name"
// @Param department formData string true "Key owner department"
// @Param public_key formData file true "exponent:modulus public key"
// @Success 201 {object} RegisterKeyResponse
// @Failure 400 {object} ErrorResponse
// @Router /directory [post]
func (handler *keyHandler) Register(ctx *gin.Context) {
	var request RegisterKeyRequest

	if err := ctx.ShouldBind(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, "invalid registration data: %v", err)
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, "validation failed: %v", err)
		return
	}

	publicKey, _, err := readFormFile(ctx, "public_key")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "%v", err)
		return
	}

	entry, err := handler.keyDirectoryService.Register(ctx, request.Name, request.Department, string(publicKey))
	if err != nil {
		abortWithError(ctx, statusFromError(err), "invalid public key: %v", err)
		return
	}

	ctx.JSON(http.StatusCreated, RegisterKeyResponse{
		Message: "Public key registered successfully",
		KeyID:   entry.ID,
	})
}

// ListEntries handles the GET request to list the key directory with optional query parameters
// @Summary List the key directory
// @Description Fetch registered public keys filtered by owner name, department and creation date, with pagination and sorting options.
// @Tags Directory
// @Produce json
// @Param name query string false "Key owner name"
// @Param department query string false "Key owner department"
// @Param dateTimeCreated query string false "Created at or after (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {object} DirectoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /directory [get]
func (handler *keyHandler) ListEntries(ctx *gin.Context) {
	query := keys.NewKeyEntryQuery()

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if department := ctx.Query("department"); len(department) > 0 {
		query.Department = department
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, "invalid dateTimeCreated: %v", err)
			return
		}
		query.DateTimeCreated = parsedTime
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, "invalid limit: %v", err)
			return
		}
		query.Limit = parsed
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		parsed, err := strconv.Atoi(offset)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, "invalid offset: %v", err)
			return
		}
		query.Offset = parsed
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, "validation failed: %v", err)
		return
	}

	entries, err := handler.keyDirectoryService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, statusFromError(err), "list query failed: %v", err)
		return
	}

	response := DirectoryResponse{Entries: []KeyEntryResponse{}}
	for _, entry := range entries {
		response.Entries = append(response.Entries, NewKeyEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetEntryByID handles the GET request to retrieve a directory entry by ID
// @Summary Retrieve a directory entry by ID
// @Tags Directory
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} KeyEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory/{id} [get]
func (handler *keyHandler) GetEntryByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	entry, err := handler.keyDirectoryService.GetByID(ctx, keyID)
	if err != nil {
		abortWithError(ctx, statusFromError(err), "key with id %s not found", keyID)
		return
	}

	ctx.JSON(http.StatusOK, NewKeyEntryResponse(entry))
}

// DeleteEntryByID handles the DELETE request to remove a directory entry by ID
// @Summary Delete a directory entry by ID
// @Tags Directory
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory/{id} [delete]
func (handler *keyHandler) DeleteEntryByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.keyDirectoryService.DeleteByID(ctx, keyID); err != nil {
		abortWithError(ctx, statusFromError(err), "error deleting key with id %s", keyID)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Key deleted successfully"})
}
