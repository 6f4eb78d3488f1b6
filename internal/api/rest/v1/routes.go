package v1

import (
	"net/http"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyGenerationService keys.KeyGenerationService,
	keyDirectoryService keys.KeyDirectoryService,
	signatureService keys.SignatureService) {

	v1 := r.Group(BasePath)

	v1.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "RSA signing vault",
			Version: Version,
		})
	})

	// Key generation and directory routes
	keyHandler := NewKeyHandler(keyGenerationService, keyDirectoryService)
	v1.POST("/keys/generate", keyHandler.Generate)
	v1.GET("/directory", keyHandler.ListEntries)
	v1.POST("/directory", keyHandler.Register)
	v1.GET("/directory/:id", keyHandler.GetEntryByID)
	v1.DELETE("/directory/:id", keyHandler.DeleteEntryByID)

	// Signature routes
	signatureHandler := NewSignatureHandler(signatureService)
	v1.POST("/sign", signatureHandler.Sign)
	v1.POST("/verify", signatureHandler.Verify)
	v1.POST("/hash", signatureHandler.Hash)
}
