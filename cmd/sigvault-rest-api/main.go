// cmd/sigvault-rest-api/main.go
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/rsa-sign-vault/internal/api/rest/v1"
	"github.com/MGTheTrain/rsa-sign-vault/internal/app"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/metrics"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// An unset CONFIG_PATH runs on defaults and SIGVAULT_* environment variables
	restConfig, err := config.InitializeRestConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("Failed to close database: ", err)
		}
	}()

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db                   *gorm.DB
	keyGenerationService keys.KeyGenerationService
	keyDirectoryService  keys.KeyDirectoryService
	signatureService     keys.SignatureService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	keyEntryRepo, err := persistence.NewGormKeyEntryRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key entry repository: %w", err)
	}

	random := cryptography.NewLockedReader(rand.Reader)

	tester, err := cryptography.NewMillerRabinTester(random, cfg.Crypto.MillerRabinRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	generator, err := cryptography.NewKeyGenerator(random, tester, log,
		cryptography.WithMaxPrimeAttempts(cfg.Crypto.MaxPrimeAttempts))
	if err != nil {
		return nil, fmt.Errorf("failed to create key generator: %w", err)
	}

	cipher, err := cryptography.NewRSACipher(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA cipher: %w", err)
	}

	hash, err := cryptography.NewHashFunction(cfg.Crypto.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash function: %w", err)
	}

	engine, err := cryptography.NewSignatureEngine(generator, cipher, hash, int(cfg.Crypto.DefaultKeySize), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature engine: %w", err)
	}

	keyGenerationService, err := app.NewKeyGenerationService(keyEntryRepo, generator, cfg.Crypto.KeyGenTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}

	keyDirectoryService, err := app.NewKeyDirectoryService(keyEntryRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key directory service: %w", err)
	}

	signatureService, err := app.NewSignatureService(keyEntryRepo, engine, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature service: %w", err)
	}

	m := metrics.NewMetrics()

	return &appDependencies{
		db:                   db,
		keyGenerationService: app.NewInstrumentedKeyGenerationService(keyGenerationService, m),
		keyDirectoryService:  keyDirectoryService,
		signatureService:     app.NewInstrumentedSignatureService(signatureService, m),
	}, nil
}

func newRouter(deps *appDependencies) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Key-ID"},
		MaxAge:        12 * time.Hour,
	}))

	v1.SetupRoutes(r,
		deps.keyGenerationService,
		deps.keyDirectoryService,
		deps.signatureService,
	)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
