package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flarekit/internal/app/connector"
	"flarekit/internal/app/service"
	"flarekit/internal/config"
	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/explorer"
	"flarekit/internal/infrastructure/restapi"
	"flarekit/internal/ingestion"
	"flarekit/internal/pkg/metrics"
	"flarekit/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	settings := cfg.NetworkSettings()
	contractBooks, err := cfg.ContractAddresses()
	if err != nil {
		log.Fatalf("Invalid contract configuration: %v", err)
	}
	book := contractBooks.Active(settings.IsTestnet)

	ctx := context.Background()
	chainClient, err := chain.NewClient(ctx, settings, chain.Credentials{
		Address:    cfg.Account.Address,
		PrivateKey: cfg.Account.PrivateKey(),
	}, zapLogger)
	if err != nil {
		log.Fatalf("Failed to connect chain client: %v", err)
	}
	defer chainClient.Close()

	// Testnet deployments are sparse; a connector whose addresses are not
	// configured is disabled instead of taking the whole binary down.
	var readers []connector.ProtocolReader
	if sceptre, err := connector.NewSceptre(chainClient, book, zapLogger); err != nil {
		if !connectorDisabled(zapLogger, "Sceptre", err) {
			log.Fatalf("Failed to initialize Sceptre connector: %v", err)
		}
	} else {
		readers = append(readers, sceptre)
	}
	kinetic, err := connector.NewKinetic(chainClient, book, zapLogger)
	if err != nil {
		if !connectorDisabled(zapLogger, "Kinetic", err) {
			log.Fatalf("Failed to initialize Kinetic connector: %v", err)
		}
		kinetic = nil
	} else {
		readers = append(readers, kinetic)
	}
	if cyclo, err := connector.NewCyclo(chainClient, book, zapLogger); err != nil {
		if !connectorDisabled(zapLogger, "Cyclo", err) {
			log.Fatalf("Failed to initialize Cyclo connector: %v", err)
		}
	} else {
		readers = append(readers, cyclo)
	}
	if firelight, err := connector.NewFirelight(chainClient, book, zapLogger); err != nil {
		if !connectorDisabled(zapLogger, "Firelight", err) {
			log.Fatalf("Failed to initialize Firelight connector: %v", err)
		}
	} else {
		readers = append(readers, firelight)
	}
	stargate, err := connector.NewStargate(book, zapLogger)
	if err != nil {
		if !connectorDisabled(zapLogger, "Stargate", err) {
			log.Fatalf("Failed to initialize Stargate connector: %v", err)
		}
		stargate = nil
	}
	sparkdex, err := connector.NewSparkDEX(chainClient, book, zapLogger)
	if err != nil {
		if !connectorDisabled(zapLogger, "SparkDEX", err) {
			log.Fatalf("Failed to initialize SparkDEX connector: %v", err)
		}
		sparkdex = nil
	}
	zapLogger.Info("Protocol connectors initialized", zap.Int("readers", len(readers)))

	// The document registry has no canonical deployment; posting stays off
	// when it is not configured.
	var poster *ingestion.Poster
	poster, err = ingestion.NewPoster(chainClient, book.DocumentRegistry, cfg.Ingestion.MaxPayloadBytes, zapLogger)
	if err != nil {
		var cfgErr *entity.ConfigError
		if errors.As(err, &cfgErr) {
			zapLogger.Warn("Document ingestion disabled", zap.String("reason", cfgErr.Reason))
			poster = nil
		} else {
			log.Fatalf("Failed to initialize ingestion poster: %v", err)
		}
	}

	positionsService := service.NewPositionsService(settings.NetworkName(), readers, zapLogger)
	zapLogger.Info("PositionsService initialized")

	abiCache := cache.New(
		time.Duration(cfg.Cache.DefaultExpirationMinutes)*time.Minute,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
	)
	explorerTimeout := time.Duration(cfg.Explorer.RequestTimeoutMillis) * time.Millisecond
	explorerClient := explorer.NewClient(cfg.Explorer.BaseURL, explorerTimeout, abiCache, zapLogger)
	zapLogger.Info("Explorer client initialized", zap.String("baseURL", cfg.Explorer.BaseURL))

	handlers := restapi.NewHandlers(positionsService, kinetic, stargate, sparkdex, poster, explorerClient, settings.NetworkName(), zapLogger)
	router := restapi.SetupRouter(handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

// connectorDisabled reports whether err is a missing-address configuration
// error, logging the skipped connector. Other failures stay fatal.
func connectorDisabled(logger *zap.Logger, name string, err error) bool {
	var cfgErr *entity.ConfigError
	if !errors.As(err, &cfgErr) {
		return false
	}
	logger.Warn(name+" connector disabled", zap.String("reason", cfgErr.Reason))
	return true
}
