package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lotadmin/internal/registry/config"
	"lotadmin/internal/registry/handler"
	"lotadmin/internal/registry/repository"
	"lotadmin/internal/registry/router"
	"lotadmin/internal/registry/service"
	"lotadmin/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func apiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Run the registry REST API",
		RunE:  runAPI,
	}
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	util.InitLogger(util.LogOptions{Level: logLevel(cfg.LogLevel), File: cfg.LogFile})

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure indexes")
	}

	svc := service.NewService(store, store, store)
	h := handler.NewRegistryHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(util.RequestLogger())
	router.RegisterRoutes(e, h)

	srv := &http.Server{
		Addr:         ":" + listenPort(cfg.Port),
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info().Str("version", version).Str("storage", cfg.Storage).Msg("Registry API starting")
	serveErr := serve(srv)

	// Let queued history writes land before the store goes away.
	svc.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	log.Info().Msg("Server exited properly")
	return serveErr
}

func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping MongoDB: %w", err)
		}
		db := client.Database(cfg.DBName)
		return repository.NewMongoRepository(db, cfg.CustomersCollection, cfg.LotsCollection, cfg.HistoryCollection), nil
	}
}
