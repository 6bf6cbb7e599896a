package main

import (
	"context"
	"log"
	"time"

	"showscape/cmd"
	"showscape/internal/data/repository"
	"showscape/internal/wire"
	"showscape/pkg/database"
	"showscape/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production defaults.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeDB, err := openRepository(config, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer closeDB()

	logger.Info("Database connected successfully")

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.HTTP.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

// openRepository connects to the configured store and prepares the schema
func openRepository(config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	if config.Database.Driver == utils.DriverSQLite {
		db, err := database.InitSQLite(config.Database.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		repos, err := repository.NewGormRepository(db, logger)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repos, closeDB, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewRepository(db, logger), db.Close, nil
}
