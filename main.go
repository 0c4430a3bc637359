package main

import (
	"log"

	"go.uber.org/zap"

	"movie-favorites/cmd"
	"movie-favorites/internal/adapter/tmdb"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/queue"
	"movie-favorites/internal/wire"
	"movie-favorites/pkg/cache"
	"movie-favorites/pkg/database"
	"movie-favorites/pkg/utils"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := database.ApplyMigrations(config.Database); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rdb := cache.NewRedisClient(config.Redis, logger)

	publisher, err := queue.NewPublisher(config.RabbitMQ, logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer publisher.Close()

	tmdbClient := tmdb.NewClient(config.TMDB)

	repo := repository.NewRepository(db, logger)
	app := wire.Wiring(repo, config, logger, rdb, publisher, tmdbClient)

	logger.Info("Starting server",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
	)
	cmd.APIServer(app.Router, config.App.Port, logger)
}
