package main

import (
	"github.com/ericogr/grid-arena/internal/config"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid grid-arena configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, boards []game.Board) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, boards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
