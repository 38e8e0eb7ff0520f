package storage

import (
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated via
// AutoMigrate and seeds board templates from the config file. Config is the
// source of truth for seeded boards: a template whose name already exists is
// left alone so editor changes survive restarts.
func OpenAndMigrate(dataSourceName string, boardsFromConfig []game.Board) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&BoardTemplate{}, &PlayerProfile{}); err != nil {
		return nil, err
	}
	seedDefaultBoards(db, boardsFromConfig)
	return db, nil
}

func seedDefaultBoards(db *gorm.DB, boards []game.Board) {
	repo := NewSQLiteRepository(db)
	for i := range boards {
		var count int64
		db.Model(&BoardTemplate{}).Where("name = ?", boards[i].Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := repo.SaveBoard(&boards[i]); err != nil {
			logging.Error("failed to seed board template", err, logging.Fields{"board": boards[i].Name})
			continue
		}
		logging.Info("board template seeded", logging.Fields{"board": boards[i].Name})
	}
}
