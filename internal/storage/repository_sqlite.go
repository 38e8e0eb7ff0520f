package storage

import (
	"encoding/json"

	"github.com/ericogr/grid-arena/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ListBoards() ([]BoardTemplate, error) {
	var templates []BoardTemplate
	if err := r.db.Omit("grid_json").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *sqliteRepository) GetBoard(name string) (*game.Board, error) {
	var tpl BoardTemplate
	err := r.db.Where("name = ?", name).First(&tpl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	var board game.Board
	if err := json.Unmarshal(tpl.GridJSON, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *sqliteRepository) SaveBoard(b *game.Board) error {
	grid, err := json.Marshal(b)
	if err != nil {
		return err
	}
	var existing BoardTemplate
	err = r.db.Where("name = ?", b.Name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&BoardTemplate{Name: b.Name, Cols: b.Cols, Rows: b.Rows, GridJSON: grid}).Error
	}
	if err != nil {
		return err
	}
	existing.Cols = b.Cols
	existing.Rows = b.Rows
	existing.GridJSON = grid
	return r.db.Save(&existing).Error
}

func (r *sqliteRepository) UpsertProfile(uuid, name string) error {
	var profile PlayerProfile
	err := r.db.Where("player_uuid = ?", uuid).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&PlayerProfile{PlayerUUID: uuid, PlayerName: name}).Error
	}
	if err != nil {
		return err
	}
	if name != "" && name != profile.PlayerName {
		profile.PlayerName = name
		return r.db.Save(&profile).Error
	}
	return nil
}

func (r *sqliteRepository) UpdateStatsOnGameEnd(participantUUIDs []string, winnerUUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, uuid := range participantUUIDs {
			updates := map[string]interface{}{"games_played": gorm.Expr("games_played + 1")}
			if uuid == winnerUUID {
				updates["wins"] = gorm.Expr("wins + 1")
			}
			if err := tx.Model(&PlayerProfile{}).Where("player_uuid = ?", uuid).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) RecordQuit(uuid string) error {
	return r.db.Model(&PlayerProfile{}).Where("player_uuid = ?", uuid).
		Update("quits", gorm.Expr("quits + 1")).Error
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]PlayerProfile, error) {
	var profiles []PlayerProfile
	if err := r.db.Order("wins DESC, games_played ASC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
