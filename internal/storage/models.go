package storage

import "gorm.io/gorm"

// BoardTemplate persists an authored board. The grid itself is stored as a
// JSON blob: the engine never queries inside it, it only loads whole boards
// at game creation.
type BoardTemplate struct {
	gorm.Model
	Name     string `json:"name" gorm:"uniqueIndex;size:64"`
	Cols     int    `json:"cols"`
	Rows     int    `json:"rows"`
	GridJSON []byte `json:"-" gorm:"column:grid_json;type:blob"`
}

// TableName overrides the default GORM table name so the persisted table is
// `board_templates`.
func (BoardTemplate) TableName() string { return "board_templates" }

// PlayerProfile stores unique player identity and aggregate stats.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID  string `gorm:"uniqueIndex"`
	PlayerName  string
	GamesPlayed int
	Wins        int
	Quits       int
}

func (PlayerProfile) TableName() string { return "player_profiles" }
