package storage

import (
	"errors"

	"github.com/ericogr/grid-arena/internal/game"
)

// ErrBoardNotFound is returned when a requested board template does not
// exist. Missing boards are fatal to the game-creation attempt that asked
// for them and to nothing else.
var ErrBoardNotFound = errors.New("board template not found")

type Repository interface {
	// ListBoards returns template metadata (no grids) for board pickers.
	ListBoards() ([]BoardTemplate, error)
	// GetBoard loads a full board grid by template name.
	GetBoard(name string) (*game.Board, error)
	SaveBoard(b *game.Board) error

	UpsertProfile(uuid, name string) error
	// UpdateStatsOnGameEnd bumps GamesPlayed for every participant and Wins
	// for the winner ("" when the game ended without one).
	UpdateStatsOnGameEnd(participantUUIDs []string, winnerUUID string) error
	RecordQuit(uuid string) error
	GetTopPlayers(limit int) ([]PlayerProfile, error)
}
