package storage

import (
	"path/filepath"
	"testing"

	"github.com/ericogr/grid-arena/internal/game"

	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T, seed []game.Board) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"), seed)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func sampleBoard(name string) game.Board {
	return game.Board{
		Name: name, Cols: 2, Rows: 1,
		Grid: [][]game.Cell{{
			{Position: game.Position{X: 0, Y: 0}, Terrain: game.TerrainFloor, Spawn: true},
			{Position: game.Position{X: 1, Y: 0}, Terrain: game.TerrainWater, Spawn: true},
		}},
	}
}

func TestBoardRoundTrip(t *testing.T) {
	repo := testRepo(t, nil)
	board := sampleBoard("arena")
	require.NoError(t, repo.SaveBoard(&board))

	loaded, err := repo.GetBoard("arena")
	require.NoError(t, err)
	require.Equal(t, board.Cols, loaded.Cols)
	require.Equal(t, game.TerrainWater, loaded.At(game.Position{X: 1, Y: 0}).Terrain)
	require.True(t, loaded.At(game.Position{X: 0, Y: 0}).Spawn)

	_, err = repo.GetBoard("missing")
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestSeedSkipsExistingBoards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	seed := []game.Board{sampleBoard("arena")}

	db, err := OpenAndMigrate(path, seed)
	require.NoError(t, err)
	repo := NewSQLiteRepository(db)

	// Edit the stored template, then reopen with the same seed list: the
	// edit must survive because seeding skips existing names.
	edited := sampleBoard("arena")
	edited.Grid[0][1].Terrain = game.TerrainIce
	require.NoError(t, repo.SaveBoard(&edited))

	db2, err := OpenAndMigrate(path, seed)
	require.NoError(t, err)
	repo2 := NewSQLiteRepository(db2)

	listed, err := repo2.ListBoards()
	require.NoError(t, err)
	require.Len(t, listed, 1)

	loaded, err := repo2.GetBoard("arena")
	require.NoError(t, err)
	require.Equal(t, game.TerrainIce, loaded.At(game.Position{X: 1, Y: 0}).Terrain)
}

func TestProfileStats(t *testing.T) {
	repo := testRepo(t, nil)
	require.NoError(t, repo.UpsertProfile("u1", "Alice"))
	require.NoError(t, repo.UpsertProfile("u2", "Bob"))
	// Upsert with a new name renames, same name is a no-op.
	require.NoError(t, repo.UpsertProfile("u2", "Bobby"))

	require.NoError(t, repo.UpdateStatsOnGameEnd([]string{"u1", "u2"}, "u1"))
	require.NoError(t, repo.UpdateStatsOnGameEnd([]string{"u1", "u2"}, "u1"))
	require.NoError(t, repo.RecordQuit("u2"))

	top, err := repo.GetTopPlayers(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "u1", top[0].PlayerUUID)
	require.Equal(t, 2, top[0].Wins)
	require.Equal(t, 2, top[0].GamesPlayed)
	require.Equal(t, "Bobby", top[1].PlayerName)
	require.Equal(t, 0, top[1].Wins)
	require.Equal(t, 1, top[1].Quits)
}
