package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericogr/grid-arena/internal/engine"
	"github.com/ericogr/grid-arena/internal/game"
)

type boardEntry struct {
	Name string   `json:"name"`
	Rows []string `json:"rows"`
}

type rawConfig struct {
	BoardList []boardEntry `json:"board_list"`
	Server    *struct {
		Address string `json:"address"`
	} `json:"server"`
	Timers *struct {
		TurnSeconds       int `json:"turn_seconds"`
		CombatTurnSeconds int `json:"combat_turn_seconds"`
		PlaybackTickMs    int `json:"playback_tick_ms"`
	} `json:"timers"`
	// Optional probability override for flee attempts, in [0,1].
	FleeSuccessChance *float64 `json:"flee_success_chance"`
}

// LoadedConfig contains board templates to seed and runtime tunables.
type LoadedConfig struct {
	Boards             []game.Board
	ServerAddress      string
	TurnDuration       time.Duration
	CombatTurnDuration time.Duration
	PlaybackTick       time.Duration
	FleeSuccessChance  float64
}

// Board template glyphs. One character per cell:
// '.' floor, '#' wall, '~' water, '*' ice, 'd' closed door, 'o' open door,
// 'S' spawn point, 'F' flag item, 'A' attack item, 'D' defense item.
func parseBoard(name string, rows []string) (*game.Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("board '%s' has no rows", name)
	}
	cols := len(rows[0])
	board := &game.Board{Name: name, Cols: cols, Rows: len(rows), Grid: make([][]game.Cell, len(rows))}
	spawns := 0
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("board '%s' row %d has length %d, expected %d", name, y, len(row), cols)
		}
		board.Grid[y] = make([]game.Cell, cols)
		for x, glyph := range []byte(row) {
			cell := game.Cell{Position: game.Position{X: x, Y: y}, Terrain: game.TerrainFloor}
			switch glyph {
			case '.':
			case '#':
				cell.Terrain = game.TerrainWall
			case '~':
				cell.Terrain = game.TerrainWater
			case '*':
				cell.Terrain = game.TerrainIce
			case 'd':
				cell.Terrain = game.TerrainDoorClosed
			case 'o':
				cell.Terrain = game.TerrainDoorOpen
			case 'S':
				cell.Spawn = true
				spawns++
			case 'F':
				cell.Item = game.ItemFlag
			case 'A':
				cell.Item = game.ItemAttackBoost
			case 'D':
				cell.Item = game.ItemDefenseBoost
			default:
				return nil, fmt.Errorf("board '%s' row %d: unknown glyph %q", name, y, string(glyph))
			}
			board.Grid[y][x] = cell
		}
	}
	if spawns < 2 {
		return nil, fmt.Errorf("board '%s' needs at least 2 spawn points, found %d", name, spawns)
	}
	return board, nil
}

// LoadConfig reads the configuration file at path. It requires the key
// `board_list` (snake_case) with at least one valid board template.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.BoardList) == 0 {
		return nil, fmt.Errorf("config file %s: board_list is empty (provide a 'board_list' array)", path)
	}

	boards := make([]game.Board, 0, len(rc.BoardList))
	nameSet := make(map[string]struct{}, len(rc.BoardList))
	for _, entry := range rc.BoardList {
		if entry.Name == "" {
			return nil, fmt.Errorf("config file %s: board entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(entry.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate board name '%s'", path, entry.Name)
		}
		nameSet[ln] = struct{}{}
		board, err := parseBoard(entry.Name, entry.Rows)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		boards = append(boards, *board)
	}

	out := &LoadedConfig{
		Boards:             boards,
		ServerAddress:      ":8080",
		TurnDuration:       30 * time.Second,
		CombatTurnDuration: 5 * time.Second,
		PlaybackTick:       150 * time.Millisecond,
		FleeSuccessChance:  engine.DefaultFleeChance,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Timers != nil {
		if rc.Timers.TurnSeconds > 0 {
			out.TurnDuration = time.Duration(rc.Timers.TurnSeconds) * time.Second
		}
		if rc.Timers.CombatTurnSeconds > 0 {
			out.CombatTurnDuration = time.Duration(rc.Timers.CombatTurnSeconds) * time.Second
		}
		if rc.Timers.PlaybackTickMs > 0 {
			out.PlaybackTick = time.Duration(rc.Timers.PlaybackTickMs) * time.Millisecond
		}
	}
	if rc.FleeSuccessChance != nil {
		if *rc.FleeSuccessChance < 0 || *rc.FleeSuccessChance > 1 {
			return nil, fmt.Errorf("config file %s: flee_success_chance must be within [0,1]", path)
		}
		out.FleeSuccessChance = *rc.FleeSuccessChance
	}
	return out, nil
}
