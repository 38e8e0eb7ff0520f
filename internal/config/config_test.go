package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericogr/grid-arena/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridarena_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_ParsesBoardsAndDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"board_list": [
			{"name": "arena", "rows": ["S.~*", "d.oF", "S.#A"]}
		]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(cfg.Boards))
	}
	b := cfg.Boards[0]
	if b.Cols != 4 || b.Rows != 3 {
		t.Fatalf("expected 4x3 board, got %dx%d", b.Cols, b.Rows)
	}

	checks := []struct {
		pos     game.Position
		terrain game.TerrainKind
		item    game.ItemKind
		spawn   bool
	}{
		{game.Position{X: 0, Y: 0}, game.TerrainFloor, game.ItemNone, true},
		{game.Position{X: 2, Y: 0}, game.TerrainWater, game.ItemNone, false},
		{game.Position{X: 3, Y: 0}, game.TerrainIce, game.ItemNone, false},
		{game.Position{X: 0, Y: 1}, game.TerrainDoorClosed, game.ItemNone, false},
		{game.Position{X: 2, Y: 1}, game.TerrainDoorOpen, game.ItemNone, false},
		{game.Position{X: 3, Y: 1}, game.TerrainFloor, game.ItemFlag, false},
		{game.Position{X: 2, Y: 2}, game.TerrainWall, game.ItemNone, false},
		{game.Position{X: 3, Y: 2}, game.TerrainFloor, game.ItemAttackBoost, false},
	}
	for _, c := range checks {
		cell := b.At(c.pos)
		if cell.Terrain != c.terrain || cell.Item != c.item || cell.Spawn != c.spawn {
			t.Fatalf("cell %v: got terrain=%s item=%s spawn=%v", c.pos, cell.Terrain, cell.Item, cell.Spawn)
		}
	}

	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %s", cfg.ServerAddress)
	}
	if cfg.TurnDuration != 30*time.Second || cfg.CombatTurnDuration != 5*time.Second {
		t.Fatalf("unexpected default timers: %v / %v", cfg.TurnDuration, cfg.CombatTurnDuration)
	}
	if cfg.PlaybackTick != 150*time.Millisecond {
		t.Fatalf("unexpected default playback tick: %v", cfg.PlaybackTick)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `{
		"board_list": [{"name": "tiny", "rows": ["SS"]}],
		"server": {"address": ":9999"},
		"timers": {"turn_seconds": 45, "combat_turn_seconds": 8, "playback_tick_ms": 100},
		"flee_success_chance": 0.5
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9999" {
		t.Fatalf("address override ignored, got %s", cfg.ServerAddress)
	}
	if cfg.TurnDuration != 45*time.Second || cfg.CombatTurnDuration != 8*time.Second {
		t.Fatalf("timer overrides ignored: %v / %v", cfg.TurnDuration, cfg.CombatTurnDuration)
	}
	if cfg.PlaybackTick != 100*time.Millisecond {
		t.Fatalf("playback override ignored: %v", cfg.PlaybackTick)
	}
	if cfg.FleeSuccessChance != 0.5 {
		t.Fatalf("flee chance override ignored: %v", cfg.FleeSuccessChance)
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := map[string]string{
		"empty board list": `{"board_list": []}`,
		"missing name":     `{"board_list": [{"rows": ["SS"]}]}`,
		"duplicate names":  `{"board_list": [{"name": "a", "rows": ["SS"]}, {"name": "A", "rows": ["SS"]}]}`,
		"ragged rows":      `{"board_list": [{"name": "a", "rows": ["SS.", "S"]}]}`,
		"too few spawns":   `{"board_list": [{"name": "a", "rows": ["S..."]}]}`,
		"unknown glyph":    `{"board_list": [{"name": "a", "rows": ["SS?"]}]}`,
		"bad flee chance":  `{"board_list": [{"name": "a", "rows": ["SS"]}], "flee_success_chance": 1.5}`,
	}
	for name, content := range cases {
		if _, err := LoadConfig(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
