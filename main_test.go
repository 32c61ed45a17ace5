package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sheikhrachel/gol-engine/model"
)

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width": 8, "height": 6, "speed": 3}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := parseConfig([]string{"-config", path, "-height", "12", "-toroidal"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if config.Width != 8 || config.Height != 12 || config.Speed != 3 || !config.Toroidal {
		t.Fatalf("unexpected config %+v", config)
	}
}

func TestParseConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "none.json")})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if config.Width != 60 || config.Height != 30 {
		t.Fatalf("expected default size, got %dx%d", config.Width, config.Height)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	if _, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "none.json"), "-speed", "-1"}); err == nil {
		t.Fatalf("negative speed should be rejected")
	}
}

func TestInitializeGameWithPattern(t *testing.T) {
	config, err := parseConfig([]string{
		"-config", filepath.Join(t.TempDir(), "none.json"),
		"-width", "4", "-height", "2",
		"-pattern", "...0n....0n..000",
	})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	grid := initializeGame(config)
	if w, h := grid.Dimension(); w != 5 || h != 3 {
		t.Fatalf("grid = %dx%d, want 5x3", w, h)
	}
	want := []model.Coordinate{{Row: 0, Col: 3}, {Row: 1, Col: 4}, {Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}}
	got := grid.AlivePoints()
	if len(got) != len(want) {
		t.Fatalf("alive = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("alive = %v, want %v", got, want)
		}
	}
}
