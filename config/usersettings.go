package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// WorldConfig holds the runtime-configurable parameters for a new world:
// the seed that determines all generation, and the player's starting stats.
// Unlike the const blocks in config.go, this is genuinely per-save-slot
// data, so it is loaded from a TOML file rather than compiled in.
type WorldConfig struct {
	Seed uint32 `toml:"seed"`

	PlayerStrength  int `toml:"player_strength"`
	PlayerDexterity int `toml:"player_dexterity"`
	PlayerVision    int `toml:"player_vision"`

	// SaveDir is the save slot directory savesystem.Store reads from and
	// writes to (spec.md §6.3 saves/<slot>/). Relative to the working
	// directory the CLI is run from.
	SaveDir string `toml:"save_dir"`
}

// defaultWorldConfig returns the config used when no file is present.
func defaultWorldConfig() WorldConfig {
	return WorldConfig{
		Seed:            1,
		PlayerStrength:  DefaultPlayerStrength,
		PlayerDexterity: DefaultPlayerDexterity,
		PlayerVision:    DefaultPlayerVision,
		SaveDir:         "saves/1",
	}
}

// LoadWorldConfig reads a world configuration from a TOML file at path.
// A missing file is not an error: the defaults are returned as-is, so that
// a fresh install can start a new game without any setup step.
func LoadWorldConfig(path string) (WorldConfig, error) {
	cfg := defaultWorldConfig()

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return WorldConfig{}, fmt.Errorf("decoding world config %q: %w", path, err)
	}

	if cfg.PlayerStrength <= 0 {
		cfg.PlayerStrength = DefaultPlayerStrength
	}
	if cfg.PlayerDexterity <= 0 {
		cfg.PlayerDexterity = DefaultPlayerDexterity
	}
	if cfg.PlayerVision <= 0 {
		cfg.PlayerVision = DefaultPlayerVision
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = "saves/1"
	}

	return cfg, nil
}

// SaveWorldConfig writes cfg to path as TOML.
func SaveWorldConfig(path string, cfg WorldConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating world config %q: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding world config: %w", err)
	}
	return nil
}
