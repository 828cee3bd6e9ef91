package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBomber loads the bomb game configuration.
// Search order: customPath -> ~/.arcade/configs/bomber.yaml -> ./configs/bomber.yaml -> embedded default
func LoadBomber(customPath string) (BomberConfig, error) {
	return load("bomber.yaml", customPath, defaultBomberYAML, DefaultBomberConfig)
}

// LoadRacing loads the racing configuration.
// Search order: customPath -> ~/.arcade/configs/racing.yaml -> ./configs/racing.yaml -> embedded default
func LoadRacing(customPath string) (RacingConfig, error) {
	return load("racing.yaml", customPath, defaultRacingYAML, DefaultRacingConfig)
}

// load decodes the first readable source on top of the hardcoded defaults,
// so a partial file only overrides the keys it names.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		attempt := defaults()
		if err := yaml.Unmarshal(data, &attempt); err == nil {
			return attempt, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBomberPreset adjusts the bomb game for a difficulty preset.
func ApplyBomberPreset(cfg *BomberConfig, preset DifficultyPreset) {
	cfg.Difficulty.ApplyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxBombs = max(cfg.Player.MaxBombs, 2)
		cfg.Bomb.Fuse = 2.5
	case DifficultyHard:
		cfg.Director.Reinforcement.Enabled = true
		cfg.AI.ReactionTime *= 0.75
	}
}

// ApplyRacingPreset adjusts the racing game for a difficulty preset.
func ApplyRacingPreset(cfg *RacingConfig, preset DifficultyPreset) {
	cfg.Difficulty.ApplyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Traffic.Cars = min(cfg.Traffic.Cars, 12)
	case DifficultyHard:
		cfg.Traffic.Cars += 10
		cfg.Race.Laps += 2
	}
}
