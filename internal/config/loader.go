package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, logs and the database.
const AppDir = ".flappyep"

// Load loads the game configuration.
// Search order: customPath -> ~/.flappyep/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Documents are decoded over DefaultConfig, so omitted keys keep their defaults.
func Load(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(ExpandPath(customPath))
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// MaxLives is the most lives a run can start with.
const MaxLives = 3

// Validate rejects configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Display.TickRate <= 0 {
		errs = append(errs, errors.New("display.tick_rate must be positive"))
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		errs = append(errs, errors.New("display cell size must be positive"))
	}
	if c.Obstacles.SpawnInterval <= 0 {
		errs = append(errs, errors.New("obstacles.spawn_interval must be positive"))
	}
	if c.Obstacles.Width <= 0 {
		errs = append(errs, errors.New("obstacles.width must be positive"))
	}
	if c.Obstacles.GapHeight <= 0 || c.Obstacles.ShortGapHeight <= 0 {
		errs = append(errs, errors.New("obstacle gap heights must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.InsetW < 0 || c.Player.InsetH < 0 {
		errs = append(errs, errors.New("player insets must not be negative"))
	}
	if c.Session.Lives <= 0 || c.Session.Lives > MaxLives {
		errs = append(errs, fmt.Errorf("session.lives must be between 1 and %d", MaxLives))
	}
	if c.Session.WinScore <= 0 {
		errs = append(errs, errors.New("session.win_score must be positive"))
	}
	if c.Session.HitCooldownTicks < 0 || c.Session.DyingTicks < 0 {
		errs = append(errs, errors.New("session tick counts must not be negative"))
	}
	if c.Idle.BobPeriodMS <= 0 {
		errs = append(errs, errors.New("idle.bob_period_ms must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// searchPaths returns the implicit config file locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath("flappy.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "flappy.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// DefaultPath returns a file path inside the per-user application directory.
func DefaultPath(name string) string {
	return filepath.Join("~", AppDir, name)
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
