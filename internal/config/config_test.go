package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	tests := []struct {
		name        string
		userYAML    string
		localYAML   string
		wantGravity float64
	}{
		{"embedded default", "", "", 0.38},
		{"local only", "", "physics:\n  gravity: 0.6\n", 0.6},
		{"user wins over local", "physics:\n  gravity: 0.5\n", "physics:\n  gravity: 0.6\n", 0.5},
		{"broken user falls through", "physics: [", "physics:\n  gravity: 0.6\n", 0.6},
		{"invalid user falls through", "display:\n  tick_rate: 0\n", "", 0.38},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home, work := isolate(t)
			if tc.userYAML != "" {
				writeFile(t, filepath.Join(home, AppDir, "configs", "flappy.yaml"), tc.userYAML)
			}
			if tc.localYAML != "" {
				writeFile(t, filepath.Join(work, "configs", "flappy.yaml"), tc.localYAML)
			}

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Physics.Gravity != tc.wantGravity {
				t.Errorf("Gravity = %v, expected %v", cfg.Physics.Gravity, tc.wantGravity)
			}
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "session:\n  win_score: 25\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Session.WinScore != 25 {
		t.Errorf("WinScore = %d, expected 25", cfg.Session.WinScore)
	}
	if cfg.Session.Lives != 3 {
		t.Errorf("Lives = %d, expected default 3", cfg.Session.Lives)
	}
	if cfg.Obstacles.SpawnInterval != 90 {
		t.Errorf("SpawnInterval = %d, expected default 90", cfg.Obstacles.SpawnInterval)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "obstacles:\n  spawn_interval: -1\n")
	_, err := Load(bad)
	if err == nil {
		t.Fatal("Load() with invalid config should fail")
	}
	if !strings.Contains(err.Error(), "spawn_interval") {
		t.Errorf("error %q should name the invalid field", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		ok     bool
	}{
		{"defaults", func(*GameConfig) {}, true},
		{"zero tick rate", func(c *GameConfig) { c.Display.TickRate = 0 }, false},
		{"zero cell", func(c *GameConfig) { c.Display.CellHeight = 0 }, false},
		{"zero lives", func(c *GameConfig) { c.Session.Lives = 0 }, false},
		{"max lives", func(c *GameConfig) { c.Session.Lives = MaxLives }, true},
		{"too many lives", func(c *GameConfig) { c.Session.Lives = MaxLives + 1 }, false},
		{"negative inset", func(c *GameConfig) { c.Player.InsetW = -1 }, false},
		{"zero cooldown allowed", func(c *GameConfig) { c.Session.HitCooldownTicks = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() error = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestPaceMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Scaling
		score    int
		expected float64
	}{
		{"fixed", Scaling{SpeedMultiplier: 1}, 9, 1},
		{"zero start defaults to one", Scaling{}, 3, 1},
		{"linear", Scaling{SpeedMultiplier: 1, PerPoint: 0.05}, 4, 1.2},
		{"capped", Scaling{SpeedMultiplier: 1, PerPoint: 0.5, Max: 2}, 9, 2},
		{"negative score", Scaling{SpeedMultiplier: 1, PerPoint: 0.5}, -4, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPace(tc.cfg).Multiplier(tc.score)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Multiplier(%d) = %v, expected %v", tc.score, got, tc.expected)
			}
		})
	}

	if NewPace(Scaling{SpeedMultiplier: 1}).Progressive() {
		t.Error("fixed scaling should not be progressive")
	}
	if got := NewPace(Scaling{SpeedMultiplier: 2}).Speed(3.2, 0); got != 6.4 {
		t.Errorf("Speed() = %v, expected 6.4", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)

	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandPath(~/x/y.db) = %q", got)
	}
	if got := ExpandPath("/abs/y.db"); got != "/abs/y.db" {
		t.Errorf("ExpandPath(/abs/y.db) = %q", got)
	}
	if got := DefaultPath("flappyep.db"); got != "~/.flappyep/flappyep.db" {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FLAPPYEP_TEST_ADDR", ":2222")

	if got := GetEnv("FLAPPYEP_TEST_ADDR", ":23234"); got != ":2222" {
		t.Errorf("GetEnv() = %q, expected :2222", got)
	}
	if got := GetEnv("FLAPPYEP_TEST_UNSET", ":23234"); got != ":23234" {
		t.Errorf("GetEnv() fallback = %q, expected :23234", got)
	}
}
