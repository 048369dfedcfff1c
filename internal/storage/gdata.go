package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quasilyte/gdata"
)

// savedBest is the on-disk form of a gdata best-score item.
type savedBest struct {
	Best int `json:"best"`
}

// GDataBest keeps one player's best score as a local save-data item.
type GDataBest struct {
	m   *gdata.Manager
	key string
}

// OpenGData opens the save-data directory for appName and returns the
// best-score item for player.
func OpenGData(appName, player string) (*GDataBest, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open save data: %w", err)
	}
	return &GDataBest{m: m, key: itemKey(player)}, nil
}

// itemKey maps a player name to a safe save-data item name.
func itemKey(player string) string {
	var b strings.Builder
	b.WriteString("best_")
	for _, r := range strings.ToLower(player) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// BestScore returns the saved best, or 0 when nothing was saved yet.
func (g *GDataBest) BestScore(context.Context) (int, error) {
	data, err := g.m.LoadItem(g.key)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load %s: %w", g.key, err)
	}
	if len(data) == 0 {
		return 0, nil
	}

	var saved savedBest
	if err := json.Unmarshal(data, &saved); err != nil {
		return 0, fmt.Errorf("storage: cannot parse %s: %w", g.key, err)
	}
	return saved.Best, nil
}

// SetBestScore overwrites the saved best.
func (g *GDataBest) SetBestScore(_ context.Context, score int) error {
	data, err := json.Marshal(savedBest{Best: score})
	if err != nil {
		return fmt.Errorf("storage: cannot encode best: %w", err)
	}
	if err := g.m.SaveItem(g.key, data); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", g.key, err)
	}
	return nil
}

// Reset removes the saved best.
func (g *GDataBest) Reset() error {
	if err := g.m.SaveItem(g.key, nil); err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", g.key, err)
	}
	return nil
}
