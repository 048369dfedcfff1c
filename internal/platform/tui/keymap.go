package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappyep/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case " ", "up", "w", "k", "enter":
		return core.ActionActivate
	case "r":
		return core.ActionRestart
	case "m", "b", "esc":
		return core.ActionMenu
	case "ctrl+s":
		return core.ActionSnapshot
	case "tab":
		return core.ActionScores
	case "s":
		return core.ActionMute
	}
	return core.ActionNone
}

// MapMouse translates a mouse message to an action. Only a left-button
// press counts; motion and release are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionActivate
	}
	return core.ActionNone
}
