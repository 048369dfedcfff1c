package core

// Action represents a semantic player intent, abstracted from physical keys,
// mouse buttons and SSH byte streams.
type Action int

const (
	ActionNone     Action = iota
	ActionActivate        // Space, Up, W, left click - flap
	ActionRestart         // R - retry after game over or win
	ActionMenu            // M, B, Esc - back to the attract screen
	ActionQuit            // Q, Ctrl+C - leave the game
	ActionSnapshot        // Ctrl+S - save a text screenshot
	ActionScores          // Tab - open the scoreboard
	ActionMute            // S - toggle sound
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionActivate:
		return "Activate"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	case ActionSnapshot:
		return "Snapshot"
	case ActionScores:
		return "Scores"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}
