package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to a terminal color.
type Color uint8

// Basic ANSI colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorDim
)

// Neon palette used by the flappy playfield.
const (
	ColorNeonTeal   Color = iota + 32 // #00f5c4
	ColorNeonPink                     // #ff3cac
	ColorNeonYellow                   // #ffd166
	ColorNeonViolet                   // #7b61ff
	ColorNeonOrange                   // #ff8c00
	ColorGold                         // #ffd700
	ColorSilver                       // #c0c0c0
	ColorSky                          // background skyline
	ColorGround                       // ground strip
)

// PlayerPalette is the cycle of player colors; the active color is
// PlayerPalette[score % len(PlayerPalette)].
var PlayerPalette = [...]Color{
	ColorNeonTeal,
	ColorNeonPink,
	ColorNeonYellow,
	ColorNeonViolet,
	ColorNeonOrange,
}

// PlayerColor returns the player color for the given score.
func PlayerColor(score int) Color {
	if score < 0 {
		score = -score
	}
	return PlayerPalette[score%len(PlayerPalette)]
}
