package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappyep/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0b8f74")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorNeonTeal:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00f5c4")),
	core.ColorNeonPink:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3cac")),
	core.ColorNeonYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166")),
	core.ColorNeonViolet: lipgloss.NewStyle().Foreground(lipgloss.Color("#7b61ff")),
	core.ColorNeonOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8c00")),
	core.ColorGold:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")).Bold(true),
	core.ColorSilver:     lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0")),
	core.ColorSky:        lipgloss.NewStyle().Foreground(lipgloss.Color("#1f2a4d")),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00a88a")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
