package flappy

// Rank returns the badge shown on the game over screen for a final score.
func Rank(score int) string {
	switch {
	case score >= 8:
		return "Legend"
	case score >= 5:
		return "Gold"
	case score >= 3:
		return "Silver"
	default:
		return "Rookie"
	}
}
