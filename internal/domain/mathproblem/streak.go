package mathproblem

// Streak thresholds for celebration messages.
const (
	streakKeepGoing = 2
	streakAmazing   = 3
	streakFire      = 5
)

// StreakMessage returns the celebration message for a run of consecutive
// correct answers. Streaks below the lowest threshold yield an empty string.
func StreakMessage(streak int) string {
	switch {
	case streak >= streakFire:
		return "🔥 ON FIRE! 🔥"
	case streak >= streakAmazing:
		return "🌟 Amazing Streak!"
	case streak >= streakKeepGoing:
		return "⚡ Keep Going!"
	default:
		return ""
	}
}
