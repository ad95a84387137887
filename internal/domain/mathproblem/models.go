package mathproblem

import "strings"

// Difficulty is a problem difficulty tier.
type Difficulty string

const (
	// DifficultyEasy targets early elementary grades.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium targets middle elementary grades.
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard targets upper elementary grades.
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty normalizes a client-supplied tier.
// Unrecognized or empty input falls back to easy.
func ParseDifficulty(value string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// DifficultyProfile holds the prompt-shaping parameters for a tier.
type DifficultyProfile struct {
	GradeBand      string
	Operations     string
	OperationCount string
	AnswerMin      int
	AnswerMax      int
}

var difficultyProfiles = map[Difficulty]DifficultyProfile{
	DifficultyEasy: {
		GradeBand:      "grades 1-3",
		Operations:     "addition and subtraction",
		OperationCount: "a single",
		AnswerMin:      1,
		AnswerMax:      50,
	},
	DifficultyMedium: {
		GradeBand:      "grades 3-5",
		Operations:     "addition, subtraction, and multiplication",
		OperationCount: "1-3",
		AnswerMin:      10,
		AnswerMax:      200,
	},
	DifficultyHard: {
		GradeBand:      "grades 4-6",
		Operations:     "addition, subtraction, multiplication, and division",
		OperationCount: "2-3",
		AnswerMin:      10,
		AnswerMax:      500,
	},
}

// ProfileFor returns the profile for a tier, falling back to easy.
func ProfileFor(tier Difficulty) DifficultyProfile {
	if profile, ok := difficultyProfiles[tier]; ok {
		return profile
	}
	return difficultyProfiles[DifficultyEasy]
}

// GeneratedProblem is a parsed model response.
type GeneratedProblem struct {
	Text   string
	Answer int
}
