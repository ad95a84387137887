package store

import "time"

// ProblemSession is a generated problem awaiting answers.
type ProblemSession struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ProblemText   string    `gorm:"column:problem_text;not null"`
	CorrectAnswer int       `gorm:"column:correct_answer;not null"`
	Difficulty    string    `gorm:"column:difficulty;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProblemSession) TableName() string {
	return "math_problem_sessions"
}

// Submission is one graded answer against a session.
type Submission struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID    string    `gorm:"column:session_id;not null;index"`
	UserAnswer   float64   `gorm:"column:user_answer;not null"`
	IsCorrect    bool      `gorm:"column:is_correct;not null"`
	FeedbackText string    `gorm:"column:feedback_text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Submission) TableName() string {
	return "math_problem_submissions"
}
