package track

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// TopicPerformance aggregates a user's historical assessment results for
// one topic within a subject.
type TopicPerformance struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Subject          string    `json:"subject" db:"subject"`
	Topic            string    `json:"topic" db:"topic"`
	TotalQuestions   int       `json:"total_questions" db:"total_questions"`
	IncorrectAnswers int       `json:"incorrect_answers" db:"incorrect_answers"`
	LastAssessedAt   null.Time `json:"last_assessed_at" db:"last_assessed_at"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// ErrorRate returns the fraction of answered questions that were wrong,
// in [0, 1]. Topics with no recorded answers score 0.
func (tp TopicPerformance) ErrorRate() float64 {
	if tp.TotalQuestions <= 0 {
		return 0
	}
	return float64(tp.IncorrectAnswers) / float64(tp.TotalQuestions)
}

// WeakTopic is the per-subject weakness signal consumed by the revision
// scheduler to prioritize subjects the user struggles with.
type WeakTopic struct {
	Subject   string  `json:"subject"`
	ErrorRate float64 `json:"error_rate"`
}
