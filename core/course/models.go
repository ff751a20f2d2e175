package course

import (
	"time"

	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
)

// Course is a catalog entry positioned on a learning path.
//
// PathPosition orders courses along the path and doubles as the unlock
// threshold tier; Prerequisites and the Unlock* columns feed the unlock
// calculator in core/learnpath.
type Course struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Subject       string         `json:"subject" db:"subject"`
	PathPosition  float64        `json:"path_position" db:"path_position"`
	Prerequisites pq.StringArray `json:"prerequisites" db:"prerequisites"`

	UnlockMinProgress     null.Float64   `json:"unlock_min_progress" db:"unlock_min_progress"`
	UnlockRequiredCourses pq.StringArray `json:"unlock_required_courses" db:"unlock_required_courses"`

	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// UnlockRequirements is the unlock rule view consumed by core/learnpath.
type UnlockRequirements struct {
	MinProgress     *float64
	RequiredCourses []string
}

func (c Course) UnlockRequirements() UnlockRequirements {
	req := UnlockRequirements{RequiredCourses: c.UnlockRequiredCourses}
	if c.UnlockMinProgress.Valid {
		v := c.UnlockMinProgress.Float64
		req.MinProgress = &v
	}
	return req
}

// Purchase statuses
const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseRefunded  = "refunded"
)

type Purchase struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CourseID  string    `json:"course_id" db:"course_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}
