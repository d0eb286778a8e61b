package model

// Progress statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// UserProgress mirrors a row of user_progress. ID is absent until the row exists.
// At most one row is expected per (UserID, LessonID).
type UserProgress struct {
	ID               *string `json:"id,omitempty"`
	UserID           string  `json:"user_id"`
	LessonID         string  `json:"lesson_id"`
	Status           string  `json:"status"`
	Score            *int    `json:"score"`
	Attempts         int     `json:"attempts"`
	CompletedAt      *string `json:"completed_at"`
	TimeSpentSeconds *int    `json:"time_spent_seconds"`
}

type CreateProgressInput struct {
	UserID           string  `json:"user_id"`
	LessonID         string  `json:"lesson_id"`
	Status           string  `json:"status"`
	Score            *int    `json:"score"`
	Attempts         int     `json:"attempts"`
	CompletedAt      *string `json:"completed_at"`
	TimeSpentSeconds *int    `json:"time_spent_seconds"`
}

func (in *CreateProgressInput) UnmarshalJSON(data []byte) error {
	type plain CreateProgressInput
	return decodeAliased(data, (*plain)(in))
}

// ProgressUpdate is the PATCH body applied to an existing progress row.
type ProgressUpdate struct {
	Status           string  `json:"status"`
	Score            *int    `json:"score"`
	Attempts         int     `json:"attempts"`
	CompletedAt      *string `json:"completed_at"`
	TimeSpentSeconds *int    `json:"time_spent_seconds"`
}

// Update returns the mutable part of the input.
func (in CreateProgressInput) Update() ProgressUpdate {
	return ProgressUpdate{
		Status:           in.Status,
		Score:            in.Score,
		Attempts:         in.Attempts,
		CompletedAt:      in.CompletedAt,
		TimeSpentSeconds: in.TimeSpentSeconds,
	}
}

// ProgressEvent is published after a lesson is completed.
type ProgressEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	LessonID   string `json:"lesson_id"`
	Status     string `json:"status"`
	Score      *int   `json:"score,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

const EventLessonCompleted = "lesson_completed"
