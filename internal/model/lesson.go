package model

import "encoding/json"

// Lesson types.
const (
	LessonTheory   = "theory"
	LessonExercise = "exercise"
	LessonQuiz     = "quiz"
	LessonProject  = "project"
)

// Lesson mirrors a row of the lessons table. Content is stored as-is; its shape
// depends on LessonType and is not checked here.
type Lesson struct {
	ID               string          `json:"id"`
	ModuleID         string          `json:"module_id"`
	Title            string          `json:"title"`
	LessonType       string          `json:"lesson_type"`
	Content          json.RawMessage `json:"content"`
	XPReward         int             `json:"xp_reward"`
	OrderIndex       int             `json:"order_index"`
	IsLocked         bool            `json:"is_locked"`
	Description      *string         `json:"description"`
	Language         string          `json:"language"`
	EstimatedMinutes *int            `json:"estimated_minutes"`
}

type CreateLessonInput struct {
	ModuleID         string          `json:"module_id"`
	Title            string          `json:"title"`
	LessonType       string          `json:"lesson_type"`
	Content          json.RawMessage `json:"content"`
	XPReward         int             `json:"xp_reward"`
	OrderIndex       int             `json:"order_index"`
	IsLocked         bool            `json:"is_locked"`
	Description      *string         `json:"description"`
	Language         string          `json:"language"`
	EstimatedMinutes *int            `json:"estimated_minutes"`
}

func (in *CreateLessonInput) UnmarshalJSON(data []byte) error {
	type plain CreateLessonInput
	return decodeAliased(data, (*plain)(in))
}

type LessonUpdate struct {
	Title            *string         `json:"title,omitempty"`
	LessonType       *string         `json:"lesson_type,omitempty"`
	Content          json.RawMessage `json:"content,omitempty"`
	XPReward         *int            `json:"xp_reward,omitempty"`
	OrderIndex       *int            `json:"order_index,omitempty"`
	IsLocked         *bool           `json:"is_locked,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Language         *string         `json:"language,omitempty"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
}

func (in *LessonUpdate) UnmarshalJSON(data []byte) error {
	type plain LessonUpdate
	return decodeAliased(data, (*plain)(in))
}
