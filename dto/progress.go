package dto

import "time"

type CompleteLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
	// Score arrives un-clamped; the service clamps it into [0,100].
	Score     int `json:"score"`
	TimeSpent int `json:"time_spent" validate:"gte=0"` // seconds
}

func (r CompleteLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UserProgressResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	LessonID    string    `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	SceneTitle  string    `json:"scene_title"`
	Username    string    `json:"username"`
	CompletedAt time.Time `json:"completed_at"`
	Score       int       `json:"score"`
	TimeSpent   int       `json:"time_spent"`
}

type ProgressCollectionResponse struct {
	Progress []UserProgressResponse `json:"progress"`
	Total    int                    `json:"total"`
}

// CompletionAck is returned to anonymous callers: the completion is accepted
// and echoed back but nothing is persisted.
type CompletionAck struct {
	OK        bool   `json:"ok"`
	LessonID  string `json:"lesson"`
	Score     int    `json:"score"`
	TimeSpent int    `json:"time_spent"`
}
