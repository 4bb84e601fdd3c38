// model/progress.go
package model

import (
	"time"
)

// UserProgress records one user's completion of one lesson. The (user_id,
// lesson_id) pair is enforced unique; repeat completions update the row in
// place (score keeps its running maximum, time_spent takes the latest value).
// CompletedAt is set on creation and never changes afterwards.
type UserProgress struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    string    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
	Score       int       `json:"score" gorm:"not null;default:0"` // 0-100
	TimeSpent   int       `json:"time_spent" gorm:"not null;default:0"` // seconds
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}
