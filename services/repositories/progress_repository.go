package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/engineer-english/eigo_api/model"
)

// ProgressRepository persists per-user lesson completion records. A user has
// at most one row per lesson; repeat completions fold into it.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Upsert records a completion. On conflict with an existing (user, lesson)
// row the score only ever goes up, time_spent takes the latest value, and
// completed_at keeps its original timestamp. The returned row reflects the
// stored state after the merge.
func (ds *ProgressRepository) Upsert(progress *model.UserProgress) (*model.UserProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	now := time.Now()
	if progress.CompletedAt.IsZero() {
		progress.CompletedAt = now
	}
	progress.CreatedAt = now
	progress.UpdatedAt = now

	err := ds.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      gorm.Expr("CASE WHEN user_progresses.score >= excluded.score THEN user_progresses.score ELSE excluded.score END"),
			"time_spent": gorm.Expr("excluded.time_spent"),
			"updated_at": now,
		}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	return ds.GetByUserAndLesson(progress.UserID, progress.LessonID)
}

func (ds *ProgressRepository) GetByUserAndLesson(userID, lessonID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := ds.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUser returns a user's completions, most recent first, with the lesson
// and its scene preloaded for display.
func (ds *ProgressRepository) ListByUser(userID string) ([]model.UserProgress, error) {
	var records []model.UserProgress
	err := ds.db.
		Preload("Lesson").
		Preload("Lesson.Scene").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (ds *ProgressRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
