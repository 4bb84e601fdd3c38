// services/progress.go
package services

import (
	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/model"
)

// ProgressService records lesson completions and serves per-user history.
type ProgressService struct {
	appContext.DefaultService
	sqlSvc *PostgresService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// clampScore forces a reported score into the valid 0..100 range rather than
// rejecting the request.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CompleteLesson records a completion for an authenticated user. Repeat
// completions of the same lesson keep the best score, take the latest
// time_spent, and keep the first completion timestamp.
func (svc *ProgressService) CompleteLesson(userID string, req dto.CompleteLessonRequest) (*dto.UserProgressResponse, error) {
	lesson, err := svc.sqlSvc.Content().GetLesson(req.LessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	progress, err := svc.sqlSvc.Progress().Upsert(&model.UserProgress{
		UserID:    userID,
		LessonID:  req.LessonID,
		Score:     clampScore(req.Score),
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"lesson_id": req.LessonID,
		"score":     progress.Score,
	}).Info("Lesson completion recorded")

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	scene, err := svc.sqlSvc.Content().GetScene(lesson.SceneID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.UserProgressResponse{
		ID:          progress.ID,
		UserID:      progress.UserID,
		LessonID:    progress.LessonID,
		LessonTitle: lesson.Title,
		SceneTitle:  scene.Title,
		Username:    user.Username,
		CompletedAt: progress.CompletedAt,
		Score:       progress.Score,
		TimeSpent:   progress.TimeSpent,
	}, nil
}

// AcknowledgeCompletion handles completions from anonymous callers. The
// lesson must exist, the payload is echoed back clamped, and nothing is
// persisted.
func (svc *ProgressService) AcknowledgeCompletion(req dto.CompleteLessonRequest) (*dto.CompletionAck, error) {
	if _, err := svc.sqlSvc.Content().GetLesson(req.LessonID); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.CompletionAck{
		OK:        true,
		LessonID:  req.LessonID,
		Score:     clampScore(req.Score),
		TimeSpent: req.TimeSpent,
	}, nil
}

// ListUserProgress returns the user's completions, most recent first. An
// empty userID (anonymous caller) gets an empty collection rather than an
// error.
func (svc *ProgressService) ListUserProgress(userID string) (*dto.ProgressCollectionResponse, error) {
	if userID == "" {
		return &dto.ProgressCollectionResponse{
			Progress: []dto.UserProgressResponse{},
			Total:    0,
		}, nil
	}

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	records, err := svc.sqlSvc.Progress().ListByUser(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.UserProgressResponse, len(records))
	for i, record := range records {
		responses[i] = dto.UserProgressResponse{
			ID:          record.ID,
			UserID:      record.UserID,
			LessonID:    record.LessonID,
			LessonTitle: record.Lesson.Title,
			SceneTitle:  record.Lesson.Scene.Title,
			Username:    user.Username,
			CompletedAt: record.CompletedAt,
			Score:       record.Score,
			TimeSpent:   record.TimeSpent,
		}
	}

	return &dto.ProgressCollectionResponse{
		Progress: responses,
		Total:    len(responses),
	}, nil
}
