// services/content.go
package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/model"
)

// ContentService serves the curriculum read paths and the admin content
// mutations. Stats go through the optional redis cache.
type ContentService struct {
	appContext.DefaultService
	sqlSvc   *PostgresService
	cacheSvc *RedisService
}

const CONTENT_SVC = "content_svc"

const (
	statsCacheKey = "content:stats"
	statsCacheTTL = 5 * time.Minute
)

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.cacheSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== SCENE METHODS ====================

func (svc *ContentService) ListScenes() (*dto.SceneCollectionResponse, error) {
	scenes, err := svc.sqlSvc.Content().ListScenes()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.SceneResponse, len(scenes))
	for i, scene := range scenes {
		responses[i] = dto.SceneResponse{
			ID:          scene.ID,
			Title:       scene.Title,
			LessonCount: len(scene.Lessons),
		}
	}

	return &dto.SceneCollectionResponse{
		Scenes: responses,
		Total:  len(responses),
	}, nil
}

func (svc *ContentService) GetScene(sceneID string) (*dto.SceneDetailResponse, error) {
	scene, err := svc.sqlSvc.Content().GetSceneDetail(sceneID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.SceneDetailResponse{
		ID:        scene.ID,
		Title:     scene.Title,
		Lessons:   make([]dto.LessonResponse, len(scene.Lessons)),
		Phrases:   make([]dto.PhraseResponse, len(scene.Phrases)),
		Dialogues: make([]dto.DialogueResponse, len(scene.Dialogues)),
	}

	for i, lesson := range scene.Lessons {
		resp.Lessons[i] = mapLessonToResponse(&lesson)
	}
	for i, phrase := range scene.Phrases {
		resp.Phrases[i] = mapPhraseToResponse(&phrase)
	}
	for i, dialogue := range scene.Dialogues {
		resp.Dialogues[i] = mapDialogueToResponse(&dialogue)
	}

	return resp, nil
}

func (svc *ContentService) CreateScene(req dto.CreateSceneRequest) (*dto.SceneResponse, error) {
	scene, err := svc.sqlSvc.Content().CreateScene(&model.Scene{Title: req.Title})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateStats()

	return &dto.SceneResponse{
		ID:    scene.ID,
		Title: scene.Title,
	}, nil
}

func (svc *ContentService) DeleteScene(sceneID string) error {
	if _, err := svc.sqlSvc.Content().GetScene(sceneID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Content().DeleteScene(sceneID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	svc.invalidateStats()
	return nil
}

// ==================== LESSON METHODS ====================

func (svc *ContentService) ListLessons(sceneID string) (*dto.LessonCollectionResponse, error) {
	if sceneID != "" {
		if _, err := svc.sqlSvc.Content().GetScene(sceneID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	lessons, err := svc.sqlSvc.Content().ListLessons(sceneID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i, lesson := range lessons {
		responses[i] = mapLessonToResponse(&lesson)
	}

	return &dto.LessonCollectionResponse{
		Lessons: responses,
		Total:   len(responses),
	}, nil
}

// GetLesson returns the lesson with its assigned phrases and dialogue lines.
func (svc *ContentService) GetLesson(lessonID string) (*dto.LessonDetailResponse, error) {
	lesson, phrases, dialogues, err := svc.sqlSvc.Content().GetLessonDetail(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.LessonDetailResponse{
		ID:          lesson.ID,
		SceneID:     lesson.SceneID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Phrases:     make([]dto.PhraseResponse, len(phrases)),
		Dialogues:   make([]dto.DialogueResponse, len(dialogues)),
	}

	for i, phrase := range phrases {
		resp.Phrases[i] = mapPhraseToResponse(&phrase)
	}
	for i, dialogue := range dialogues {
		resp.Dialogues[i] = mapDialogueToResponse(&dialogue)
	}

	return resp, nil
}

func (svc *ContentService) CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := svc.sqlSvc.Content().GetScene(req.SceneID); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	lesson, err := svc.sqlSvc.Content().CreateLesson(&model.Lesson{
		SceneID:     req.SceneID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateStats()

	resp := mapLessonToResponse(lesson)
	return &resp, nil
}

func (svc *ContentService) DeleteLesson(lessonID string) error {
	if _, err := svc.sqlSvc.Content().GetLesson(lessonID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Content().DeleteLesson(lessonID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	svc.invalidateStats()
	return nil
}

// ==================== PHRASE AND DIALOGUE METHODS ====================

func (svc *ContentService) ListPhrases(filter dto.ContentFilterRequest) (*dto.PhraseCollectionResponse, error) {
	phrases, err := svc.sqlSvc.Content().ListPhrases(filter.Scene, filter.Lesson)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.PhraseResponse, len(phrases))
	for i, phrase := range phrases {
		responses[i] = mapPhraseToResponse(&phrase)
	}

	return &dto.PhraseCollectionResponse{
		Phrases: responses,
		Total:   len(responses),
	}, nil
}

func (svc *ContentService) ListDialogues(filter dto.ContentFilterRequest) (*dto.DialogueCollectionResponse, error) {
	dialogues, err := svc.sqlSvc.Content().ListDialogues(filter.Scene, filter.Lesson)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.DialogueResponse, len(dialogues))
	for i, dialogue := range dialogues {
		responses[i] = mapDialogueToResponse(&dialogue)
	}

	return &dto.DialogueCollectionResponse{
		Dialogues: responses,
		Total:     len(responses),
	}, nil
}

// ==================== STATS ====================

func (svc *ContentService) GetStats() (*dto.ContentStatsResponse, error) {
	ctx := context.Background()

	if svc.cacheSvc.Enabled() {
		var cached dto.ContentStatsResponse
		hit, err := svc.cacheSvc.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			log.WithError(err).Warn("Stats cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	counts, err := svc.sqlSvc.Content().Counts()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	stats := &dto.ContentStatsResponse{
		Scenes:    counts.Scenes,
		Lessons:   counts.Lessons,
		Phrases:   counts.Phrases,
		Dialogues: counts.Dialogues,
	}

	if svc.cacheSvc.Enabled() {
		if err := svc.cacheSvc.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			log.WithError(err).Warn("Stats cache write failed")
		}
	}

	return stats, nil
}

func (svc *ContentService) invalidateStats() {
	if !svc.cacheSvc.Enabled() {
		return
	}
	if err := svc.cacheSvc.Delete(context.Background(), statsCacheKey); err != nil {
		log.WithError(err).Warn("Stats cache invalidation failed")
	}
}

// ==================== MAPPERS ====================

func mapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:          lesson.ID,
		SceneID:     lesson.SceneID,
		Title:       lesson.Title,
		Description: lesson.Description,
	}
}

func mapPhraseToResponse(phrase *model.Phrase) dto.PhraseResponse {
	return dto.PhraseResponse{
		ID:       phrase.ID,
		SceneID:  phrase.SceneID,
		LessonID: phrase.LessonID,
		TextEN:   phrase.TextEN,
		TextJA:   phrase.TextJA,
		Note:     phrase.Note,
		Source:   phrase.Source,
	}
}

func mapDialogueToResponse(dialogue *model.Dialogue) dto.DialogueResponse {
	return dto.DialogueResponse{
		ID:       dialogue.ID,
		SceneID:  dialogue.SceneID,
		LessonID: dialogue.LessonID,
		Speaker:  dialogue.Speaker,
		LineEN:   dialogue.LineEN,
		LineJA:   dialogue.LineJA,
		Order:    dialogue.Order,
	}
}
