package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/engineer-english/eigo_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
	OptionalAuth() fiber.Handler
	RequireAdmin() fiber.Handler
}

type ContentServiceInterface interface {
	ListScenes() (*dto.SceneCollectionResponse, error)
	GetScene(sceneID string) (*dto.SceneDetailResponse, error)
	CreateScene(req dto.CreateSceneRequest) (*dto.SceneResponse, error)
	DeleteScene(sceneID string) error
	ListLessons(sceneID string) (*dto.LessonCollectionResponse, error)
	GetLesson(lessonID string) (*dto.LessonDetailResponse, error)
	CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(lessonID string) error
	ListPhrases(filter dto.ContentFilterRequest) (*dto.PhraseCollectionResponse, error)
	ListDialogues(filter dto.ContentFilterRequest) (*dto.DialogueCollectionResponse, error)
	GetStats() (*dto.ContentStatsResponse, error)
}

type ProgressServiceInterface interface {
	CompleteLesson(userID string, req dto.CompleteLessonRequest) (*dto.UserProgressResponse, error)
	AcknowledgeCompletion(req dto.CompleteLessonRequest) (*dto.CompletionAck, error)
	ListUserProgress(userID string) (*dto.ProgressCollectionResponse, error)
}

type SeederServiceInterface interface {
	Reconcile() (*dto.SeedResultResponse, error)
}
