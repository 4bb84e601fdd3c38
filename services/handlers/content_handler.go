package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List Scenes
// @Description Get all scenes with their lesson counts
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.SceneCollectionResponse}
// @Router /api/v1/scenes [get]
func (h *ContentHandler) ListScenes(c *fiber.Ctx) error {
	scenes, err := h.contentSvc.ListScenes()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", scenes)
}

// @Summary Get Scene
// @Description Get a scene with its lessons, phrases and dialogues
// @Tags content
// @Accept json
// @Produce json
// @Param sceneId path string true "Scene ID"
// @Success 200 {object} shared.Response{data=dto.SceneDetailResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/scenes/{sceneId} [get]
func (h *ContentHandler) GetScene(c *fiber.Ctx) error {
	sceneID := c.Params("sceneId")

	scene, err := h.contentSvc.GetScene(sceneID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", scene)
}

// @Summary List Scene Lessons
// @Description Get the lessons belonging to a scene
// @Tags content
// @Accept json
// @Produce json
// @Param sceneId path string true "Scene ID"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/scenes/{sceneId}/lessons [get]
func (h *ContentHandler) ListSceneLessons(c *fiber.Ctx) error {
	sceneID := c.Params("sceneId")

	lessons, err := h.contentSvc.ListLessons(sceneID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary List Lessons
// @Description Get all lessons across scenes
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons [get]
func (h *ContentHandler) ListLessons(c *fiber.Ctx) error {
	lessons, err := h.contentSvc.ListLessons("")
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Get Lesson
// @Description Get a lesson with its assigned phrases and dialogue lines
// @Tags content
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonDetailResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	lesson, err := h.contentSvc.GetLesson(lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// @Summary List Phrases
// @Description Get phrases, optionally filtered by scene and/or lesson
// @Tags content
// @Accept json
// @Produce json
// @Param scene query string false "Filter by scene ID"
// @Param lesson query string false "Filter by lesson ID"
// @Success 200 {object} shared.Response{data=dto.PhraseCollectionResponse}
// @Router /api/v1/phrases [get]
func (h *ContentHandler) ListPhrases(c *fiber.Ctx) error {
	var filter dto.ContentFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	phrases, err := h.contentSvc.ListPhrases(filter)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", phrases)
}

// @Summary List Dialogues
// @Description Get dialogue lines in conversation order, optionally filtered by scene and/or lesson
// @Tags content
// @Accept json
// @Produce json
// @Param scene query string false "Filter by scene ID"
// @Param lesson query string false "Filter by lesson ID"
// @Success 200 {object} shared.Response{data=dto.DialogueCollectionResponse}
// @Router /api/v1/dialogues [get]
func (h *ContentHandler) ListDialogues(c *fiber.Ctx) error {
	var filter dto.ContentFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	dialogues, err := h.contentSvc.ListDialogues(filter)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dialogues)
}

// @Summary Content Stats
// @Description Get row counts per content type
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ContentStatsResponse}
// @Router /api/v1/content/stats [get]
func (h *ContentHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.contentSvc.GetStats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}
