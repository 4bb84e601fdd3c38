package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/shared"
)

type AdminHandler struct {
	contentSvc ContentServiceInterface
	seederSvc  SeederServiceInterface
}

func NewAdminHandler(contentSvc ContentServiceInterface, seederSvc SeederServiceInterface) *AdminHandler {
	return &AdminHandler{
		contentSvc: contentSvc,
		seederSvc:  seederSvc,
	}
}

// @Summary Reconcile Curriculum
// @Description Run the curriculum seeder against the configured curriculum file. Safe to run repeatedly.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.SeedResultResponse}
// @Security BearerAuth
// @Router /api/v1/admin/seed [post]
func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	result, err := h.seederSvc.Reconcile()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Curriculum reconciled", result)
}

// @Summary Create Scene
// @Description Create a new scene
// @Tags admin
// @Accept json
// @Produce json
// @Param sceneRequest body dto.CreateSceneRequest true "Scene payload"
// @Success 201 {object} shared.Response{data=dto.SceneResponse}
// @Failure 400 {object} shared.ValidationErrorResponse
// @Failure 409 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/scenes [post]
func (h *AdminHandler) CreateScene(c *fiber.Ctx) error {
	var req dto.CreateSceneRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	scene, err := h.contentSvc.CreateScene(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", scene)
}

// @Summary Delete Scene
// @Description Delete a scene and everything belonging to it: lessons, phrases, dialogues and progress records
// @Tags admin
// @Accept json
// @Produce json
// @Param sceneId path string true "Scene ID"
// @Success 200 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/scenes/{sceneId} [delete]
func (h *AdminHandler) DeleteScene(c *fiber.Ctx) error {
	sceneID := c.Params("sceneId")

	if err := h.contentSvc.DeleteScene(sceneID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Deleted", nil)
}

// @Summary Create Lesson
// @Description Create a new lesson within a scene
// @Tags admin
// @Accept json
// @Produce json
// @Param lessonRequest body dto.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Failure 400 {object} shared.ValidationErrorResponse
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/lessons [post]
func (h *AdminHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.contentSvc.CreateLesson(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", lesson)
}

// @Summary Delete Lesson
// @Description Delete a lesson together with its owned phrases, dialogues and progress records
// @Tags admin
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/lessons/{lessonId} [delete]
func (h *AdminHandler) DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	if err := h.contentSvc.DeleteLesson(lessonID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Deleted", nil)
}
