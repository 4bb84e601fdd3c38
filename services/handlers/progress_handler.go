package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Complete Lesson
// @Description Record a lesson completion. Authenticated users get a persisted progress record; anonymous callers get their submission echoed back without persistence.
// @Tags progress
// @Accept json
// @Produce json
// @Param completeRequest body dto.CompleteLessonRequest true "Completion payload"
// @Success 200 {object} shared.Response{data=dto.UserProgressResponse}
// @Failure 400 {object} shared.ValidationErrorResponse
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/progress/complete [post]
func (h *ProgressHandler) CompleteLesson(c *fiber.Ctx) error {
	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID, _ := c.Locals(shared.UserID).(string)
	if userID == "" {
		ack, err := h.progressSvc.AcknowledgeCompletion(req)
		if err != nil {
			return err
		}
		return shared.ResponseJSON(c, fiber.StatusOK, "Completion acknowledged", ack)
	}

	progress, err := h.progressSvc.CompleteLesson(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Completion recorded", progress)
}

// @Summary My Progress
// @Description Get the authenticated user's completions, most recent first. Anonymous callers get an empty collection.
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ProgressCollectionResponse}
// @Security BearerAuth
// @Router /api/v1/progress/me [get]
func (h *ProgressHandler) GetMyProgress(c *fiber.Ctx) error {
	userID, _ := c.Locals(shared.UserID).(string)

	progress, err := h.progressSvc.ListUserProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}
