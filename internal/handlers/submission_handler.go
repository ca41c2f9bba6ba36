package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/personality-assessment/internal/models"
	"alfredoptarigan/personality-assessment/internal/repositories"
	"alfredoptarigan/personality-assessment/internal/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// HandleSubmit handles POST /submit_response
func (h *SubmissionHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.SubmitRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	traits, err := h.submissionService.Submit(c.UserContext(), req.Name, req.Email, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email already exists. Please use a different email.",
			})
		case errors.Is(err, services.ErrUpstream):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("API request failed: %v", err),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("Database error: %v", err),
			})
		}
	}

	return c.JSON(models.SubmitResponse{
		Message: "Response submitted successfully",
		Traits:  *traits,
	})
}
