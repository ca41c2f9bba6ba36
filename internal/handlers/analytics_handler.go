package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/personality-assessment/internal/repositories"
)

type AnalyticsHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewAnalyticsHandler(candidateRepo repositories.CandidateRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		candidateRepo: candidateRepo,
	}
}

// HandleGetAnalytics handles GET /analytics
func (h *AnalyticsHandler) HandleGetAnalytics(c *fiber.Ctx) error {
	averages, err := h.candidateRepo.Averages()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute analytics",
		})
	}

	if averages == nil {
		return c.JSON(fiber.Map{
			"message":   "No candidates found",
			"analytics": fiber.Map{},
		})
	}

	return c.JSON(averages)
}
