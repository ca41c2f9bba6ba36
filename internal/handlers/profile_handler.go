package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/personality-assessment/internal/models"
	"alfredoptarigan/personality-assessment/internal/repositories"
)

type ProfileHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewProfileHandler(candidateRepo repositories.CandidateRepository) *ProfileHandler {
	return &ProfileHandler{
		candidateRepo: candidateRepo,
	}
}

// HandleGetProfile handles GET /personality-profile. With an email query
// parameter it returns that candidate's trait record; without one it lists
// every candidate.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return h.listCandidates(c)
	}

	candidate, err := h.candidateRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up candidate",
		})
	}

	return c.JSON(models.ProfileResponse{
		Email:       candidate.Email,
		TraitScores: candidate.Traits,
	})
}

func (h *ProfileHandler) listCandidates(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, candidate := range candidates {
		summaries = append(summaries, models.CandidateSummary{
			Name:   candidate.Name,
			Email:  candidate.Email,
			Traits: candidate.Traits,
		})
	}

	return c.JSON(summaries)
}
