package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/personality-assessment/internal/models"
	"alfredoptarigan/personality-assessment/internal/repositories"
)

// SubmissionService runs the full submission pipeline: validate, duplicate
// check, AI scoring, trait extraction, persistence, live broadcast. Either
// the candidate ends up durably stored (with a best-effort broadcast) or
// nothing is stored.
type SubmissionService interface {
	Submit(ctx context.Context, name, email, responseText string) (*models.TraitScores, error)
}

type submissionService struct {
	candidateRepo repositories.CandidateRepository
	scorer        ScoringService
	notifier      Notifier
}

func NewSubmissionService(
	candidateRepo repositories.CandidateRepository,
	scorer ScoringService,
	notifier Notifier,
) SubmissionService {
	return &submissionService{
		candidateRepo: candidateRepo,
		scorer:        scorer,
		notifier:      notifier,
	}
}

// Submit implements SubmissionService. Steps are strictly sequential; there
// is no retry at any stage.
func (s *submissionService) Submit(ctx context.Context, name, email, responseText string) (*models.TraitScores, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	log.Printf("📥 Received response submission for %s\n", email)

	// Fast-path duplicate check. The unique index on email is the real
	// guard against the concurrent-submission race.
	existing, err := s.candidateRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if existing != nil {
		log.Printf("⚠️  Email %s already exists. Rejecting request.\n", email)
		return nil, repositories.ErrDuplicateEmail
	}

	log.Println("🤖 Scoring response with AI...")
	rawText, err := s.scorer.Score(ctx, responseText)
	if err != nil {
		return nil, err
	}

	traits, defaulted := ExtractTraits(rawText)
	if len(defaulted) > 0 {
		log.Printf("⚠️  Using default scores for traits: %s\n", strings.Join(defaulted, ", "))
	}

	candidate := &models.Candidate{
		Name:   name,
		Email:  email,
		Traits: traits,
	}

	if err := s.candidateRepo.Create(candidate); err != nil {
		// Lost the duplicate race: a concurrent submission inserted the
		// same email between the pre-check and this insert.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, repositories.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.notifier.Broadcast(models.NewCandidateEvent(candidate.Name, candidate.Email, candidate.Traits))

	log.Printf("✅ Candidate %s saved successfully\n", candidate.Email)
	return &candidate.Traits, nil
}
