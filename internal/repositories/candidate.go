package repositories

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"alfredoptarigan/personality-assessment/internal/models"
)

var (
	// ErrDuplicateEmail is returned when a candidate with the same email
	// already exists. The unique index on email is the actual guard; the
	// orchestrator's pre-check is only a fast path.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrCandidateNotFound is returned by GetByEmail when no row matches.
	ErrCandidateNotFound = errors.New("candidate not found")
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByEmail(email string) (*models.Candidate, error)
	GetByEmail(email string) (*models.Candidate, error)
	All() ([]models.Candidate, error)
	Averages() (*models.TraitScores, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// FindByEmail implements CandidateRepository. A missing candidate is not an
// error here; callers use it as a duplicate pre-check.
func (r *candidateRepository) FindByEmail(email string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("email = ?", email).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// GetByEmail implements CandidateRepository.
func (r *candidateRepository) GetByEmail(email string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("email = ?", email).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return &candidate, nil
}

// All implements CandidateRepository. Order is whatever the store returns.
func (r *candidateRepository) All() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// Averages implements CandidateRepository. Returns nil when there are no
// candidates; otherwise the per-trait arithmetic mean rounded to 2 decimals.
func (r *candidateRepository) Averages() (*models.TraitScores, error) {
	var count int64
	if err := r.db.Model(&models.Candidate{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	var averages models.TraitScores
	err := r.db.Model(&models.Candidate{}).
		Select(averagesSelect()).
		Scan(&averages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute averages: %w", err)
	}

	for _, name := range models.TraitNames {
		value, _ := averages.Get(name)
		averages.Set(name, Round2(value))
	}

	return &averages, nil
}

// averagesSelect builds the AVG clause from the canonical trait list, so the
// column aliases always line up with the TraitScores scan target.
func averagesSelect() string {
	parts := make([]string, 0, len(models.TraitNames))
	for _, name := range models.TraitNames {
		parts = append(parts, fmt.Sprintf("AVG(%s) AS %s", name, name))
	}
	return strings.Join(parts, ", ")
}

// Round2 rounds to 2 decimal places, matching the analytics contract.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
