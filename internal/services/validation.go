package services

import (
	"log"

	"github.com/may5296007/Projetweb2/internal/models"

	"gorm.io/gorm"
)

// AnswerValidator evaluates one answer against one question's rule.
// Implemented by RemoteValidator and FallbackAnalyzer.
type AnswerValidator interface {
	Validate(question *models.Question, answer string) (*ValidationResult, error)
}

// ValidationService tries the remote reviewer once and absorbs any
// failure into the deterministic analyzer, so validation is total over
// non-empty answers.
type ValidationService struct {
	db       *gorm.DB
	remote   AnswerValidator
	fallback *FallbackAnalyzer
}

func NewValidationService(db *gorm.DB, remote AnswerValidator) *ValidationService {
	return &ValidationService{
		db:       db,
		remote:   remote,
		fallback: NewFallbackAnalyzer(),
	}
}

// Evaluate runs the remote-or-fallback strategy without touching
// storage.
func (s *ValidationService) Evaluate(question *models.Question, answer string) *ValidationResult {
	if s.remote != nil {
		result, err := s.remote.Validate(question, answer)
		if err == nil {
			return result
		}
		log.Printf("remote validation failed, using local analyzer: %v", err)
	}
	return s.fallback.Analyze(question, answer)
}

// ValidateResponse evaluates the saved answer for one question of a
// plan and upserts the stored validation for it.
func (s *ValidationService) ValidateResponse(plan *models.Plan, question *models.Question, answer string) (*models.Validation, error) {
	result := s.Evaluate(question, answer)

	validation := models.Validation{
		PlanID:       plan.ID,
		QuestionID:   question.ID,
		Status:       result.Status,
		Positives:    result.Positives,
		Improvements: result.Improvements,
		Suggestion:   result.Suggestion,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ? AND question_id = ?", plan.ID, question.ID).
			Delete(&models.Validation{}).Error; err != nil {
			return err
		}
		return tx.Create(&validation).Error
	})
	if err != nil {
		return nil, err
	}
	return &validation, nil
}
