package services

import (
	"errors"

	"github.com/may5296007/Projetweb2/internal/models"

	"gorm.io/gorm"
)

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

type FormInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Session     string `json:"session"`
	Department  string `json:"department"`
}

type QuestionInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Required    *bool  `json:"required"`
	Placeholder string `json:"placeholder"`
	AIRule      string `json:"ai_rule"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
}

func (s *FormService) GetForms() ([]models.Form, error) {
	var forms []models.Form
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (s *FormService) GetFormByID(formID uint) (*models.Form, error) {
	var form models.Form
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&form, formID).Error
	if err != nil {
		return nil, &NotFoundError{Resource: "form"}
	}
	return &form, nil
}

// GetActiveForm returns the single form currently presented to
// teachers for new plans.
func (s *FormService) GetActiveForm() (*models.Form, error) {
	var form models.Form
	err := s.db.Where("is_active = ?", true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&form).Error
	if err != nil {
		return nil, &NotFoundError{Resource: "active form"}
	}
	return &form, nil
}

func (s *FormService) CreateForm(input FormInput) (*models.Form, error) {
	form := models.Form{
		Title:       input.Title,
		Description: input.Description,
		Session:     input.Session,
		Department:  input.Department,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *FormService) UpdateForm(formID uint, input FormInput) (*models.Form, error) {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		return nil, &NotFoundError{Resource: "form"}
	}

	form.Title = input.Title
	form.Description = input.Description
	form.Session = input.Session
	form.Department = input.Department
	if err := s.db.Save(&form).Error; err != nil {
		return nil, err
	}
	return s.GetFormByID(formID)
}

// DeleteForm removes a form and its questions. The active form cannot
// be deleted.
func (s *FormService) DeleteForm(formID uint) error {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		return &NotFoundError{Resource: "form"}
	}
	if form.IsActive {
		return errors.New("cannot delete the active form, deactivate it first")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&form).Error
	})
}

func (s *FormService) AddQuestion(formID uint, input QuestionInput) (*models.Question, error) {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		return nil, &NotFoundError{Resource: "form"}
	}

	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	var maxOrder int
	s.db.Model(&models.Question{}).Where("form_id = ?", formID).
		Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	question := models.Question{
		FormID:      formID,
		Title:       input.Title,
		Type:        questionType(input.Type),
		Required:    input.Required == nil || *input.Required,
		Placeholder: input.Placeholder,
		AIRule:      input.AIRule,
		MinLength:   input.MinLength,
		MaxLength:   input.MaxLength,
		OrderNum:    maxOrder + 1,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *FormService) UpdateQuestion(formID, questionID uint, input QuestionInput) (*models.Question, error) {
	var question models.Question
	err := s.db.Where("id = ? AND form_id = ?", questionID, formID).First(&question).Error
	if err != nil {
		return nil, &NotFoundError{Resource: "question"}
	}

	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	question.Title = input.Title
	question.Type = questionType(input.Type)
	if input.Required != nil {
		question.Required = *input.Required
	}
	question.Placeholder = input.Placeholder
	question.AIRule = input.AIRule
	question.MinLength = input.MinLength
	question.MaxLength = input.MaxLength
	if err := s.db.Save(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// RemoveQuestion deletes one question. Plans already referencing the
// id keep their responses; display falls back to the denormalized
// question title snapshot.
func (s *FormService) RemoveQuestion(formID, questionID uint) error {
	result := s.db.Where("id = ? AND form_id = ?", questionID, formID).Delete(&models.Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "question"}
	}
	return nil
}

// ReorderQuestion swaps the question at index with its neighbour in
// the given direction (-1 up, +1 down). Out-of-range targets are a
// no-op; Moved reports whether a swap happened.
type ReorderResult struct {
	Moved bool `json:"moved"`
}

func (s *FormService) ReorderQuestion(formID uint, index, direction int) (*ReorderResult, error) {
	if direction != -1 && direction != 1 {
		return nil, errors.New("direction must be -1 or 1")
	}

	var questions []models.Question
	err := s.db.Where("form_id = ?", formID).Order("order_num ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(questions) {
		return nil, &NotFoundError{Resource: "question"}
	}

	target := index + direction
	if target < 0 || target >= len(questions) {
		return &ReorderResult{Moved: false}, nil
	}

	a, b := questions[index], questions[target]
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Question{}).Where("id = ?", a.ID).
			Update("order_num", b.OrderNum).Error; err != nil {
			return err
		}
		return tx.Model(&models.Question{}).Where("id = ?", b.ID).
			Update("order_num", a.OrderNum).Error
	})
	if err != nil {
		return nil, err
	}
	return &ReorderResult{Moved: true}, nil
}

// Activate makes one form the system-wide active form. The guard is
// the hard minimum question count; the switch is a single conditional
// update so the collection can never end up with two active forms.
func (s *FormService) Activate(formID uint) (*models.Form, error) {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		return nil, &NotFoundError{Resource: "form"}
	}

	var count int64
	if err := s.db.Model(&models.Question{}).Where("form_id = ?", formID).Count(&count).Error; err != nil {
		return nil, err
	}
	if int(count) < models.MinQuestionsToActivate {
		return nil, &ActivationError{
			QuestionCount: int(count),
			Missing:       models.MinQuestionsToActivate - int(count),
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Form{}).
			Where("is_active = ? OR id = ?", true, formID).
			Update("is_active", gorm.Expr("id = ?", formID)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetFormByID(formID)
}

func (s *FormService) Deactivate(formID uint) error {
	result := s.db.Model(&models.Form{}).Where("id = ?", formID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "form"}
	}
	return nil
}

func questionType(t string) string {
	switch t {
	case models.QuestionTypeText, models.QuestionTypeNumber, models.QuestionTypeDate:
		return t
	default:
		return models.QuestionTypeTextarea
	}
}

func validateQuestionInput(input QuestionInput) error {
	if input.Title == "" {
		return errors.New("question title is required")
	}
	if input.AIRule == "" {
		return errors.New("a validation rule is required")
	}
	if input.MinLength < 0 || input.MaxLength < 0 {
		return errors.New("length bounds cannot be negative")
	}
	if input.MaxLength > 0 && input.MinLength > input.MaxLength {
		return errors.New("min_length cannot exceed max_length")
	}
	return nil
}
