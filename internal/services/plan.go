package services

import (
	"errors"
	"strings"
	"time"

	"github.com/may5296007/Projetweb2/internal/models"

	"gorm.io/gorm"
)

type PlanService struct {
	db       *gorm.DB
	forms    *FormService
	renderer PlanRenderer
	blobs    BlobStore
}

func NewPlanService(db *gorm.DB, forms *FormService, renderer PlanRenderer, blobs BlobStore) *PlanService {
	return &PlanService{db: db, forms: forms, renderer: renderer, blobs: blobs}
}

type PlanInput struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Session    string `json:"session"`
}

type ResponseInput struct {
	QuestionID uint   `json:"question_id"`
	Answer     string `json:"answer"`
}

type PlanFilters struct {
	TeacherID uint
	Status    string
	Session   string
}

// CompletionStats drives the progress bar and the UI's advisory
// confirm when validated < total. Submission itself gates only on
// required answers.
type CompletionStats struct {
	Answered  int `json:"answered"`
	Validated int `json:"validated"`
	Total     int `json:"total"`
}

// Create binds a new draft plan to the currently active form.
func (s *PlanService) Create(teacher *models.User, input PlanInput) (*models.Plan, error) {
	form, err := s.forms.GetActiveForm()
	if err != nil {
		return nil, err
	}

	plan := models.Plan{
		FormID:      form.ID,
		TeacherID:   teacher.ID,
		TeacherName: teacher.DisplayName,
		CourseCode:  input.CourseCode,
		CourseName:  input.CourseName,
		Session:     input.Session,
		Status:      models.PlanStatusDraft,
	}
	if plan.Session == "" {
		plan.Session = form.Session
	}
	if err := s.db.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) GetByID(planID uint) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Validations").
		First(&plan, planID).Error
	if err != nil {
		return nil, &NotFoundError{Resource: "plan"}
	}
	return &plan, nil
}

// GetOwned loads a plan and checks it belongs to the given teacher.
func (s *PlanService) GetOwned(planID, teacherID uint) (*models.Plan, error) {
	plan, err := s.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan.TeacherID != teacherID {
		return nil, &NotFoundError{Resource: "plan"}
	}
	return plan, nil
}

func (s *PlanService) ListByTeacher(teacherID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *PlanService) ListAll(filters PlanFilters) ([]models.Plan, error) {
	query := s.db.Model(&models.Plan{})
	if filters.TeacherID != 0 {
		query = query.Where("teacher_id = ?", filters.TeacherID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Session != "" {
		query = query.Where("session = ?", filters.Session)
	}

	var plans []models.Plan
	if err := query.Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// SaveResponses replaces the plan's responses, in the bound form's
// question order, snapshotting question titles. The stored validation
// of any question whose answer changed is removed — and only that one.
func (s *PlanService) SaveResponses(planID, teacherID uint, inputs []ResponseInput) (*models.Plan, error) {
	plan, err := s.GetOwned(planID, teacherID)
	if err != nil {
		return nil, err
	}
	if !plan.Editable() {
		return nil, &TransitionError{From: plan.Status, Event: "edit"}
	}

	form, err := s.forms.GetFormByID(plan.FormID)
	if err != nil {
		return nil, err
	}

	answers := make(map[uint]string, len(inputs))
	for _, in := range inputs {
		answers[in.QuestionID] = in.Answer
	}
	previous := make(map[uint]string, len(plan.Responses))
	for _, resp := range plan.Responses {
		previous[resp.QuestionID] = resp.Answer
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Response{}).Error; err != nil {
			return err
		}

		for i, q := range form.Questions {
			answer, ok := answers[q.ID]
			if !ok {
				answer = previous[q.ID]
			}
			resp := models.Response{
				PlanID:        planID,
				QuestionID:    q.ID,
				QuestionTitle: q.Title,
				Answer:        answer,
				OrderNum:      i,
			}
			if err := tx.Create(&resp).Error; err != nil {
				return err
			}

			if old, had := previous[q.ID]; had && old != answer {
				if err := tx.Where("plan_id = ? AND question_id = ?", planID, q.ID).
					Delete(&models.Validation{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.Plan{}).Where("id = ?", planID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(planID)
}

// Stats computes completion counters for a plan against its form.
func (s *PlanService) Stats(plan *models.Plan, form *models.Form) CompletionStats {
	return computeStats(form.Questions, plan.Responses, plan.Validations)
}

func computeStats(questions []models.Question, responses []models.Response, validations []models.Validation) CompletionStats {
	answered := 0
	byQuestion := make(map[uint]string, len(responses))
	for _, resp := range responses {
		byQuestion[resp.QuestionID] = resp.Answer
	}
	for _, q := range questions {
		if strings.TrimSpace(byQuestion[q.ID]) != "" {
			answered++
		}
	}

	validated := 0
	seen := make(map[uint]bool, len(validations))
	for _, v := range validations {
		seen[v.QuestionID] = true
	}
	for _, q := range questions {
		if seen[q.ID] {
			validated++
		}
	}

	return CompletionStats{Answered: answered, Validated: validated, Total: len(questions)}
}

func missingRequired(questions []models.Question, responses []models.Response) []uint {
	byQuestion := make(map[uint]string, len(responses))
	for _, resp := range responses {
		byQuestion[resp.QuestionID] = resp.Answer
	}

	var missing []uint
	for _, q := range questions {
		if q.Required && strings.TrimSpace(byQuestion[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Submit moves a draft or revision plan to submitted. Every required
// question must hold a non-blank answer, and the PDF must render and
// store before any state changes; an ExportError leaves the plan in
// its pre-submit state so the teacher can retry.
func (s *PlanService) Submit(planID, teacherID uint) (*models.Plan, error) {
	plan, err := s.GetOwned(planID, teacherID)
	if err != nil {
		return nil, err
	}
	if plan.Status != models.PlanStatusDraft && plan.Status != models.PlanStatusRevision {
		return nil, &TransitionError{From: plan.Status, Event: "submit"}
	}

	form, err := s.forms.GetFormByID(plan.FormID)
	if err != nil {
		return nil, err
	}

	if missing := missingRequired(form.Questions, plan.Responses); len(missing) > 0 {
		return nil, &IncompleteSubmissionError{MissingQuestionIDs: missing}
	}

	data, err := s.renderer.Render(plan, form)
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	name := ExportFileName(plan.TeacherName, plan.CourseCode, time.Now())
	url, err := s.blobs.Store(data, name)
	if err != nil {
		return nil, &ExportError{Err: err}
	}

	now := time.Now()
	err = s.db.Model(&models.Plan{}).Where("id = ?", planID).
		Updates(map[string]interface{}{
			"status":       models.PlanStatusSubmitted,
			"submitted_at": now,
			"pdf_url":      url,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.GetByID(planID)
}

// Approve is admin-initiated and only legal from submitted.
func (s *PlanService) Approve(planID uint) (*models.Plan, error) {
	return s.review(planID, models.PlanStatusApproved, "")
}

// RequestRevision is admin-initiated, only legal from submitted, and
// requires comment text; it hands edit rights back to the teacher.
func (s *PlanService) RequestRevision(planID uint, comments string) (*models.Plan, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, &MissingCommentError{}
	}
	return s.review(planID, models.PlanStatusRevision, comments)
}

func (s *PlanService) review(planID uint, status, comments string) (*models.Plan, error) {
	plan, err := s.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != models.PlanStatusSubmitted {
		event := "approve"
		if status == models.PlanStatusRevision {
			event = "request revision of"
		}
		return nil, &TransitionError{From: plan.Status, Event: event}
	}

	updates := map[string]interface{}{
		"status":      status,
		"reviewed_at": time.Now(),
	}
	if comments != "" {
		updates["admin_comments"] = comments
	}
	if err := s.db.Model(&models.Plan{}).Where("id = ?", planID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(planID)
}

// Delete removes a plan; only drafts can be deleted.
func (s *PlanService) Delete(planID, teacherID uint) error {
	plan, err := s.GetOwned(planID, teacherID)
	if err != nil {
		return err
	}
	if plan.Status != models.PlanStatusDraft {
		return &TransitionError{From: plan.Status, Event: "delete"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Validation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plan{}, planID).Error
	})
}

// FindQuestion resolves one of the plan's form questions, for the
// validation endpoint.
func (s *PlanService) FindQuestion(plan *models.Plan, questionID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.Where("id = ? AND form_id = ?", questionID, plan.FormID).First(&question).Error
	if err != nil {
		return nil, &NotFoundError{Resource: "question"}
	}
	return &question, nil
}

// ResponseAnswer returns the saved answer for a question of the plan.
func ResponseAnswer(plan *models.Plan, questionID uint) (string, bool) {
	for _, resp := range plan.Responses {
		if resp.QuestionID == questionID {
			return resp.Answer, true
		}
	}
	return "", false
}

var ErrEmptyAnswer = errors.New("an answer is required before validation")
