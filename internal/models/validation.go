package models

const (
	ValidationCompliant        = "Conforme"
	ValidationNeedsImprovement = "À améliorer"
	ValidationNonCompliant     = "Non conforme"
)

// Validation is the stored outcome of checking one answer against its
// question's rule. At most one exists per (plan, question); it is
// removed whenever the response's answer changes.
type Validation struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	PlanID       uint     `gorm:"not null;uniqueIndex:idx_plan_question_validation" json:"plan_id"`
	QuestionID   uint     `gorm:"not null;uniqueIndex:idx_plan_question_validation" json:"question_id"`
	Status       string   `gorm:"size:20;not null" json:"status"`
	Positives    []string `gorm:"serializer:json" json:"positives"`
	Improvements []string `gorm:"serializer:json" json:"improvements,omitempty"`
	Suggestion   string   `gorm:"type:text" json:"suggestion,omitempty"`
}
