package models

import "time"

const (
	PlanStatusDraft     = "draft"
	PlanStatusSubmitted = "submitted"
	PlanStatusApproved  = "approved"
	PlanStatusRevision  = "revision"
)

type Plan struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	FormID        uint         `gorm:"not null;index" json:"form_id"`
	TeacherID     uint         `gorm:"not null;index" json:"teacher_id"`
	TeacherName   string       `gorm:"size:255;not null" json:"teacher_name"`
	CourseCode    string       `gorm:"size:50;not null" json:"course_code"`
	CourseName    string       `gorm:"size:255;not null" json:"course_name"`
	Session       string       `gorm:"size:100" json:"session"`
	Status        string       `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Responses     []Response   `gorm:"foreignKey:PlanID" json:"responses,omitempty"`
	Validations   []Validation `gorm:"foreignKey:PlanID" json:"validations,omitempty"`
	PDFURL        string       `gorm:"column:pdf_url;size:512" json:"pdf_url,omitempty"`
	AdminComments string       `gorm:"type:text" json:"admin_comments,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	SubmittedAt   *time.Time   `json:"submitted_at,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
}

// Editable reports whether the owning teacher may still change
// responses (draft and revision only; submitted/approved are
// read-only to the teacher).
func (p *Plan) Editable() bool {
	return p.Status == PlanStatusDraft || p.Status == PlanStatusRevision
}

type Response struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PlanID        uint   `gorm:"not null;uniqueIndex:idx_plan_question_response" json:"plan_id"`
	QuestionID    uint   `gorm:"not null;uniqueIndex:idx_plan_question_response" json:"question_id"`
	QuestionTitle string `gorm:"size:255;not null" json:"question_title"`
	Answer        string `gorm:"type:text" json:"answer"`
	OrderNum      int    `gorm:"not null" json:"order_num"`
}
