package models

import "time"

// MinQuestionsToActivate is the hard minimum before a form can become
// the active form presented to teachers.
const MinQuestionsToActivate = 10

type Form struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Session     string     `gorm:"size:100" json:"session"`
	Department  string     `gorm:"size:255" json:"department"`
	IsActive    bool       `gorm:"not null;default:false;index" json:"is_active"`
	Questions   []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
