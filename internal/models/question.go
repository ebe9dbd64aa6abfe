package models

const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeNumber   = "number"
	QuestionTypeDate     = "date"
)

type Question struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FormID      uint   `gorm:"not null;index" json:"form_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Type        string `gorm:"size:20;not null;default:'textarea'" json:"type"`
	Required    bool   `gorm:"not null;default:true" json:"required"`
	Placeholder string `gorm:"size:255" json:"placeholder"`
	AIRule      string `gorm:"type:text;not null" json:"ai_rule"`
	MinLength   int    `gorm:"not null;default:0" json:"min_length"`
	MaxLength   int    `gorm:"not null;default:0" json:"max_length"`
	OrderNum    int    `gorm:"not null" json:"order_num"`
}
