package models

import "time"

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:255;not null" json:"display_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'teacher'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
