package services

import (
	"errors"

	"github.com/may5296007/Projetweb2/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetTeachers lists every teacher account, for the admin review
// filters.
func (s *UserService) GetTeachers() ([]models.User, error) {
	var teachers []models.User
	err := s.db.Where("role = ?", models.RoleTeacher).
		Order("display_name ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

func (s *UserService) UpdateRole(userID uint, role string) (*models.User, error) {
	if role != models.RoleTeacher && role != models.RoleAdmin {
		return nil, errors.New("role must be teacher or admin")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, &NotFoundError{Resource: "user"}
	}

	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
