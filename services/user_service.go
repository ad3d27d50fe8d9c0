package services

import (
	"errors"
	"strings"

	"limo-backend/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user_not_found")

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetByID(id uint) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(email string) (models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("id ASC").Find(&users).Error
	return users, err
}

// UpdateProfile lets a user change their own contact fields. Credentials,
// role and the verified flag are not reachable through this path.
func (s *UserService) UpdateProfile(id uint, updates map[string]interface{}) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return models.User{}, err
	}

	allowed := map[string]bool{
		"first_name":   true,
		"last_name":    true,
		"display_name": true,
		"phone":        true,
	}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return user, nil
	}

	if err := s.DB.Model(&user).Updates(filtered).Error; err != nil {
		return models.User{}, err
	}
	return s.GetByID(id)
}
