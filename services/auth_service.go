package services

import (
	"errors"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"
	"github.com/Dead0End/foodgram/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.db.Create(user).Error; err != nil {
		if apperr.IsDuplicate(err) {
			return nil, apperr.AlreadyExists("email or username already taken")
		}
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a JWT. Wrong email and wrong
// password are indistinguishable to the caller on purpose.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Forbidden("invalid credentials")
		}
		return "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", apperr.Forbidden("invalid credentials")
	}
	return utils.GenerateJWT(user.ID, user.Email)
}
