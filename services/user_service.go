package services

import (
	"errors"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d does not exist", userID)
		}
		return nil, err
	}
	return &user, nil
}

// SetAvatar stores the already-uploaded image reference on the profile.
func (s *UserService) SetAvatar(userID uint, avatarURL string) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatarURL
	if err := s.db.Model(user).Update("avatar", avatarURL).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteAvatar(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return apperr.NotFound("no avatar set")
	}
	return s.db.Model(user).Update("avatar", "").Error
}

// RecipesByAuthor backs the subscription feed: each followed author is
// rendered with their recipes.
func (s *UserService) RecipesByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	q := s.db.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("author_id = ?", authorID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []models.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}
