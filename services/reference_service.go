package services

import (
	"errors"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"

	"gorm.io/gorm"
)

// ReferenceService serves the shared read-only reference data: tags and
// ingredients. Nothing in this backend mutates them; they arrive via
// administration outside this service.
type ReferenceService struct {
	db *gorm.DB
}

func NewReferenceService(db *gorm.DB) *ReferenceService {
	return &ReferenceService{db: db}
}

func (s *ReferenceService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("name").Find(&tags).Error
	return tags, err
}

func (s *ReferenceService) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag %d does not exist", id)
		}
		return nil, err
	}
	return &tag, nil
}

// ListIngredients optionally narrows by a case-insensitive name prefix,
// the way the ingredient picker autocompletes.
func (s *ReferenceService) ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	q := s.db.Order("name")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}
	var ingredients []models.Ingredient
	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (s *ReferenceService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient %d does not exist", id)
		}
		return nil, err
	}
	return &ingredient, nil
}
