package services

import (
	"errors"
	"fmt"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"
	"github.com/Dead0End/foodgram/utils"

	"gorm.io/gorm"
)

// ShortLinkService maps recipe ids to short paths and back. The code is
// a pure function of the id, so nothing is persisted and the mapping is
// stable across restarts.
type ShortLinkService struct {
	db         *gorm.DB
	siteDomain string
}

func NewShortLinkService(db *gorm.DB, siteDomain string) *ShortLinkService {
	return &ShortLinkService{db: db, siteDomain: siteDomain}
}

func (s *ShortLinkService) Generate(recipeID uint) (string, error) {
	if err := s.recipeExists(recipeID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/s/%s", s.siteDomain, utils.EncodeShortCode(uint64(recipeID))), nil
}

// Resolve decodes a short code back to the recipe id. Garbage codes and
// codes of recipes that do not exist both come back NotFound: the HTTP
// layer turns that into a 404, not a redirect.
func (s *ShortLinkService) Resolve(code string) (uint, error) {
	id, err := utils.DecodeShortCode(code)
	if err != nil {
		return 0, apperr.NotFound("unknown short link %q", code)
	}
	recipeID := uint(id)
	if err := s.recipeExists(recipeID); err != nil {
		return 0, err
	}
	return recipeID, nil
}

func (s *ShortLinkService) recipeExists(recipeID uint) error {
	var recipe models.Recipe
	if err := s.db.Select("id").First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("recipe %d does not exist", recipeID)
		}
		return err
	}
	return nil
}
