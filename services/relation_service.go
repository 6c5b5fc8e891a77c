package services

import (
	"errors"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"

	"gorm.io/gorm"
)

// RelationService is one engine for all three uniqueness-constrained
// user↔target links: favorites, shopping-cart entries, subscriptions.
//
// Add never does check-then-insert — that is racy under concurrent
// requests. It inserts and classifies the constraint violation: of two
// racing adds for the same pair exactly one insert lands, the other
// trips the (user, target) unique index and comes back AlreadyExists.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// relation describes one link kind to the shared add/remove machinery.
type relation struct {
	kind         string
	targetKind   string
	rejectSelf   bool
	targetModel  func() any
	newRow       func(userID, targetID uint) any
	whereDelete  string
	deletedModel func() any
}

var (
	favoriteRelation = relation{
		kind:        "favorite",
		targetKind:  "recipe",
		targetModel: func() any { return &models.Recipe{} },
		newRow: func(userID, targetID uint) any {
			return &models.Favorite{UserID: userID, RecipeID: targetID}
		},
		whereDelete:  "user_id = ? AND recipe_id = ?",
		deletedModel: func() any { return &models.Favorite{} },
	}

	cartRelation = relation{
		kind:        "shopping cart entry",
		targetKind:  "recipe",
		targetModel: func() any { return &models.Recipe{} },
		newRow: func(userID, targetID uint) any {
			return &models.ShoppingCartEntry{UserID: userID, RecipeID: targetID}
		},
		whereDelete:  "user_id = ? AND recipe_id = ?",
		deletedModel: func() any { return &models.ShoppingCartEntry{} },
	}

	subscriptionRelation = relation{
		kind:        "subscription",
		targetKind:  "user",
		rejectSelf:  true,
		targetModel: func() any { return &models.User{} },
		newRow: func(userID, targetID uint) any {
			return &models.Subscription{UserID: userID, AuthorID: targetID}
		},
		whereDelete:  "user_id = ? AND author_id = ?",
		deletedModel: func() any { return &models.Subscription{} },
	}
)

func (s *RelationService) add(r relation, userID, targetID uint) error {
	if r.rejectSelf && userID == targetID {
		return apperr.SelfReference("cannot subscribe to yourself")
	}

	if err := s.db.First(r.targetModel(), targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("%s %d does not exist", r.targetKind, targetID)
		}
		return err
	}

	if err := s.db.Create(r.newRow(userID, targetID)).Error; err != nil {
		if apperr.IsDuplicate(err) {
			return apperr.AlreadyExists("%s already exists", r.kind)
		}
		return err
	}
	return nil
}

func (s *RelationService) remove(r relation, userID, targetID uint) error {
	res := s.db.Where(r.whereDelete, userID, targetID).Delete(r.deletedModel())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("%s does not exist", r.kind)
	}
	return nil
}

func (s *RelationService) AddFavorite(userID, recipeID uint) error {
	return s.add(favoriteRelation, userID, recipeID)
}

func (s *RelationService) RemoveFavorite(userID, recipeID uint) error {
	return s.remove(favoriteRelation, userID, recipeID)
}

func (s *RelationService) AddCartEntry(userID, recipeID uint) error {
	return s.add(cartRelation, userID, recipeID)
}

func (s *RelationService) RemoveCartEntry(userID, recipeID uint) error {
	return s.remove(cartRelation, userID, recipeID)
}

func (s *RelationService) Subscribe(userID, authorID uint) error {
	return s.add(subscriptionRelation, userID, authorID)
}

func (s *RelationService) Unsubscribe(userID, authorID uint) error {
	return s.remove(subscriptionRelation, userID, authorID)
}

// Subscriptions lists the authors the user follows, authors' recipes
// included for the subscription feed.
func (s *RelationService) Subscriptions(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.
		Preload("Author").
		Where("user_id = ?", userID).
		Order("id").
		Find(&subs).Error
	return subs, err
}

func (s *RelationService) IsSubscribed(userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}
