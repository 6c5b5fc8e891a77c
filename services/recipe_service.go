package services

import (
	"errors"
	"strings"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"

	"gorm.io/gorm"
)

// IngredientLine is one "this recipe uses this ingredient in this
// quantity" entry of a create/update request.
type IngredientLine struct {
	IngredientID uint `json:"id" binding:"required"`
	Amount       int  `json:"amount"`
}

// RecipeInput is the complete desired state of a recipe. Updates are
// replace-all: whatever tag and ingredient sets arrive here wholesale
// replace the previous ones, never merge with them.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string // stored reference, upload already happened
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientLine
}

type RecipeService struct {
	db             *gorm.DB
	maxCookingTime int
}

func NewRecipeService(db *gorm.DB, maxCookingTime int) *RecipeService {
	if maxCookingTime < 1 {
		maxCookingTime = 32767
	}
	return &RecipeService{db: db, maxCookingTime: maxCookingTime}
}

// validate aggregates every violation into one field-keyed error, so a
// client fixing a form sees all problems at once, and fails before any
// write happens.
func (s *RecipeService) validate(in RecipeInput) error {
	v := apperr.NewValidation()

	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "must not be empty")
	}
	if strings.TrimSpace(in.Text) == "" {
		v.Add("text", "must not be empty")
	}
	if in.Image == "" {
		v.Add("image", "must not be empty")
	}
	if in.CookingTime < 1 {
		v.Add("cooking_time", "must be at least 1")
	} else if in.CookingTime > s.maxCookingTime {
		v.Add("cooking_time", "must not exceed %d", s.maxCookingTime)
	}

	if len(in.TagIDs) == 0 {
		v.Add("tags", "add at least one tag")
	}
	seenTags := make(map[uint]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			v.Add("tags", "tag %d repeats", id)
		}
		seenTags[id] = true
	}

	if len(in.Ingredients) == 0 {
		v.Add("ingredients", "add at least one ingredient")
	}
	seenIngredients := make(map[uint]bool, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if seenIngredients[line.IngredientID] {
			v.Add("ingredients", "ingredient %d repeats", line.IngredientID)
		}
		seenIngredients[line.IngredientID] = true
		if line.Amount < 1 {
			v.Add("ingredients", "amount for ingredient %d must be at least 1", line.IngredientID)
		}
	}

	return v.Err()
}

func (s *RecipeService) resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := tx.Find(&tags, ids).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		found := make(map[uint]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperr.NotFound("tag %d does not exist", id)
			}
		}
	}
	return tags, nil
}

func (s *RecipeService) checkIngredientsExist(tx *gorm.DB, lines []IngredientLine) error {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.IngredientID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) == len(ids) {
		return nil
	}
	var existing []uint
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return err
	}
	found := make(map[uint]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	for _, id := range ids {
		if !found[id] {
			return apperr.NotFound("ingredient %d does not exist", id)
		}
	}
	return nil
}

func ingredientRows(recipeID uint, lines []IngredientLine) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	return rows
}

// Create persists the recipe row, its tag set and its ingredient lines
// as one transaction. A reader never observes the recipe with only some
// of its lines.
func (s *RecipeService) Create(authorID uint, in RecipeInput) (*models.Recipe, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Text:        in.Text,
		Image:       in.Image,
		CookingTime: in.CookingTime,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := s.checkIngredientsExist(tx, in.Ingredients); err != nil {
			return err
		}

		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		rows := ingredientRows(recipe.ID, in.Ingredients)
		if err := tx.Create(&rows).Error; err != nil {
			if apperr.IsDuplicate(err) {
				return apperr.AlreadyExists("duplicate ingredient in recipe")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID)
}

// Update overwrites the scalar fields and wholesale replaces the tag
// and ingredient sets: stale lines from the previous version must not
// survive an update that omits them.
func (s *RecipeService) Update(recipeID, editorID uint, in RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe %d does not exist", recipeID)
		}
		return nil, err
	}
	if recipe.AuthorID != editorID {
		return nil, apperr.Forbidden("only the author can edit this recipe")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := s.checkIngredientsExist(tx, in.Ingredients); err != nil {
			return err
		}

		scalars := map[string]any{
			"name":         in.Name,
			"text":         in.Text,
			"image":        in.Image,
			"cooking_time": in.CookingTime,
		}
		if err := tx.Model(&recipe).Updates(scalars).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		rows := ingredientRows(recipe.ID, in.Ingredients)
		if err := tx.Create(&rows).Error; err != nil {
			if apperr.IsDuplicate(err) {
				return apperr.AlreadyExists("duplicate ingredient in recipe")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID)
}

// Delete removes the recipe and every row hanging off it. The explicit
// child deletes keep the cascade driver-independent.
func (s *RecipeService) Delete(recipeID, editorID uint) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("recipe %d does not exist", recipeID)
		}
		return err
	}
	if recipe.AuthorID != editorID {
		return apperr.Forbidden("only the author can delete this recipe")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *RecipeService) Get(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe %d does not exist", recipeID)
		}
		return nil, err
	}
	return &recipe, nil
}

// ListFilter narrows List; zero value means "everything, newest first".
type ListFilter struct {
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint
	InCartOf    uint
	Limit       int
	Offset      int
}

func (s *RecipeService) List(filter ListFilter) ([]models.Recipe, error) {
	q := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC")

	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		sub := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if filter.FavoritedBy != 0 {
		sub := s.db.Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", filter.FavoritedBy)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if filter.InCartOf != 0 {
		sub := s.db.Model(&models.ShoppingCartEntry{}).
			Select("recipe_id").
			Where("user_id = ?", filter.InCartOf)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

// IsFavorited and IsInCart back the read-side flags on recipe payloads.
func (s *RecipeService) IsFavorited(userID, recipeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *RecipeService) IsInCart(userID, recipeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}
