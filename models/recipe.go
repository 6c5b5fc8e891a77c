package models

import "time"

type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	AuthorID    uint               `gorm:"index;not null" json:"-"`
	Author      User               `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	Name        string             `gorm:"size:256;not null" json:"name"`
	Text        string             `gorm:"not null" json:"text"`
	Image       string             `gorm:"not null" json:"image"`
	CookingTime int                `gorm:"type:smallint;not null" json:"cooking_time"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"-"`
}

// RecipeIngredient rows live and die with their recipe: they are only
// written inside a recipe create/update transaction, never one by one.
// No soft delete here — a lingering soft-deleted row would collide with
// the (recipe, ingredient) unique index on the next full replace.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"uniqueIndex:idx_recipe_ingredient;not null" json:"-"`
	IngredientID uint       `gorm:"uniqueIndex:idx_recipe_ingredient;not null" json:"id"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`
}
