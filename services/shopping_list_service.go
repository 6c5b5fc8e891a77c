package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ShoppingListItem is one line of the aggregated list. Grouping is by
// (name, measurement_unit) — the shopper-visible identity — not by
// ingredient id.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate walks the user's cart recipes, sums ingredient amounts per
// (name, unit) pair and returns them sorted by name, then unit. Pure
// read; an empty cart yields an empty slice.
func (s *ShoppingListService) Aggregate(userID uint) ([]ShoppingListItem, error) {
	items := []ShoppingListItem{}
	err := s.db.
		Table("shopping_cart_entries").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart_entries.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderText formats the list the way the download endpoint serves it.
func RenderText(items []ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) — %d", item.Name, item.MeasurementUnit, item.Amount))
	}
	return strings.Join(lines, "\n")
}
