package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateShoppingList(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db, 32767)
	relations := NewRelationService(db)
	lists := NewShoppingListService(db)

	author := seedUser(t, db, "author")
	shopper := seedUser(t, db, "shopper")

	tag := seedTag(t, db, "baking")
	sugar := seedIngredient(t, db, "sugar", "g")
	flour := seedIngredient(t, db, "flour", "kg")

	recipe1, err := recipes.Create(author.ID, RecipeInput{
		Name: "Syrup", Text: "Boil.", Image: "img", CookingTime: 10,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientLine{{IngredientID: sugar.ID, Amount: 5}},
	})
	require.NoError(t, err)

	recipe2, err := recipes.Create(author.ID, RecipeInput{
		Name: "Cake", Text: "Bake.", Image: "img", CookingTime: 45,
		TagIDs: []uint{tag.ID},
		Ingredients: []IngredientLine{
			{IngredientID: sugar.ID, Amount: 10},
			{IngredientID: flour.ID, Amount: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, relations.AddCartEntry(shopper.ID, recipe1.ID))
	require.NoError(t, relations.AddCartEntry(shopper.ID, recipe2.ID))

	items, err := lists.Aggregate(shopper.ID)
	require.NoError(t, err)

	// Summed across recipes, sorted by name then unit.
	assert.Equal(t, []ShoppingListItem{
		{Name: "flour", MeasurementUnit: "kg", Amount: 1},
		{Name: "sugar", MeasurementUnit: "g", Amount: 15},
	}, items)
}

func TestAggregateGroupsByNameAndUnit(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db, 32767)
	relations := NewRelationService(db)
	lists := NewShoppingListService(db)

	author := seedUser(t, db, "author")
	shopper := seedUser(t, db, "shopper")

	tag := seedTag(t, db, "drinks")
	milkMl := seedIngredient(t, db, "milk", "ml")
	milkG := seedIngredient(t, db, "milk", "g")

	recipe, err := recipes.Create(author.ID, RecipeInput{
		Name: "Latte", Text: "Steam.", Image: "img", CookingTime: 5,
		TagIDs: []uint{tag.ID},
		Ingredients: []IngredientLine{
			{IngredientID: milkMl.ID, Amount: 200},
			{IngredientID: milkG.ID, Amount: 30},
		},
	})
	require.NoError(t, err)
	require.NoError(t, relations.AddCartEntry(shopper.ID, recipe.ID))

	items, err := lists.Aggregate(shopper.ID)
	require.NoError(t, err)

	// Same name, different unit: two lines, unit breaks the tie.
	assert.Equal(t, []ShoppingListItem{
		{Name: "milk", MeasurementUnit: "g", Amount: 30},
		{Name: "milk", MeasurementUnit: "ml", Amount: 200},
	}, items)
}

func TestAggregateEmptyCart(t *testing.T) {
	db := newTestDB(t)
	lists := NewShoppingListService(db)
	shopper := seedUser(t, db, "shopper")

	items, err := lists.Aggregate(shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestRenderText(t *testing.T) {
	text := RenderText([]ShoppingListItem{
		{Name: "flour", MeasurementUnit: "kg", Amount: 1},
		{Name: "sugar", MeasurementUnit: "g", Amount: 15},
	})
	assert.Equal(t, "flour (kg) — 1\nsugar (g) — 15", text)
}
