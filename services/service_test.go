package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Dead0End/foodgram/config"
	"github.com/Dead0End/foodgram/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the real
// schema. The pool is pinned to one connection so the shared-cache
// memory database behaves under concurrent test goroutines.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:foodgram_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

// validInput returns a well-formed RecipeInput over freshly seeded
// reference data.
func validInput(t *testing.T, db *gorm.DB) RecipeInput {
	t.Helper()
	tag := seedTag(t, db, fmt.Sprintf("tag-%d", testDBSeq.Add(1)))
	ing := seedIngredient(t, db, fmt.Sprintf("ing-%d", testDBSeq.Add(1)), "g")
	return RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "https://media.example.com/recipes/1.png",
		CookingTime: 15,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientLine{{IngredientID: ing.ID, Amount: 2}},
	}
}
