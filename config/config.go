package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Dead0End/foodgram/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultMaxCookingTime fits the smallint column holding cooking_time.
const DefaultMaxCookingTime = 32767

func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.Subscription{},
	)
}

// MaxCookingTime reads RECIPES_MAX_COOKING_TIME, falling back to the
// column-width default.
func MaxCookingTime() int {
	if v := os.Getenv("RECIPES_MAX_COOKING_TIME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			return n
		}
	}
	return DefaultMaxCookingTime
}

// SiteDomain is the public origin short links are issued under.
func SiteDomain() string {
	if v := os.Getenv("SITE_DOMAIN"); v != "" {
		return v
	}
	return "http://localhost:8080"
}
