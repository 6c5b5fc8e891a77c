package models

import "time"

// The three user↔target relations below share one shape: a row whose
// (user, target) pair is unique at the storage layer. That composite
// unique index is the concurrency-correctness mechanism — concurrent
// adds race on the insert and the loser gets a constraint violation,
// not a duplicate row. None of them carry a soft-delete column: a
// removed relation must be re-addable immediately.

type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorite_user_recipe;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_favorite_user_recipe;not null"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type ShoppingCartEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_recipe;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_cart_user_recipe;not null"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// Subscription links a reader to an author. user == author is rejected
// before the write ever happens.
type Subscription struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_subscription_user_author;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `gorm:"uniqueIndex:idx_subscription_user_author;not null"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
