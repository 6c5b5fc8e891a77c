package routes

import (
	"github.com/Dead0End/foodgram/controllers"
	"github.com/Dead0End/foodgram/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Recipes   *controllers.RecipeController
	Reference *controllers.ReferenceController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
	}

	// Reference data is public and read-only.
	api.GET("/tags", ctl.Reference.ListTags)
	api.GET("/tags/:id", ctl.Reference.GetTag)
	api.GET("/ingredients", ctl.Reference.ListIngredients)
	api.GET("/ingredients/:id", ctl.Reference.GetIngredient)

	recipes := api.Group("/recipes")
	recipes.Use(middlewares.OptionalAuthMiddleware())
	{
		recipes.GET("", ctl.Recipes.List)
		recipes.GET("/:id", ctl.Recipes.Get)
		recipes.GET("/:id/get-link", ctl.Recipes.GetShortLink)
	}

	recipesAuth := api.Group("/recipes")
	recipesAuth.Use(middlewares.AuthMiddleware())
	{
		recipesAuth.POST("", ctl.Recipes.Create)
		recipesAuth.PATCH("/:id", ctl.Recipes.Update)
		recipesAuth.DELETE("/:id", ctl.Recipes.Delete)
		recipesAuth.POST("/:id/favorite", ctl.Recipes.Favorite)
		recipesAuth.DELETE("/:id/favorite", ctl.Recipes.Unfavorite)
		recipesAuth.POST("/:id/shopping_cart", ctl.Recipes.AddToShoppingCart)
		recipesAuth.DELETE("/:id/shopping_cart", ctl.Recipes.RemoveFromShoppingCart)
		recipesAuth.GET("/download_shopping_cart", ctl.Recipes.DownloadShoppingCart)
	}

	users := api.Group("/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/me", ctl.Users.Me)
		users.PUT("/me/avatar", ctl.Users.SetAvatar)
		users.DELETE("/me/avatar", ctl.Users.DeleteAvatar)
		users.GET("/subscriptions", ctl.Users.Subscriptions)
		users.GET("/:id", ctl.Users.Get)
		users.POST("/:id/subscribe", ctl.Users.Subscribe)
		users.DELETE("/:id/subscribe", ctl.Users.Unsubscribe)
	}

	r.GET("/s/:code", ctl.Recipes.ResolveShortLink)

	return r
}
