package main

import (
	"log"

	"github.com/Dead0End/foodgram/config"
	"github.com/Dead0End/foodgram/controllers"
	"github.com/Dead0End/foodgram/routes"
	"github.com/Dead0End/foodgram/services"
	"github.com/Dead0End/foodgram/utils"
)

func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := utils.InitS3(); err != nil {
		log.Fatalf("S3 init failed: %v", err)
	}

	recipeSvc := services.NewRecipeService(db, config.MaxCookingTime())
	relationSvc := services.NewRelationService(db)
	listSvc := services.NewShoppingListService(db)
	linkSvc := services.NewShortLinkService(db, config.SiteDomain())
	authSvc := services.NewAuthService(db)
	userSvc := services.NewUserService(db)
	refSvc := services.NewReferenceService(db)

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		Users:     controllers.NewUserController(userSvc, relationSvc, nil),
		Recipes:   controllers.NewRecipeController(recipeSvc, relationSvc, listSvc, linkSvc, nil),
		Reference: controllers.NewReferenceController(refSvc),
	})
	r.Run(":8080")
}
