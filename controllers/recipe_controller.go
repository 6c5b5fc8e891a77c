package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dead0End/foodgram/models"
	"github.com/Dead0End/foodgram/services"
	"github.com/Dead0End/foodgram/utils"

	"github.com/gin-gonic/gin"
)

// UploadFunc stores an incoming image payload and returns the reference
// kept on the recipe. Swapped for a stub in tests.
type UploadFunc func(dataURL, prefix string) (string, error)

type RecipeController struct {
	recipes   *services.RecipeService
	relations *services.RelationService
	lists     *services.ShoppingListService
	links     *services.ShortLinkService
	upload    UploadFunc
}

func NewRecipeController(
	recipes *services.RecipeService,
	relations *services.RelationService,
	lists *services.ShoppingListService,
	links *services.ShortLinkService,
	upload UploadFunc,
) *RecipeController {
	if upload == nil {
		upload = utils.UploadBase64Image
	}
	return &RecipeController{
		recipes:   recipes,
		relations: relations,
		lists:     lists,
		links:     links,
		upload:    upload,
	}
}

type recipeRequest struct {
	Ingredients []services.IngredientLine `json:"ingredients"`
	Tags        []uint                    `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
}

type ingredientLineResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type userResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type recipeResponse struct {
	ID               uint                     `json:"id"`
	Tags             []models.Tag             `json:"tags"`
	Author           userResponse             `json:"author"`
	Ingredients      []ingredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
	CreatedAt        time.Time                `json:"created_at"`
}

// recipeShort is the compact shape returned from favorite/cart adds.
type recipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func (ctl *RecipeController) renderUser(viewerID uint, u models.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
	if viewerID != 0 && viewerID != u.ID {
		resp.IsSubscribed, _ = ctl.relations.IsSubscribed(viewerID, u.ID)
	}
	return resp
}

func (ctl *RecipeController) renderRecipe(viewerID uint, r *models.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:          r.ID,
		Tags:        r.Tags,
		Author:      ctl.renderUser(viewerID, r.Author),
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		CreatedAt:   r.CreatedAt,
	}
	resp.Ingredients = make([]ingredientLineResponse, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, ingredientLineResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	if viewerID != 0 {
		resp.IsFavorited, _ = ctl.recipes.IsFavorited(viewerID, r.ID)
		resp.IsInShoppingCart, _ = ctl.recipes.IsInCart(viewerID, r.ID)
	}
	return resp
}

func recipeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "recipe not found"})
		return 0, false
	}
	return uint(id), true
}

// resolveImage turns a "data:" payload into a stored reference; an
// already-stored URL passes through untouched.
func (ctl *RecipeController) resolveImage(image string) (string, error) {
	if strings.HasPrefix(image, "data:") {
		return ctl.upload(image, "recipes")
	}
	return image, nil
}

func (ctl *RecipeController) toInput(body recipeRequest) (services.RecipeInput, error) {
	image, err := ctl.resolveImage(body.Image)
	if err != nil {
		return services.RecipeInput{}, err
	}
	return services.RecipeInput{
		Name:        body.Name,
		Text:        body.Text,
		Image:       image,
		CookingTime: body.CookingTime,
		TagIDs:      body.Tags,
		Ingredients: body.Ingredients,
	}, nil
}

func (ctl *RecipeController) Create(c *gin.Context) {
	var body recipeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	in, err := ctl.toInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	recipe, err := ctl.recipes.Create(c.GetUint("userID"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctl.renderRecipe(c.GetUint("userID"), recipe))
}

func (ctl *RecipeController) Update(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	var body recipeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	in, err := ctl.toInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	recipe, err := ctl.recipes.Update(recipeID, c.GetUint("userID"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.renderRecipe(c.GetUint("userID"), recipe))
}

func (ctl *RecipeController) Delete(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := ctl.recipes.Delete(recipeID, c.GetUint("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *RecipeController) Get(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	recipe, err := ctl.recipes.Get(recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.renderRecipe(c.GetUint("userID"), recipe))
}

func (ctl *RecipeController) List(c *gin.Context) {
	viewerID := c.GetUint("userID")

	filter := services.ListFilter{TagSlugs: c.QueryArray("tags")}
	if v, err := strconv.ParseUint(c.Query("author"), 10, 32); err == nil {
		filter.AuthorID = uint(v)
	}
	if viewerID != 0 {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = viewerID
		}
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = v
	}

	recipes, err := ctl.recipes.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]recipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, ctl.renderRecipe(viewerID, &recipes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
}

func (ctl *RecipeController) addRelation(c *gin.Context, add func(userID, recipeID uint) error) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := add(c.GetUint("userID"), recipeID); err != nil {
		respondError(c, err)
		return
	}
	recipe, err := ctl.recipes.Get(recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	})
}

func (ctl *RecipeController) removeRelation(c *gin.Context, remove func(userID, recipeID uint) error) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := remove(c.GetUint("userID"), recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *RecipeController) Favorite(c *gin.Context) {
	ctl.addRelation(c, ctl.relations.AddFavorite)
}

func (ctl *RecipeController) Unfavorite(c *gin.Context) {
	ctl.removeRelation(c, ctl.relations.RemoveFavorite)
}

func (ctl *RecipeController) AddToShoppingCart(c *gin.Context) {
	ctl.addRelation(c, ctl.relations.AddCartEntry)
}

func (ctl *RecipeController) RemoveFromShoppingCart(c *gin.Context) {
	ctl.removeRelation(c, ctl.relations.RemoveCartEntry)
}

func (ctl *RecipeController) DownloadShoppingCart(c *gin.Context) {
	items, err := ctl.lists.Aggregate(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.RenderText(items)))
}

func (ctl *RecipeController) GetShortLink(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}
	link, err := ctl.links.Generate(recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": link})
}

// ResolveShortLink handles GET /s/:code with a redirect to the canonical
// recipe, or a 404 when the code decodes to nothing.
func (ctl *RecipeController) ResolveShortLink(c *gin.Context) {
	recipeID, err := ctl.links.Resolve(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/api/recipes/"+strconv.FormatUint(uint64(recipeID), 10))
}
