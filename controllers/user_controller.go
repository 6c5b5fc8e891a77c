package controllers

import (
	"net/http"
	"strconv"

	"github.com/Dead0End/foodgram/models"
	"github.com/Dead0End/foodgram/services"
	"github.com/Dead0End/foodgram/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users     *services.UserService
	relations *services.RelationService
	upload    UploadFunc
}

func NewUserController(users *services.UserService, relations *services.RelationService, upload UploadFunc) *UserController {
	if upload == nil {
		upload = utils.UploadBase64Image
	}
	return &UserController{users: users, relations: relations, upload: upload}
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "user not found"})
		return 0, false
	}
	return uint(id), true
}

func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.users.Get(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	user, err := ctl.users.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) SetAvatar(c *gin.Context) {
	var body struct {
		Avatar string `json:"avatar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	url, err := ctl.upload(body.Avatar, "avatars")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	user, err := ctl.users.SetAvatar(c.GetUint("userID"), url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": user.Avatar})
}

func (ctl *UserController) DeleteAvatar(c *gin.Context) {
	if err := ctl.users.DeleteAvatar(c.GetUint("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *UserController) Subscribe(c *gin.Context) {
	authorID, ok := userIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("userID")
	if err := ctl.relations.Subscribe(userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	author, err := ctl.users.Get(authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctl.renderSubscription(*author))
}

func (ctl *UserController) Unsubscribe(c *gin.Context) {
	authorID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := ctl.relations.Unsubscribe(c.GetUint("userID"), authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type subscriptionResponse struct {
	ID           uint          `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Avatar       string        `json:"avatar"`
	IsSubscribed bool          `json:"is_subscribed"`
	Recipes      []recipeShort `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

func (ctl *UserController) renderSubscription(author models.User) subscriptionResponse {
	resp := subscriptionResponse{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       author.Avatar,
		IsSubscribed: true,
		Recipes:      []recipeShort{},
	}
	recipes, err := ctl.users.RecipesByAuthor(author.ID, 0)
	if err != nil {
		return resp
	}
	for _, r := range recipes {
		resp.Recipes = append(resp.Recipes, recipeShort{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}
	resp.RecipesCount = len(recipes)
	return resp
}

func (ctl *UserController) Subscriptions(c *gin.Context) {
	subs, err := ctl.relations.Subscriptions(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ctl.renderSubscription(sub.Author))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
}
