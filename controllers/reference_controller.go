package controllers

import (
	"net/http"
	"strconv"

	"github.com/Dead0End/foodgram/services"

	"github.com/gin-gonic/gin"
)

type ReferenceController struct {
	reference *services.ReferenceService
}

func NewReferenceController(reference *services.ReferenceService) *ReferenceController {
	return &ReferenceController{reference: reference}
}

func (ctl *ReferenceController) ListTags(c *gin.Context) {
	tags, err := ctl.reference.ListTags()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctl *ReferenceController) GetTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "tag not found"})
		return
	}
	tag, err := ctl.reference.GetTag(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (ctl *ReferenceController) ListIngredients(c *gin.Context) {
	ingredients, err := ctl.reference.ListIngredients(c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (ctl *ReferenceController) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "ingredient not found"})
		return
	}
	ingredient, err := ctl.reference.GetIngredient(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
