package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Dead0End/foodgram/apperr"

	"github.com/gin-gonic/gin"
)

// respondError is the single place service errors become HTTP statuses.
func respondError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
		return
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"errors": err.Error()})
	case apperr.KindAlreadyExists, apperr.KindSelfReference, apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
