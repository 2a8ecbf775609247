package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"s7scheduling/scheduling"
	"s7scheduling/store"
	"s7scheduling/stripboard"
)

// respondError maps service errors to status codes. Anything unrecognised is
// a 500 with a generic message; the cause goes to the request log only.
func respondError(c *gin.Context, err error, notFound, fallback string) {
	var verr *scheduling.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error", "message": verr.Message})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, stripboard.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error", "message": err.Error()})
	case errors.Is(err, stripboard.ErrNoHandler):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Error", "message": err.Error()})
}

// paramID parses a uuid path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}
