package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s7scheduling/models"
	"s7scheduling/scheduling"
)

const locationNotFound = "location not found"

func ListLocations(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locations, err := svc.ListLocations(c.Request.Context())
		if err != nil {
			respondError(c, err, locationNotFound, "failed to list locations")
			return
		}

		c.JSON(http.StatusOK, gin.H{"locations": locations, "total": len(locations)})
	}
}

func GetLocation(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID, ok := paramID(c, "id", "location")
		if !ok {
			return
		}

		location, err := svc.GetLocation(c.Request.Context(), locationID)
		if err != nil {
			respondError(c, err, locationNotFound, "failed to get location")
			return
		}

		c.JSON(http.StatusOK, location)
	}
}

func CreateLocation(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateLocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		location, notice, err := svc.CreateLocation(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, locationNotFound, "failed to create location")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"location": location, "notice": notice})
	}
}

func DeleteLocation(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID, ok := paramID(c, "id", "location")
		if !ok {
			return
		}

		notice, err := svc.DeleteLocation(c.Request.Context(), locationID)
		if err != nil {
			respondError(c, err, locationNotFound, "failed to delete location")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "location deleted", "notice": notice})
	}
}
