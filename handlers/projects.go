package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s7scheduling/models"
	"s7scheduling/scheduling"
)

func CreateProject(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		project, notice, err := svc.CreateProject(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "project not found", "failed to create project")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"project": project, "notice": notice})
	}
}

func ListProjects(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.ProjectQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, err)
			return
		}

		page, err := svc.ListProjects(c.Request.Context(), q)
		if err != nil {
			respondError(c, err, "project not found", "failed to list projects")
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

func GetProject(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}

		project, err := svc.GetProject(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, err, "project not found", "failed to get project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}

		notice, err := svc.DeleteProject(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, err, "project not found", "failed to delete project")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted", "notice": notice})
	}
}

func Dashboard(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, err, "project not found", "failed to load dashboard")
			return
		}

		c.JSON(http.StatusOK, totals)
	}
}
