package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s7scheduling/middleware"
	"s7scheduling/models"
	"s7scheduling/scheduling"
)

const sceneNotFound = "scene not found"

func ListScenes(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}

		scenes, err := svc.ListScenes(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, err, "project not found", "failed to list scenes")
			return
		}

		c.JSON(http.StatusOK, gin.H{"scenes": scenes, "total": len(scenes)})
	}
}

func CreateScene(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}

		var req models.CreateSceneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		scene, notice, err := svc.CreateScene(c.Request.Context(), projectID, req)
		if err != nil {
			respondError(c, err, "project not found", "failed to create scene")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"scene": scene, "notice": notice})
	}
}

func UpdateScene(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}
		sceneID, ok := paramID(c, "scene_id", "scene")
		if !ok {
			return
		}

		var req models.UpdateSceneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		scene, notice, err := svc.UpdateScene(c.Request.Context(), projectID, sceneID, req)
		if err != nil {
			respondError(c, err, sceneNotFound, "failed to update scene")
			return
		}

		c.JSON(http.StatusOK, gin.H{"scene": scene, "notice": notice})
	}
}

func UpdateSceneStatus(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}
		sceneID, ok := paramID(c, "scene_id", "scene")
		if !ok {
			return
		}

		var req models.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		status, err := models.ParseSceneStatus(req.Status)
		if err != nil {
			badRequest(c, err)
			return
		}

		scene, notice, err := svc.ChangeSceneStatus(c.Request.Context(), projectID, sceneID, status)
		if err != nil {
			respondError(c, err, sceneNotFound, "failed to update scene status")
			return
		}

		c.JSON(http.StatusOK, gin.H{"scene": scene, "notice": notice})
	}
}

func DeleteScene(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}
		sceneID, ok := paramID(c, "scene_id", "scene")
		if !ok {
			return
		}

		notice, err := svc.DeleteScene(c.Request.Context(), projectID, sceneID)
		if err != nil {
			respondError(c, err, sceneNotFound, "failed to delete scene")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "scene deleted", "notice": notice})
	}
}

// SceneAction runs a card action (edit, mark-scheduled, mark-completed,
// delete) by name.
func SceneAction(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}
		sceneID, ok := paramID(c, "scene_id", "scene")
		if !ok {
			return
		}

		result, err := svc.DispatchAction(c.Request.Context(), projectID, sceneID, c.Param("action"))
		if err != nil {
			respondError(c, err, sceneNotFound, "failed to run scene action")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// Stripboard serves the board. Only writers see card actions.
func Stripboard(svc *scheduling.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c, "id", "project")
		if !ok {
			return
		}

		board, err := svc.Stripboard(c.Request.Context(), projectID, middleware.CanWrite(c))
		if err != nil {
			respondError(c, err, "project not found", "failed to build stripboard")
			return
		}

		c.JSON(http.StatusOK, board)
	}
}
