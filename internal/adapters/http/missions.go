package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oatrn/brawlhq/internal/app"
	"github.com/oatrn/brawlhq/internal/domain"
)

const historyLimit = 50

func missionParam(c *gin.Context) (domain.MissionID, bool) {
	id, err := strconv.ParseInt(c.Param("mission_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "mission_id must be a positive integer"})
		return 0, false
	}
	return domain.MissionID(id), true
}

func listMissions(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.MissionFilter{
			Status: domain.MissionStatus(c.Query("status")),
			Name:   c.Query("name"),
		}

		missions, err := svc.GetAll(c.Request.Context(), filter)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, missions)
	}
}

func getMission(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		mission, err := svc.GetOne(c.Request.Context(), id)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, mission)
	}
}

func getCrew(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		crew, err := svc.GetCrew(c.Request.Context(), id)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, crew)
	}
}

func myMissions(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		missions, err := svc.MyMissions(c.Request.Context(), brawlerID(c))
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, missions)
	}
}

func chatHistory(svc *app.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		msgs, err := svc.History(c.Request.Context(), id, historyLimit)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

func addMission(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var model app.AddMissionModel
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		mission, err := svc.Add(c.Request.Context(), brawlerID(c), model)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, mission)
	}
}

func editMission(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		var model app.EditMissionModel
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		mission, err := svc.Edit(c.Request.Context(), id, brawlerID(c), model)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, mission)
	}
}

func removeMission(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		if err := svc.Remove(c.Request.Context(), id, brawlerID(c)); err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func uploadMissionImage(svc *app.MissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		var model base64ImageModel
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		img, err := svc.UploadImage(c.Request.Context(), id, brawlerID(c), model.Base64String)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

func joinCrew(svc *app.CrewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		if err := svc.Join(c.Request.Context(), id, brawlerID(c)); err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func leaveCrew(svc *app.CrewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := missionParam(c)
		if !ok {
			return
		}
		if err := svc.Leave(c.Request.Context(), id, brawlerID(c)); err != nil {
			c.JSON(errStatus(err), gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
