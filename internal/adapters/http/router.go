// Package http wires the REST and websocket surface with gin.
package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oatrn/brawlhq/internal/app"
	"github.com/oatrn/brawlhq/internal/auth"
	"github.com/oatrn/brawlhq/internal/config"
	"github.com/oatrn/brawlhq/internal/core"
)

// Services groups everything the router hands out to handlers.
type Services struct {
	Brawlers *app.BrawlerService
	Missions *app.MissionService
	Crew     *app.CrewService
	Chat     *app.ChatService
	Rooms    *core.Registry
	Tokens   *auth.TokenManager
}

func SetupRouter(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	authed := AuthMiddleware(svc.Tokens)

	api := r.Group("/api")
	{
		api.POST("/brawlers/register", registerBrawler(svc.Brawlers))
		api.POST("/authentication/login", loginBrawler(svc.Brawlers))
		api.POST("/brawlers/avatar", authed, uploadAvatar(svc.Brawlers))
		api.GET("/brawlers/my-missions", authed, myMissions(svc.Missions))

		api.GET("/missions", listMissions(svc.Missions))
		api.GET("/missions/:mission_id", getMission(svc.Missions))
		api.GET("/missions/:mission_id/crew", getCrew(svc.Missions))
		api.GET("/missions/:mission_id/messages", authed, chatHistory(svc.Chat))
		api.POST("/missions", authed, addMission(svc.Missions))
		api.PATCH("/missions/:mission_id", authed, editMission(svc.Missions))
		api.DELETE("/missions/:mission_id", authed, removeMission(svc.Missions))
		api.POST("/missions/:mission_id/image", authed, uploadMissionImage(svc.Missions))

		api.POST("/crew/join/:mission_id", authed, joinCrew(svc.Crew))
		api.POST("/crew/leave/:mission_id", authed, leaveCrew(svc.Crew))
	}

	ws := r.Group("/ws", authed)
	ws.GET("/missions/:mission_id", missionChat(ctx, cfg, svc.Rooms, svc.Chat))

	return r
}
