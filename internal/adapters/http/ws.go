package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/adapters/ws"
	"github.com/oatrn/brawlhq/internal/app"
	"github.com/oatrn/brawlhq/internal/config"
	"github.com/oatrn/brawlhq/internal/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the client origin list is settled.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// missionChat upgrades the request and hands the socket to a relay bound to
// the mission's room. Auth ran in middleware; an unauthenticated request
// never reaches this handler.
func missionChat(ctx context.Context, cfg *config.Config, rooms *core.Registry, chat *app.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		missionID, ok := missionParam(c)
		if !ok {
			return
		}
		userID := brawlerID(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("module", "http.ws").Msg("websocket upgrade failed")
			return
		}
		conn.SetReadLimit(cfg.ReadLimit)

		log.Info().Str("module", "http.ws").
			Int64("mission_id", int64(missionID)).
			Int64("brawler_id", int64(userID)).
			Msg("chat connection opened")

		room := rooms.GetOrCreate(missionID)
		relay := ws.NewRelay(conn, room, chat, missionID, userID)
		relay.Serve(ctx)

		log.Info().Str("module", "http.ws").
			Int64("mission_id", int64(missionID)).
			Int64("brawler_id", int64(userID)).
			Msg("chat connection closed")
	}
}
