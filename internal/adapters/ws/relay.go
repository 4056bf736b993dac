// Package ws bridges one websocket connection and one mission room: a read
// pump feeding the chat use case and a write pump draining the room's
// broadcast stream, torn down together when either side fails.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/core"
	"github.com/oatrn/brawlhq/internal/domain"
)

const writeWait = 5 * time.Second

// Conn is an indirection over *websocket.Conn to ease testing.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Envelope is the outbound wire form of one chat message. CreatedAt is the
// broadcast-time clock reading, not the persisted record's timestamp.
type Envelope struct {
	UserID    int64  `json:"user_id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// Relay runs one connection against one room.
type Relay struct {
	missionID domain.MissionID
	brawlerID domain.BrawlerID
	conn      Conn
	room      *core.Room
	ingestor  core.ChatIngestor

	closeOnce sync.Once
	now       func() time.Time // test hook
}

func NewRelay(conn Conn, room *core.Room, ingestor core.ChatIngestor, missionID domain.MissionID, brawlerID domain.BrawlerID) *Relay {
	return &Relay{
		missionID: missionID,
		brawlerID: brawlerID,
		conn:      conn,
		room:      room,
		ingestor:  ingestor,
		now:       time.Now,
	}
}

// Serve blocks until the connection ends. The write pump runs in its own
// goroutine; the read pump runs inline. Whichever finishes first cancels
// the shared context, the sibling observes it and exits, and both are
// joined before the connection is released.
func (r *Relay) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := r.room.Subscribe()
	defer sub.Close()

	// A blocked ReadMessage only returns once the socket dies, so closing
	// the socket is how cancellation reaches the read pump.
	go func() {
		<-ctx.Done()
		r.close()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		r.writePump(ctx, sub)
	}()

	r.readPump(ctx)
	cancel()
	wg.Wait()
}

func (r *Relay) close() {
	r.closeOnce.Do(func() {
		_ = r.conn.Close()
	})
}

// writePump forwards every broadcast frame verbatim as a text frame.
// It stops silently on write failure or cancellation.
func (r *Relay) writePump(ctx context.Context, sub *core.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-sub.C:
			if !ok {
				return
			}
			_ = r.conn.SetWriteDeadline(r.now().Add(writeWait))
			if err := r.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	}
}

// readPump takes each inbound text frame through the ingestion use case
// and, only on success, publishes the broadcast envelope. Non-text frames
// are skipped; a failed persist drops that one message and keeps reading.
func (r *Relay) readPump(ctx context.Context) {
	for {
		mt, data, err := r.conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		content := string(data)
		if _, err := r.ingestor.SendMessage(ctx, r.missionID, r.brawlerID, content); err != nil {
			log.Error().Err(err).
				Str("module", "ws.relay").
				Int64("mission_id", int64(r.missionID)).
				Int64("brawler_id", int64(r.brawlerID)).
				Msg("failed to save message")
			continue
		}

		frame, err := json.Marshal(Envelope{
			UserID:    int64(r.brawlerID),
			Content:   content,
			Type:      "chat",
			CreatedAt: r.now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			log.Error().Err(err).Str("module", "ws.relay").Msg("marshal envelope")
			continue
		}
		r.room.Publish(core.Frame(frame))
	}
}
