package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

// ChatService records inbound chat messages. The relay calls SendMessage
// before anything is broadcast; if this fails the message never reaches
// the room.
type ChatService struct {
	messages MessageRepository
	history  HistoryCache
}

func NewChatService(messages MessageRepository, history HistoryCache) *ChatService {
	return &ChatService{messages: messages, history: history}
}

// SendMessage durably appends one message. Store errors propagate
// unchanged; there is no retry here. The history cache is best effort.
func (s *ChatService) SendMessage(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID, content string) (domain.MissionMessage, error) {
	msg, err := s.messages.Append(ctx, missionID, brawlerID, content)
	if err != nil {
		return domain.MissionMessage{}, fmt.Errorf("append message: %w", err)
	}

	if s.history != nil {
		if err := s.history.PushMessage(ctx, msg); err != nil {
			log.Warn().Err(err).
				Str("module", "app.chat").
				Int64("mission_id", int64(missionID)).
				Msg("history cache push failed")
		}
	}
	return msg, nil
}

// History returns the recent chat tail, cache first, store as fallback.
func (s *ChatService) History(ctx context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, error) {
	if s.history != nil {
		if msgs, ok := s.history.RecentMessages(ctx, missionID, limit); ok {
			return msgs, nil
		}
	}
	msgs, err := s.messages.Recent(ctx, missionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	return msgs, nil
}
