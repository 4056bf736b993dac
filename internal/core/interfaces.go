package core

import (
	"context"

	"github.com/oatrn/brawlhq/internal/domain"
)

// MessageStore is the durable append contract the relay's ingestion path
// depends on. The postgres adapter implements it; tests stub it.
type MessageStore interface {
	Append(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID, content string) (domain.MissionMessage, error)
}

// ChatIngestor records one inbound chat message before it may be broadcast.
// Implemented by app.ChatService.
type ChatIngestor interface {
	SendMessage(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID, content string) (domain.MissionMessage, error)
}
