// Package app holds the use cases. Services accept their collaborators as
// interfaces so the postgres/redis/cloudinary adapters stay swappable in
// tests.
package app

import (
	"context"

	"github.com/oatrn/brawlhq/internal/core"
	"github.com/oatrn/brawlhq/internal/domain"
)

type BrawlerRepository interface {
	Create(ctx context.Context, username, passwordHash, displayName, email string) (domain.Brawler, error)
	FindByUsername(ctx context.Context, username string) (domain.Brawler, error)
	SetAvatarURL(ctx context.Context, id domain.BrawlerID, url string) error
}

type MissionViewingRepository interface {
	GetAll(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error)
	GetOne(ctx context.Context, id domain.MissionID) (domain.Mission, error)
	GetCrew(ctx context.Context, id domain.MissionID) ([]domain.CrewMember, error)
	MissionsOfChief(ctx context.Context, chiefID domain.BrawlerID) ([]domain.Mission, error)
}

type MissionManagementRepository interface {
	Add(ctx context.Context, add domain.AddMission) (domain.MissionID, error)
	Edit(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, edit domain.EditMission) error
	Remove(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID) error
	SetImageURL(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, url string) error
}

type CrewRepository interface {
	Join(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error
	Leave(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error
}

// MessageRepository is the durable side of mission chat: the core append
// contract plus the history read the REST surface needs.
type MessageRepository interface {
	core.MessageStore
	Recent(ctx context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, error)
}

// UploadedImage is what the media host returns for a stored image.
type UploadedImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type ImageUploader interface {
	UploadBase64(ctx context.Context, base64Image, folder string) (UploadedImage, error)
}

// ListingCache caches the unfiltered mission listing.
type ListingCache interface {
	GetMissions(ctx context.Context) ([]domain.Mission, bool)
	SetMissions(ctx context.Context, missions []domain.Mission)
	InvalidateMissions(ctx context.Context)
}

// HistoryCache keeps the recent chat tail per mission.
type HistoryCache interface {
	PushMessage(ctx context.Context, msg domain.MissionMessage) error
	RecentMessages(ctx context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, bool)
}
