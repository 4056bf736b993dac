package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

type AddMissionModel struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type EditMissionModel struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// MissionService covers mission viewing and chief-side management.
type MissionService struct {
	viewing    MissionViewingRepository
	management MissionManagementRepository
	cache      ListingCache
	uploader   ImageUploader
}

func NewMissionService(
	viewing MissionViewingRepository,
	management MissionManagementRepository,
	cache ListingCache,
	uploader ImageUploader,
) *MissionService {
	return &MissionService{viewing: viewing, management: management, cache: cache, uploader: uploader}
}

// GetAll lists missions. The unfiltered listing is the hot path and goes
// through the cache; filtered queries always hit the database.
func (s *MissionService) GetAll(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrBadStatus
	}

	cacheable := filter.Empty() && s.cache != nil
	if cacheable {
		if missions, ok := s.cache.GetMissions(ctx); ok {
			return missions, nil
		}
	}

	missions, err := s.viewing.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	if cacheable {
		s.cache.SetMissions(ctx, missions)
	}
	return missions, nil
}

func (s *MissionService) GetOne(ctx context.Context, id domain.MissionID) (domain.Mission, error) {
	return s.viewing.GetOne(ctx, id)
}

func (s *MissionService) GetCrew(ctx context.Context, id domain.MissionID) ([]domain.CrewMember, error) {
	return s.viewing.GetCrew(ctx, id)
}

func (s *MissionService) MyMissions(ctx context.Context, chiefID domain.BrawlerID) ([]domain.Mission, error) {
	return s.viewing.MissionsOfChief(ctx, chiefID)
}

func (s *MissionService) Add(ctx context.Context, chiefID domain.BrawlerID, model AddMissionModel) (domain.Mission, error) {
	if model.Name == "" {
		return domain.Mission{}, domain.ErrMissionNameEmpty
	}

	id, err := s.management.Add(ctx, domain.AddMission{
		Name:        model.Name,
		Description: model.Description,
		ChiefID:     chiefID,
	})
	if err != nil {
		return domain.Mission{}, fmt.Errorf("add mission: %w", err)
	}
	s.invalidate(ctx)
	log.Info().Str("module", "app.missions").Int64("mission_id", int64(id)).Msg("mission created")

	return s.viewing.GetOne(ctx, id)
}

func (s *MissionService) Edit(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, model EditMissionModel) (domain.Mission, error) {
	edit := domain.EditMission{Name: model.Name, Description: model.Description}
	if model.Status != nil {
		status := domain.MissionStatus(*model.Status)
		if !status.Valid() {
			return domain.Mission{}, domain.ErrBadStatus
		}
		edit.Status = &status
	}

	if err := s.management.Edit(ctx, id, chiefID, edit); err != nil {
		return domain.Mission{}, err
	}
	s.invalidate(ctx)
	return s.viewing.GetOne(ctx, id)
}

func (s *MissionService) Remove(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID) error {
	if err := s.management.Remove(ctx, id, chiefID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UploadImage stores a mission image on the media host; chief only.
func (s *MissionService) UploadImage(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, base64Image string) (UploadedImage, error) {
	img, err := s.uploader.UploadBase64(ctx, base64Image, "missions")
	if err != nil {
		return UploadedImage{}, fmt.Errorf("upload mission image: %w", err)
	}
	if err := s.management.SetImageURL(ctx, id, chiefID, img.URL); err != nil {
		return UploadedImage{}, err
	}
	s.invalidate(ctx)
	return img, nil
}

func (s *MissionService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateMissions(ctx)
	}
}
