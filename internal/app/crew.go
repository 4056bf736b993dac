package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

// CrewService handles joining and leaving mission crews.
type CrewService struct {
	crew    CrewRepository
	viewing MissionViewingRepository
	cache   ListingCache
}

func NewCrewService(crew CrewRepository, viewing MissionViewingRepository, cache ListingCache) *CrewService {
	return &CrewService{crew: crew, viewing: viewing, cache: cache}
}

// Join adds the brawler to the crew of an open mission.
func (s *CrewService) Join(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error {
	mission, err := s.viewing.GetOne(ctx, missionID)
	if err != nil {
		return err
	}
	if mission.Status != domain.MissionOpen {
		return domain.ErrMissionClosed
	}

	if err := s.crew.Join(ctx, missionID, brawlerID); err != nil {
		return fmt.Errorf("join crew: %w", err)
	}
	if s.cache != nil {
		s.cache.InvalidateMissions(ctx)
	}
	log.Info().Str("module", "app.crew").
		Int64("mission_id", int64(missionID)).
		Int64("brawler_id", int64(brawlerID)).
		Msg("brawler joined crew")
	return nil
}

// Leave removes the brawler from the crew. The chief stays with the ship.
func (s *CrewService) Leave(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error {
	mission, err := s.viewing.GetOne(ctx, missionID)
	if err != nil {
		return err
	}
	if mission.ChiefID == brawlerID {
		return domain.ErrChiefCannotLeave
	}

	if err := s.crew.Leave(ctx, missionID, brawlerID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateMissions(ctx)
	}
	return nil
}
