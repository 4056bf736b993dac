package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

// Registry maps mission ids to live rooms. Rooms are created lazily and
// kept for the lifetime of the process; there is no eviction.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.MissionID]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.MissionID]*Room)}
}

// GetOrCreate returns the room for missionID, creating it on first access.
// Concurrent callers for the same never-seen id get the same room.
func (g *Registry) GetOrCreate(missionID domain.MissionID) *Room {
	g.mu.RLock()
	room, ok := g.rooms[missionID]
	g.mu.RUnlock()
	if ok {
		return room
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok = g.rooms[missionID]; ok {
		return room
	}
	room = newRoom(missionID)
	g.rooms[missionID] = room
	log.Info().Str("module", "core.registry").Int64("mission_id", int64(missionID)).Msg("room created")
	return room
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
