// Package core holds the in-memory chat plumbing: the per-mission broadcast
// room and the registry that hands rooms out. It never touches transport or
// storage resources; adapters own those.
package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

// Frame is one raw broadcast payload (an already-serialized envelope).
type Frame []byte

// subscriberBuffer is how many frames a slow subscriber may lag before
// frames are dropped for it.
const subscriberBuffer = 32

// Room is the broadcast group of every connection attached to one mission.
// Many producers publish, every subscriber gets its own FIFO copy stream.
type Room struct {
	missionID domain.MissionID

	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]chan Frame
}

func newRoom(missionID domain.MissionID) *Room {
	return &Room{
		missionID: missionID,
		subs:      make(map[uint64]chan Frame),
	}
}

func (r *Room) MissionID() domain.MissionID { return r.missionID }

func (r *Room) SubscriberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Subscription is one consumer's handle on a room. Receive from C until it
// is closed; Close detaches from the room and is safe to call twice.
type Subscription struct {
	C    <-chan Frame
	id   uint64
	room *Room
	once sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.room.unsubscribe(s.id)
	})
}

// Subscribe attaches a new consumer. The subscriber only sees frames
// published after this call.
func (r *Room) Subscribe() *Subscription {
	ch := make(chan Frame, subscriberBuffer)
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = ch
	r.mu.Unlock()
	return &Subscription{C: ch, id: id, room: r}
}

func (r *Room) unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.subs[id]; ok {
		delete(r.subs, id)
		close(ch)
	}
}

// Publish fans data out to every current subscriber and never blocks: a
// subscriber whose buffer is full has this frame dropped. Returns how many
// subscribers the frame was queued for; zero subscribers is fine.
func (r *Room) Publish(data Frame) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sent := 0
	for _, ch := range r.subs {
		select {
		case ch <- data:
			sent++
		default:
		}
	}
	if sent < len(r.subs) {
		log.Warn().
			Str("module", "core.room").
			Int64("mission_id", int64(r.missionID)).
			Int("dropped", len(r.subs)-sent).
			Msg("slow subscribers dropped a frame")
	}
	return sent
}
