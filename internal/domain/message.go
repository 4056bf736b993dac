package domain

import "time"

// MissionMessage is the persisted chat record. Its CreatedAt is the
// persistence-time timestamp assigned by the store; the broadcast envelope
// carries its own clock reading (see adapters/ws).
type MissionMessage struct {
	ID        int64     `db:"id" json:"id"`
	MissionID MissionID `db:"mission_id" json:"mission_id"`
	BrawlerID BrawlerID `db:"brawler_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
