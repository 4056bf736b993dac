// Package rcache backs the listing and chat-history caches with Redis.
// Every operation here is best effort: a cold or broken cache degrades to
// the database, never to an error the caller sees.
package rcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/oatrn/brawlhq/internal/domain"
)

const (
	missionListKey = "missions:all"
	missionListTTL = 60 * time.Second

	historyKeyFmt = "chat:%d"
	historyDepth  = 50
)

type Cache struct {
	rdb *redis.Client
}

func Connect(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

func New(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

func (c *Cache) Close() error { return c.rdb.Close() }

func (c *Cache) GetMissions(ctx context.Context) ([]domain.Mission, bool) {
	raw, err := c.rdb.Get(ctx, missionListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("module", "rcache").Msg("mission list get failed")
		}
		return nil, false
	}

	var missions []domain.Mission
	if err := json.Unmarshal(raw, &missions); err != nil {
		log.Warn().Err(err).Str("module", "rcache").Msg("stale mission list payload")
		return nil, false
	}
	return missions, true
}

func (c *Cache) SetMissions(ctx context.Context, missions []domain.Mission) {
	raw, err := json.Marshal(missions)
	if err != nil {
		log.Warn().Err(err).Str("module", "rcache").Msg("marshal mission list")
		return
	}
	if err := c.rdb.Set(ctx, missionListKey, raw, missionListTTL).Err(); err != nil {
		log.Warn().Err(err).Str("module", "rcache").Msg("mission list set failed")
	}
}

func (c *Cache) InvalidateMissions(ctx context.Context) {
	if err := c.rdb.Del(ctx, missionListKey).Err(); err != nil {
		log.Warn().Err(err).Str("module", "rcache").Msg("mission list invalidate failed")
	}
}

// PushMessage appends to the mission's history list and trims it to the
// configured depth.
func (c *Cache) PushMessage(ctx context.Context, msg domain.MissionMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := fmt.Sprintf(historyKeyFmt, msg.MissionID)
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, -historyDepth, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push history: %w", err)
	}
	return nil
}

// RecentMessages returns the cached tail, oldest first. A missing or short
// key is a cache miss so the caller falls back to the store.
func (c *Cache) RecentMessages(ctx context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, bool) {
	key := fmt.Sprintf(historyKeyFmt, missionID)
	raws, err := c.rdb.LRange(ctx, key, int64(-limit), -1).Result()
	if err != nil || len(raws) == 0 {
		if err != nil && err != redis.Nil {
			log.Warn().Err(err).Str("module", "rcache").Msg("history read failed")
		}
		return nil, false
	}

	msgs := make([]domain.MissionMessage, 0, len(raws))
	for _, raw := range raws {
		var msg domain.MissionMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, false
		}
		msgs = append(msgs, msg)
	}
	return msgs, true
}
