package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oatrn/brawlhq/internal/domain"
)

type stubMessageRepo struct {
	appended []domain.MissionMessage
	failWith error
	nextID   int64
}

func (s *stubMessageRepo) Append(_ context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID, content string) (domain.MissionMessage, error) {
	if s.failWith != nil {
		return domain.MissionMessage{}, s.failWith
	}
	s.nextID++
	msg := domain.MissionMessage{
		ID:        s.nextID,
		MissionID: missionID,
		BrawlerID: brawlerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.appended = append(s.appended, msg)
	return msg, nil
}

func (s *stubMessageRepo) Recent(_ context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]domain.MissionMessage, 0, limit)
	for _, m := range s.appended {
		if m.MissionID == missionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubHistoryCache struct {
	pushed  []domain.MissionMessage
	warm    []domain.MissionMessage
	pushErr error
}

func (s *stubHistoryCache) PushMessage(_ context.Context, msg domain.MissionMessage) error {
	if s.pushErr != nil {
		return s.pushErr
	}
	s.pushed = append(s.pushed, msg)
	return nil
}

func (s *stubHistoryCache) RecentMessages(_ context.Context, _ domain.MissionID, _ int) ([]domain.MissionMessage, bool) {
	return s.warm, s.warm != nil
}

func TestSendMessagePersistsAndCaches(t *testing.T) {
	repo := &stubMessageRepo{}
	cache := &stubHistoryCache{}
	svc := NewChatService(repo, cache)

	msg, err := svc.SendMessage(context.Background(), 42, 7, "hello")
	require.NoError(t, err)
	require.EqualValues(t, 42, msg.MissionID)
	require.EqualValues(t, 7, msg.BrawlerID)
	require.Equal(t, "hello", msg.Content)

	require.Len(t, repo.appended, 1)
	require.Len(t, cache.pushed, 1)
}

func TestSendMessagePropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := &stubMessageRepo{failWith: storeErr}
	svc := NewChatService(repo, &stubHistoryCache{})

	_, err := svc.SendMessage(context.Background(), 42, 7, "hello")
	require.ErrorIs(t, err, storeErr)
}

func TestSendMessageSurvivesCacheFailure(t *testing.T) {
	repo := &stubMessageRepo{}
	cache := &stubHistoryCache{pushErr: errors.New("redis down")}
	svc := NewChatService(repo, cache)

	_, err := svc.SendMessage(context.Background(), 42, 7, "hello")
	require.NoError(t, err)
	require.Len(t, repo.appended, 1)
}

func TestHistoryPrefersWarmCache(t *testing.T) {
	repo := &stubMessageRepo{}
	cached := []domain.MissionMessage{{ID: 1, MissionID: 42, Content: "cached"}}
	svc := NewChatService(repo, &stubHistoryCache{warm: cached})

	msgs, err := svc.History(context.Background(), 42, 50)
	require.NoError(t, err)
	require.Equal(t, cached, msgs)
}

func TestHistoryFallsBackToStore(t *testing.T) {
	repo := &stubMessageRepo{}
	svc := NewChatService(repo, &stubHistoryCache{})

	_, err := svc.SendMessage(context.Background(), 42, 7, "from the store")
	require.NoError(t, err)

	msgs, err := svc.History(context.Background(), 42, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "from the store", msgs[0].Content)
}
