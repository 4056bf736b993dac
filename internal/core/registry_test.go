package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oatrn/brawlhq/internal/domain"
)

func TestGetOrCreateReturnsSameRoom(t *testing.T) {
	reg := NewRegistry()

	a := reg.GetOrCreate(42)
	b := reg.GetOrCreate(42)
	require.Same(t, a, b)

	other := reg.GetOrCreate(7)
	require.NotSame(t, a, other)
	require.Equal(t, 2, reg.Len())
}

func TestGetOrCreateConcurrent(t *testing.T) {
	reg := NewRegistry()

	const callers = 64
	rooms := make([]*Room, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			rooms[i] = reg.GetOrCreate(domain.MissionID(42))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, reg.Len())
	for i := 1; i < callers; i++ {
		require.Same(t, rooms[0], rooms[i])
	}
}
