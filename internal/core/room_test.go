package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recvOne(t *testing.T, sub *Subscription) Frame {
	t.Helper()
	select {
	case f, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestPublishFansOutToEverySubscriberInOrder(t *testing.T) {
	room := newRoom(42)

	subs := []*Subscription{room.Subscribe(), room.Subscribe(), room.Subscribe()}
	defer func() {
		for _, s := range subs {
			s.Close()
		}
	}()

	for i := 0; i < 5; i++ {
		sent := room.Publish(Frame(fmt.Sprintf("msg-%d", i)))
		require.Equal(t, len(subs), sent)
	}

	for _, sub := range subs {
		for i := 0; i < 5; i++ {
			require.Equal(t, fmt.Sprintf("msg-%d", i), string(recvOne(t, sub)))
		}
	}
}

func TestRoomsAreIsolated(t *testing.T) {
	reg := NewRegistry()
	r1 := reg.GetOrCreate(1)
	r2 := reg.GetOrCreate(2)

	sub1 := r1.Subscribe()
	defer sub1.Close()
	sub2 := r2.Subscribe()
	defer sub2.Close()

	r1.Publish(Frame("only-for-room-1"))

	require.Equal(t, "only-for-room-1", string(recvOne(t, sub1)))
	select {
	case f := <-sub2.C:
		t.Fatalf("room 2 subscriber observed foreign frame %q", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	room := newRoom(42)

	done := make(chan struct{})
	go func() {
		defer close(done)
		require.Equal(t, 0, room.Publish(Frame("nobody home")))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with zero subscribers")
	}
}

func TestPublishDropsForFullSubscriber(t *testing.T) {
	room := newRoom(42)

	slow := room.Subscribe()
	defer slow.Close()

	// Fill the slow subscriber's buffer without draining it.
	for i := 0; i < subscriberBuffer; i++ {
		require.Equal(t, 1, room.Publish(Frame("fill")))
	}

	fast := room.Subscribe()
	defer fast.Close()

	// The overflow frame is dropped for slow but still queued for fast.
	sent := room.Publish(Frame("overflow"))
	require.Equal(t, 1, sent)
	require.Equal(t, "overflow", string(recvOne(t, fast)))
}

func TestCloseDetachesSubscriber(t *testing.T) {
	room := newRoom(42)

	sub := room.Subscribe()
	require.Equal(t, 1, room.SubscriberCount())

	sub.Close()
	sub.Close() // idempotent
	require.Equal(t, 0, room.SubscriberCount())

	_, ok := <-sub.C
	require.False(t, ok)
}
