package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount())

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ConnectionCount())
	// Unregistering twice is harmless.
	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ConnectionCount())

	hub.Unregister(c2)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_PerUserLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(7, nil)
		require.NoError(t, err)
	}
	_, err := hub.Register(7, nil)
	assert.Error(t, err)

	// Other users and anonymous viewers are unaffected.
	_, err = hub.Register(8, nil)
	assert.NoError(t, err)
	_, err = hub.Register(0, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(0, nil)
	require.NoError(t, err)

	hub.BroadcastAll(`{"type":"post.created"}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"post.created"}`, string(msg))
		default:
			t.Fatalf("client %d received nothing", c.UserID)
		}
	}
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("fill"))
	}
	// Buffer is full; this drop must not block or panic.
	client.TrySend([]byte("overflow"))
	assert.Len(t, client.Send, cap(client.Send))
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()

	assert.NoError(t, n.PublishFeedEvent(ctx, FeedEvent{Type: EventPostCreated, PostID: 1}))
	assert.NoError(t, n.StartFeedSubscriber(ctx, func(string) {}))
}

func TestNotifier_PublishReachesHub(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	hub := NewHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	notifier := NewNotifier(rdb)
	require.NoError(t, hub.StartWiring(ctx, notifier))

	// Give the subscriber goroutine a moment to attach.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, notifier.PublishFeedEvent(ctx, FeedEvent{
		Type:   EventPostCreated,
		PostID: 31,
		Author: "inky",
		Title:  "Hello",
	}))

	select {
	case msg := <-client.Send:
		var ev FeedEvent
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, EventPostCreated, ev.Type)
		assert.Equal(t, uint(31), ev.PostID)
		assert.Equal(t, "inky", ev.Author)
	case <-time.After(2 * time.Second):
		t.Fatal("feed event never reached the hub client")
	}
}
