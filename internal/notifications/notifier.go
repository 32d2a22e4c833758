// Package notifications delivers live feed events to websocket subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis pub/sub channel feed events travel on. Every API
// instance publishes here and every instance's hub subscribes, so events
// reach websocket clients regardless of which instance handled the request.
const FeedChannel = "events:feed"

// Feed event types.
const (
	EventPostCreated  = "post.created"
	EventCommentAdded = "comment.added"
)

// FeedEvent is the payload pushed to feed subscribers.
type FeedEvent struct {
	Type     string `json:"type"`
	PostID   uint   `json:"post_id"`
	Author   string `json:"author"`
	Title    string `json:"title,omitempty"`
	Comments int    `json:"comments,omitempty"`
}

// Notifier publishes feed events into Redis. A nil Redis client turns every
// publish into a no-op, so the API keeps working without live updates.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeedEvent marshals the event and publishes it on the feed channel.
func (n *Notifier) PublishFeedEvent(ctx context.Context, ev FeedEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	return n.rdb.Publish(ctx, FeedChannel, string(payload)).Err()
}

// StartFeedSubscriber subscribes to the feed channel and calls onMessage for
// each incoming payload until ctx is cancelled.
func (n *Notifier) StartFeedSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, FeedChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in FeedSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
