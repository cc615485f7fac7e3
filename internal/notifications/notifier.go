// Package notifications publishes social activity events to Redis channels.
// Followers' clients (and any other consumer) subscribe out of band; the
// services only fire events and never wait on delivery.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"quill/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Notifier provides helpers to publish notifications into Redis channels.
// A nil Redis client turns every publish into a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Event is the payload published for social activity.
type Event struct {
	Type      string    `json:"type"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id,omitempty"`
	CommentID uint      `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishFollow notifies a user that someone started following them.
func (n *Notifier) PublishFollow(ctx context.Context, followerID, followedID uint) error {
	return n.publishUser(ctx, "follow", followedID, Event{
		Type:      "follow",
		ActorID:   followerID,
		CreatedAt: time.Now().UTC(),
	})
}

// PublishLike notifies a post author that their post was liked.
func (n *Notifier) PublishLike(ctx context.Context, actorID, authorID, postID uint) error {
	return n.publishUser(ctx, "like", authorID, Event{
		Type:      "like",
		ActorID:   actorID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	})
}

// PublishComment notifies a post author about a new comment.
func (n *Notifier) PublishComment(ctx context.Context, actorID, authorID, postID, commentID uint) error {
	return n.publishUser(ctx, "comment", authorID, Event{
		Type:      "comment",
		ActorID:   actorID,
		PostID:    postID,
		CommentID: commentID,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *Notifier) publishUser(ctx context.Context, kind string, userID uint, event Event) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := n.rdb.Publish(ctx, UserChannel(userID), string(payload)).Err(); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues(kind).Inc()
	return nil
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
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
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
