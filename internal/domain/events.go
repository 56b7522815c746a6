package domain

import "context"

// Event names relayed over the realtime channel.
const (
	EventLeaderboardUpdate   = "leaderboard-update"
	EventAchievementUnlocked = "achievement-unlocked"
)

// EventHandler receives the raw JSON payload of a pushed event.
type EventHandler func(payload []byte)

// EventBus is the realtime publish/subscribe port. Delivery is at-most-once
// per pushed event, ordered only by arrival, with no replay on reconnect.
// Subscribe returns an unsubscribe function that must be called at consumer
// teardown to release the subscription.
type EventBus interface {
	Publish(ctx context.Context, event string, payload interface{}) error
	Subscribe(event string, handler EventHandler) (unsubscribe func(), err error)
}
