package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"gamelearn/internal/domain"
	"gamelearn/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const eventChannelPrefix = "gamelearn:events:"

// RedisEventBus implements domain.EventBus on top of Redis pub/sub.
// Redis pub/sub gives exactly the delivery contract the realtime channel
// promises: at-most-once per pushed event, arrival order only, no replay.
type RedisEventBus struct {
	client *redis.Client

	mu   sync.Mutex
	subs map[string]*eventSubscription
}

type eventSubscription struct {
	pubsub   *redis.PubSub
	handlers map[int]domain.EventHandler
	nextID   int
}

// NewRedisEventBus creates an event bus backed by the given Redis client.
func NewRedisEventBus(client *redis.Client) *RedisEventBus {
	return &RedisEventBus{
		client: client,
		subs:   make(map[string]*eventSubscription),
	}
}

// Publish marshals the payload to JSON and pushes it to the event's channel.
func (b *RedisEventBus) Publish(ctx context.Context, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, eventChannelPrefix+event, data).Err()
}

// Subscribe registers a handler for the named event. The first handler for
// an event opens the underlying Redis subscription; the last unsubscribe
// closes it.
func (b *RedisEventBus) Subscribe(event string, handler domain.EventHandler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[event]
	if !ok {
		pubsub := b.client.Subscribe(context.Background(), eventChannelPrefix+event)
		if _, err := pubsub.Receive(context.Background()); err != nil {
			_ = pubsub.Close()
			return nil, err
		}

		sub = &eventSubscription{
			pubsub:   pubsub,
			handlers: make(map[int]domain.EventHandler),
		}
		b.subs[event] = sub
		go b.dispatch(event, sub)
	}

	id := sub.nextID
	sub.nextID++
	sub.handlers[id] = handler

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		current, ok := b.subs[event]
		if !ok {
			return
		}
		delete(current.handlers, id)
		if len(current.handlers) == 0 {
			if err := current.pubsub.Close(); err != nil {
				logger.Get().Warn("Failed to close pubsub subscription",
					zap.String("event", event), zap.Error(err))
			}
			delete(b.subs, event)
		}
	}
	return unsubscribe, nil
}

func (b *RedisEventBus) dispatch(event string, sub *eventSubscription) {
	for msg := range sub.pubsub.Channel() {
		b.mu.Lock()
		handlers := make([]domain.EventHandler, 0, len(sub.handlers))
		for _, h := range sub.handlers {
			handlers = append(handlers, h)
		}
		b.mu.Unlock()

		for _, h := range handlers {
			h([]byte(msg.Payload))
		}
	}
}

// Close tears down all open subscriptions.
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for event, sub := range b.subs {
		if err := sub.pubsub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(b.subs, event)
	}
	return firstErr
}
