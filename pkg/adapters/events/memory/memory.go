package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/ports"
)

// subscriberBuffer bounds the events queued for a single slow subscriber
const subscriberBuffer = 1024

type subscription struct {
	id      uint64
	topic   string
	handler ports.EventHandler
	queue   chan ports.Event
	done    chan struct{}
}

// InMemoryEventBus implements EventBus using in-process handlers.
// Each subscription drains its own queue in one goroutine, so a subscriber
// sees events in publish order. Publish never blocks; a full queue drops.
type InMemoryEventBus struct {
	subscribers map[string][]*subscription
	nextID      uint64
	logger      *zap.Logger
	mu          sync.RWMutex
	wg          sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string][]*subscription),
		logger:      logger,
	}
}

// Publish queues an event for every subscriber of a topic
func (e *InMemoryEventBus) Publish(ctx context.Context, topic string, event ports.Event) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, sub := range e.subscribers[topic] {
		select {
		case sub.queue <- event:
		default:
			e.logger.Warn("subscriber queue full, dropping event",
				zap.String("topic", topic),
				zap.Uint64("subscription", sub.id),
				zap.String("event_id", event.ID))
		}
	}

	return nil
}

// Subscribe registers handler on topic until ctx is cancelled or the bus is closed
func (e *InMemoryEventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	e.mu.Lock()
	e.nextID++
	sub := &subscription{
		id:      e.nextID,
		topic:   topic,
		handler: handler,
		queue:   make(chan ports.Event, subscriberBuffer),
		done:    make(chan struct{}),
	}
	e.subscribers[topic] = append(e.subscribers[topic], sub)
	e.wg.Add(1)
	e.mu.Unlock()

	go e.run(ctx, sub)

	return nil
}

// Subscribers returns the number of live subscriptions on topic
func (e *InMemoryEventBus) Subscribers(topic string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.subscribers[topic])
}

// Close drops all subscriptions and waits for their goroutines to exit
func (e *InMemoryEventBus) Close() error {
	e.mu.Lock()
	for _, subs := range e.subscribers {
		for _, sub := range subs {
			close(sub.done)
		}
	}
	e.subscribers = make(map[string][]*subscription)
	e.mu.Unlock()

	e.wg.Wait()
	return nil
}

func (e *InMemoryEventBus) run(ctx context.Context, sub *subscription) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			e.unsubscribe(sub)
			return
		case <-sub.done:
			return
		case event := <-sub.queue:
			if err := sub.handler(ctx, event); err != nil {
				e.logger.Debug("event handler failed",
					zap.String("topic", sub.topic),
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}
	}
}

func (e *InMemoryEventBus) unsubscribe(sub *subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subscribers[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			e.subscribers[sub.topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(e.subscribers[sub.topic]) == 0 {
		delete(e.subscribers, sub.topic)
	}
}
