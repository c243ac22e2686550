// Package hub fans whale events out to connected subscribers.
package hub

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/whale"
)

type MessageType string

const (
	InitialData      MessageType = "initial_data"
	WhaleTransaction MessageType = "whale_transaction"
)

// Message is the envelope pushed to subscribers. Data is the newest-first
// history for InitialData and a single *whale.WhaleEvent otherwise.
type Message struct {
	Type MessageType `json:"type"`
	Data any         `json:"data"`
}

// Store is the history the hub appends to and snapshots from.
type Store interface {
	Append(ev *whale.WhaleEvent)
	Snapshot() []*whale.WhaleEvent
}

const DefaultQueueSize = 64

var nextSubscriptionID atomic.Uint64

// Subscription receives the messages of one subscriber. The channel is closed
// when the subscriber is removed from the hub, either by Unsubscribe or
// because it fell behind.
type Subscription struct {
	id uint64
	ch chan Message
}

func (s *Subscription) ID() uint64 {
	return s.id
}

func (s *Subscription) Messages() <-chan Message {
	return s.ch
}

// Hub delivers every published event to every subscriber in publish order.
// Delivery never blocks: a subscriber whose queue is full is disconnected.
type Hub struct {
	store     Store
	queueSize int
	metrics   *metrics.Metrics

	// guards subs and serializes Publish against Subscribe, so a new
	// subscriber gets either the event in its snapshot or as a message,
	// never both and never neither.
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

type Option func(*Hub)

func WithQueueSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.queueSize = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Hub) {
		h.metrics = m
	}
}

func New(store Store, opts ...Option) *Hub {
	h := &Hub{
		store:     store,
		queueSize: DefaultQueueSize,
		subs:      make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = metrics.New(nil)
	}
	return h
}

// Subscribe registers a subscriber. Its first message is the current
// history snapshot. Subscribing to a closed hub returns an already closed
// subscription.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id: nextSubscriptionID.Add(1),
		// one extra slot so the snapshot never counts against the queue
		ch: make(chan Message, h.queueSize+1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)
		return sub
	}

	sub.ch <- Message{Type: InitialData, Data: h.store.Snapshot()}
	h.subs[sub] = struct{}{}
	h.metrics.Subscribers.Set(float64(len(h.subs)))

	slog.Info("subscriber connected",
		slog.Uint64("subscription_id", sub.id),
		slog.Int("subscribers", len(h.subs)),
	)

	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Calling it more
// than once is harmless.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	h.removeLocked(sub)

	slog.Info("subscriber disconnected",
		slog.Uint64("subscription_id", sub.id),
		slog.Int("subscribers", len(h.subs)),
	)
}

// Publish appends ev to the store and broadcasts it. It is the only path
// through which the store is written.
func (h *Hub) Publish(ev *whale.WhaleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.store.Append(ev)
	h.broadcastLocked(ev)
}

// Broadcast delivers ev to every current subscriber without storing it.
func (h *Hub) Broadcast(ev *whale.WhaleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.broadcastLocked(ev)
}

func (h *Hub) broadcastLocked(ev *whale.WhaleEvent) {
	msg := Message{Type: WhaleTransaction, Data: ev}
	for sub := range h.subs {
		select {
		case sub.ch <- msg:
		default:
			h.removeLocked(sub)
			h.metrics.DroppedSubscribers.Inc()
			slog.Warn("dropping slow subscriber",
				slog.Uint64("subscription_id", sub.id),
				slog.Int("queue_size", h.queueSize),
			)
		}
	}
}

func (h *Hub) removeLocked(sub *Subscription) {
	delete(h.subs, sub)
	close(sub.ch)
	h.metrics.Subscribers.Set(float64(len(h.subs)))
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later subscriptions are closed
// immediately.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		h.removeLocked(sub)
	}
	h.closed = true
}
