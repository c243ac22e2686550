package hub

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/store"
	"github.com/Mantelijo/whale-alert/internal/whale"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(i int) *whale.WhaleEvent {
	return &whale.WhaleEvent{ID: fmt.Sprintf("E%d", i), Symbol: "ETH", Type: whale.Native}
}

func snapshotIDs(t *testing.T, msg Message) []string {
	t.Helper()
	require.Equal(t, InitialData, msg.Type)
	events, ok := msg.Data.([]*whale.WhaleEvent)
	require.True(t, ok)
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.ID
	}
	return out
}

func eventID(t *testing.T, msg Message) string {
	t.Helper()
	require.Equal(t, WhaleTransaction, msg.Type)
	ev, ok := msg.Data.(*whale.WhaleEvent)
	require.True(t, ok)
	return ev.ID
}

// drain reads every message queued so far without blocking.
func drain(sub *Subscription) []Message {
	out := []Message{}
	for {
		select {
		case msg, ok := <-sub.Messages():
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestSubscribeReceivesSnapshotFirst(t *testing.T) {
	s := store.NewRecentEvents(10)
	h := New(s)

	h.Publish(event(1))
	h.Publish(event(2))
	h.Publish(event(3))

	sub := h.Subscribe()
	h.Publish(event(4))
	h.Publish(event(5))

	msgs := drain(sub)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"E3", "E2", "E1"}, snapshotIDs(t, msgs[0]))
	assert.Equal(t, "E4", eventID(t, msgs[1]))
	assert.Equal(t, "E5", eventID(t, msgs[2]))

	assert.Equal(t, 5, s.Len())
}

func TestSubscribeEmptyHistory(t *testing.T) {
	h := New(store.NewRecentEvents(10))
	msgs := drain(h.Subscribe())
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{}, snapshotIDs(t, msgs[0]))
}

func TestBroadcastDoesNotStore(t *testing.T) {
	s := store.NewRecentEvents(10)
	h := New(s)
	sub := h.Subscribe()

	h.Broadcast(event(1))

	msgs := drain(sub)
	require.Len(t, msgs, 2)
	assert.Equal(t, "E1", eventID(t, msgs[1]))
	assert.Equal(t, 0, s.Len())
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	m := metrics.New(nil)
	h := New(store.NewRecentEvents(100), WithQueueSize(2), WithMetrics(m))

	slow := h.Subscribe()
	fast := h.Subscribe()

	got := []string{}
	for i := 1; i <= 5; i++ {
		h.Publish(event(i))
		for _, msg := range drain(fast) {
			if msg.Type == WhaleTransaction {
				got = append(got, eventID(t, msg))
			}
		}
	}
	assert.Equal(t, []string{"E1", "E2", "E3", "E4", "E5"}, got)

	// snapshot plus the two events that fit, then the channel is closed
	slowMsgs := []Message{}
	for msg := range slow.Messages() {
		slowMsgs = append(slowMsgs, msg)
	}
	require.Len(t, slowMsgs, 3)
	assert.Equal(t, "E1", eventID(t, slowMsgs[1]))
	assert.Equal(t, "E2", eventID(t, slowMsgs[2]))

	assert.Equal(t, 1, h.Count())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DroppedSubscribers))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Subscribers))

	// removing an already dropped subscriber is a no-op
	assert.NotPanics(t, func() { h.Unsubscribe(slow) })
}

func TestUnsubscribe(t *testing.T) {
	h := New(store.NewRecentEvents(10))
	sub := h.Subscribe()
	assert.Equal(t, 1, h.Count())

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	assert.Equal(t, 0, h.Count())

	assert.NotPanics(t, func() { h.Publish(event(1)) })

	msgs := []Message{}
	for msg := range sub.Messages() {
		msgs = append(msgs, msg)
	}
	assert.Len(t, msgs, 1)
}

func TestClose(t *testing.T) {
	h := New(store.NewRecentEvents(10))
	sub := h.Subscribe()
	h.Close()

	msg, ok := <-sub.Messages()
	require.True(t, ok)
	assert.Equal(t, InitialData, msg.Type)
	_, ok = <-sub.Messages()
	assert.False(t, ok)

	late := h.Subscribe()
	_, ok = <-late.Messages()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Count())
}

// Subscribers joining while events are published see a gap free, duplicate
// free sequence: their snapshot followed by every later event.
func TestConcurrentSubscribeHasNoGaps(t *testing.T) {
	const total = 200
	h := New(store.NewRecentEvents(total), WithQueueSize(total))

	subs := make(chan *Subscription, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subs <- h.Subscribe()
		}()
	}

	for i := 1; i <= total; i++ {
		h.Publish(event(i))
	}
	wg.Wait()
	close(subs)

	for sub := range subs {
		msgs := drain(sub)
		require.NotEmpty(t, msgs)

		snap := snapshotIDs(t, msgs[0])
		next := len(snap) + 1
		for i, id := range snap {
			assert.Equal(t, fmt.Sprintf("E%d", len(snap)-i), id)
		}
		for _, msg := range msgs[1:] {
			assert.Equal(t, fmt.Sprintf("E%d", next), eventID(t, msg))
			next++
		}
		assert.Equal(t, total+1, next)
	}
}
