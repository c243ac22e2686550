// Package store keeps a bounded, newest-first history of whale events.
package store

import (
	"strings"
	"sync/atomic"

	"github.com/Mantelijo/whale-alert/internal/whale"
)

const DefaultCapacity = 100

// RecentEvents is a single-writer, many-reader buffer of the most recent
// events. Append publishes a new immutable slice, so readers never take a
// lock and never observe a partially applied insert. Append must only be
// called from one goroutine at a time.
type RecentEvents struct {
	capacity int
	events   atomic.Pointer[[]*whale.WhaleEvent]
}

func NewRecentEvents(capacity int) *RecentEvents {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &RecentEvents{capacity: capacity}
	empty := make([]*whale.WhaleEvent, 0)
	s.events.Store(&empty)
	return s
}

// Append inserts ev at the front, evicting the oldest event once the
// capacity is reached.
func (s *RecentEvents) Append(ev *whale.WhaleEvent) {
	cur := *s.events.Load()

	n := len(cur) + 1
	if n > s.capacity {
		n = s.capacity
	}
	next := make([]*whale.WhaleEvent, n)
	next[0] = ev
	copy(next[1:], cur)

	s.events.Store(&next)
}

// Snapshot returns the events newest first. The returned slice is owned by
// the caller.
func (s *RecentEvents) Snapshot() []*whale.WhaleEvent {
	cur := *s.events.Load()
	out := make([]*whale.WhaleEvent, len(cur))
	copy(out, cur)
	return out
}

// FilterByAsset returns the events of one asset, newest first. The native
// asset is selected by its symbol. Symbols compare case-insensitively.
func (s *RecentEvents) FilterByAsset(symbol string) []*whale.WhaleEvent {
	cur := *s.events.Load()
	out := make([]*whale.WhaleEvent, 0)
	for _, ev := range cur {
		if strings.EqualFold(ev.Symbol, symbol) {
			out = append(out, ev)
		}
	}
	return out
}

func (s *RecentEvents) Len() int {
	return len(*s.events.Load())
}

func (s *RecentEvents) Capacity() int {
	return s.capacity
}
