package store

import (
	"sync"

	"github.com/HeitorVic/my-wallet/internal/core"
)

// Hub fans out per-owner snapshots to in-process subscribers. Every backend
// uses it to implement Subscribe: the API server is the only writer, so
// in-process fanout observes all changes.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*hubSubscription]struct{}
	closed bool
}

// NewHub creates an empty broadcast hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*hubSubscription]struct{})}
}

// Subscribe registers a listener for one owner and queues its first
// snapshot. fetch runs under the hub lock, so no Publish can land between
// the read and the registration: the first delivery is never stale.
func (h *Hub) Subscribe(owner string, fetch func() ([]core.Transaction, error)) (Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &hubSubscription{
		hub:   h,
		owner: owner,
		ch:    make(chan []core.Transaction, 1),
	}
	if h.closed {
		close(sub.ch)
		sub.stopped = true
		return sub, nil
	}

	current, err := fetch()
	if err != nil {
		return nil, err
	}

	if h.subs[owner] == nil {
		h.subs[owner] = make(map[*hubSubscription]struct{})
	}
	h.subs[owner][sub] = struct{}{}

	sub.ch <- current
	return sub, nil
}

// Publish delivers a fresh snapshot to every subscriber of the owner.
// A subscriber that has not consumed the previous snapshot only receives
// the newest one.
func (h *Hub) Publish(owner string, snapshot []core.Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[owner] {
		// Drop the stale pending snapshot, if any
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snapshot
	}
}

// Close stops every subscription
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for owner, subs := range h.subs {
		for sub := range subs {
			if !sub.stopped {
				sub.stopped = true
				close(sub.ch)
			}
		}
		delete(h.subs, owner)
	}
}

type hubSubscription struct {
	hub     *Hub
	owner   string
	ch      chan []core.Transaction
	stopped bool
}

func (s *hubSubscription) Snapshots() <-chan []core.Transaction {
	return s.ch
}

func (s *hubSubscription) Stop() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	delete(s.hub.subs[s.owner], s)
	close(s.ch)
}
