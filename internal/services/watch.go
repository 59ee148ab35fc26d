package services

import (
	"context"
	"log/slog"
	"sync"

	"lifescore/internal/core"
)

// Subscription is a live view of the full record history, newest date
// first. Updates has a single-slot buffer with latest-value-wins delivery:
// a slow consumer sees the freshest snapshot, never a backlog.
type Subscription struct {
	updates chan []core.ScoreRecord
	id      int
	owner   *watcherSet
}

// Updates delivers record snapshots. The channel is closed when the
// subscription is cancelled.
func (sub *Subscription) Updates() <-chan []core.ScoreRecord {
	return sub.updates
}

// Close stops delivery. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.owner.remove(sub.id)
}

type watcherSet struct {
	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

// Watch subscribes to record changes. The current snapshot is delivered
// first; the subscription ends when ctx is cancelled or Close is called.
func (s *ScoreService) Watch(ctx context.Context) *Subscription {
	sub := s.watchers.add()

	records, err := s.store.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load initial records for watcher", "error", err)
	} else {
		sub.updates <- records
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub
}

// notify pushes a fresh snapshot to every watcher after a successful
// store mutation.
func (s *ScoreService) notify(ctx context.Context) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to reload records for watchers", "error", err)
		return
	}
	s.watchers.broadcast(records)
}

func (w *watcherSet) add() *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.subs == nil {
		w.subs = make(map[int]*Subscription)
	}
	w.nextID++
	sub := &Subscription{
		updates: make(chan []core.ScoreRecord, 1),
		id:      w.nextID,
		owner:   w,
	}
	w.subs[sub.id] = sub
	return sub
}

func (w *watcherSet) remove(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if sub, ok := w.subs[id]; ok {
		delete(w.subs, id)
		close(sub.updates)
	}
}

func (w *watcherSet) broadcast(records []core.ScoreRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sub := range w.subs {
		// Drop any undelivered snapshot, then send the fresh one.
		select {
		case <-sub.updates:
		default:
		}
		select {
		case sub.updates <- records:
		default:
		}
	}
}
