package dispatch

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// reminderSet tracks the repeating disconnect prompts sent to admins while
// a working courier waits for approval. One reminder per courier; the
// first admin response cancels it.
type reminderSet struct {
	mu       sync.Mutex
	interval time.Duration
	timers   map[kernel.ActorID]chan struct{}
}

func newReminderSet(interval time.Duration) *reminderSet {
	return &reminderSet{
		interval: interval,
		timers:   make(map[kernel.ActorID]chan struct{}),
	}
}

// Start begins repeating fire every interval until Stop is called for the
// courier. Starting while a reminder is already running restarts it.
func (r *reminderSet) Start(courierID kernel.ActorID, fire func(ctx context.Context)) {
	r.mu.Lock()
	if stop, ok := r.timers[courierID]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	r.timers[courierID] = stop
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fire(context.Background())
			}
		}
	}()
}

// Stop cancels the courier's reminder and reports whether one was running.
func (r *reminderSet) Stop(courierID kernel.ActorID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	stop, ok := r.timers[courierID]
	if !ok {
		return false
	}
	close(stop)
	delete(r.timers, courierID)
	return true
}

// StopAll cancels every running reminder, used on shutdown.
func (r *reminderSet) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stop := range r.timers {
		close(stop)
		delete(r.timers, id)
	}
}
