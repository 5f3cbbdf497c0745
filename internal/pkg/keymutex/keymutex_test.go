package keymutex_test

import (
	"sync"
	"testing"
	"time"

	"dispatch/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := keymutex.New()

	var mu sync.Mutex
	events := make([]int, 0, 4)

	unlock := km.Lock("actor/1")

	done := make(chan struct{})
	go func() {
		u := km.Lock("actor/1")
		mu.Lock()
		events = append(events, 2)
		mu.Unlock()
		u()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	events = append(events, 1)
	mu.Unlock()
	unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second holder never acquired the key")
	}

	assert.Equal(t, []int{1, 2}, events)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := keymutex.New()

	unlock := km.Lock("actor/1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := km.Lock("actor/2")
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated key was blocked")
	}
}

func TestKeyedMutex_MultiKeyNoDeadlock(t *testing.T) {
	km := keymutex.New()

	// Opposite declaration orders must not deadlock: acquisition is sorted.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			u := km.Lock("actor/1", "order/9")
			u()
		}
	}()
	go func() {
		defer wg.Done()
		for range 100 {
			u := km.Lock("order/9", "actor/1")
			u()
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deadlock between cross-ordered multi-key locks")
	}
}

func TestKeyedMutex_DuplicateKeysAndUnlockIdempotent(t *testing.T) {
	km := keymutex.New()

	unlock := km.Lock("order/1", "order/1")
	unlock()
	require.NotPanics(t, unlock)

	// Key is free again after release.
	u := km.Lock("order/1")
	u()
}
