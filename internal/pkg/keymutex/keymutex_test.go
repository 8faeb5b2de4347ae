package keymutex

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMutualExclusionPerKey(t *testing.T) {
	km := New()

	const workers = 32
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("house-1")
			defer km.Unlock("house-1")
			// A data race here would be caught by -race; the final count
			// catches lost updates either way.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	km := New()
	km.Lock("house-1")
	defer km.Unlock("house-1")

	done := make(chan struct{})
	go func() {
		km.Lock("house-2")
		km.Unlock("house-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestIdleEntriesAreReleased(t *testing.T) {
	km := New()

	km.Lock("house-1")
	km.Unlock("house-1")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries)
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	km := New()
	assert.Panics(t, func() { km.Unlock("never-locked") })
}
