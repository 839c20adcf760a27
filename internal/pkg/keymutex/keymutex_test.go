package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	t.Parallel()

	m := New()

	const workers = 32

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := m.Lock("3:7")
			defer unlock()

			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestLockDistinctKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	m := New()

	unlockA := m.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
}

func TestLockReleasesIdleKeys(t *testing.T) {
	t.Parallel()

	m := New()

	unlock := m.Lock("gone")
	unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	require.Empty(t, m.locks)
}
