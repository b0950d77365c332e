package counter

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextValueAutoCreatesItem(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	value, err := store.GetNextValue("packet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)

	value, err = store.GetNextValue("packet")
	require.NoError(t, err)
	assert.Equal(t, int64(2), value)
}

func TestGetCurrentValueDoesNotMutate(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetNextValue("packet")
	require.NoError(t, err)

	current, err := store.GetCurrentValue("packet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)

	current, err = store.GetCurrentValue("packet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)
}

func TestGetCurrentValueUnknownItem(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetCurrentValue("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestReset(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetNextValue("packet")
	require.NoError(t, err)
	_, err = store.GetNextValue("packet")
	require.NoError(t, err)

	value, err := store.Reset("packet")
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

// TestGetNextValueConcurrentGoroutinesYieldEveryValueExactlyOnce hammers
// one item from many goroutines at once. Store.mu must serialize every
// call; without it, concurrent write transactions against
// modernc.org/sqlite raise SQLITE_BUSY instead of queuing.
func TestGetNextValueConcurrentGoroutinesYieldEveryValueExactlyOnce(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 1000

	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values = make(map[int64]int, goroutines*perGoroutine)
		anyErr error
	)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				value, err := store.GetNextValue("packet")
				mu.Lock()
				if err != nil {
					anyErr = err
				} else {
					values[value]++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.NoError(t, anyErr)
	require.Len(t, values, goroutines*perGoroutine)
	for value := int64(1); value <= int64(goroutines*perGoroutine); value++ {
		assert.Equalf(t, 1, values[value], "value %d should have been produced exactly once", value)
	}
}
