package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func counter(values ...string) (func() ([]byte, error), *int32) {
	var calls int32
	return func() ([]byte, error) {
		n := atomic.AddInt32(&calls, 1)
		return []byte(values[int(n-1)%len(values)]), nil
	}, &calls
}

func TestGetOrComputeServesCachedValueWithinWindow(t *testing.T) {
	clock := newFakeClock()
	c := New(20*time.Second, WithClock(clock.Now))
	compute, calls := counter("first", "second")

	v, err := c.GetOrCompute("index_page:", compute)
	require.NoError(t, err)
	assert.Equal(t, "first", string(v))

	clock.Advance(19 * time.Second)
	v, err = c.GetOrCompute("index_page:", compute)
	require.NoError(t, err)
	assert.Equal(t, "first", string(v))
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestEntryLifecycle(t *testing.T) {
	clock := newFakeClock()
	c := New(20*time.Second, WithClock(clock.Now))
	compute, calls := counter("first", "second")

	// absent
	_, ok := c.Get("k")
	assert.False(t, ok)

	// populated
	_, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	// expired, then evicted on lookup
	clock.Advance(20 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	// populated again with a recomputed value
	v, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, "second", string(v))
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestKeysAreIndependent(t *testing.T) {
	c := New(time.Minute)

	a, _ := c.GetOrCompute("index_page:page=1", func() ([]byte, error) { return []byte("page one"), nil })
	b, _ := c.GetOrCompute("index_page:page=2", func() ([]byte, error) { return []byte("page two"), nil })

	assert.Equal(t, "page one", string(a))
	assert.Equal(t, "page two", string(b))
	assert.Equal(t, 2, c.Len())
}

func TestInvalidateAll(t *testing.T) {
	c := New(time.Hour)
	compute, calls := counter("first", "second")

	c.GetOrCompute("a", compute)
	c.Set("b", []byte("other"))
	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("a", compute)
	require.NoError(t, err)
	assert.Equal(t, "second", string(v))
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestErrorsAreNotCached(t *testing.T) {
	c := New(time.Hour)
	boom := errors.New("database is down")

	_, err := c.GetOrCompute("k", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("k", func() ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", string(v))
}

func TestSetSweepsExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	c := New(10*time.Second, WithClock(clock.Now))

	c.Set("old", []byte("x"))
	clock.Advance(11 * time.Second)
	c.Set("new", []byte("y"))

	assert.Equal(t, 1, c.Len())
}

func TestConcurrentMissesComputeOnce(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	release := make(chan struct{})

	compute := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("page"), nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute("k", compute)
			if err == nil {
				results[i] = string(v)
			}
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "page", r)
	}
}

func TestZeroTTLNeverStores(t *testing.T) {
	c := New(0)
	compute, calls := counter("a", "b")

	c.GetOrCompute("k", compute)
	v, _ := c.GetOrCompute("k", compute)

	assert.Equal(t, "b", string(v))
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestInvalidateAllDiscardsRunningCompute(t *testing.T) {
	c := New(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := c.GetOrCompute("index_page:", func() ([]byte, error) {
			close(started)
			<-release
			return []byte("stale"), nil
		})
		done <- string(v)
	}()

	<-started
	c.InvalidateAll()
	close(release)

	// the caller that started the computation still gets its result
	assert.Equal(t, "stale", <-done)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("index_page:", func() ([]byte, error) { return []byte("fresh"), nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(v))
}

func TestLookupAfterInvalidateDoesNotJoinRunningCompute(t *testing.T) {
	c := New(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go c.GetOrCompute("k", func() ([]byte, error) {
		close(started)
		<-release
		return []byte("stale"), nil
	})

	<-started
	c.InvalidateAll()

	v, err := c.GetOrCompute("k", func() ([]byte, error) { return []byte("fresh"), nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(v))

	cached, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "fresh", string(cached))
}
