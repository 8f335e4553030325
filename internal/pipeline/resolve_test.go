package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackdede/carbura/internal/observability"
)

// fnResolver adapts a function to the resolver interface.
type fnResolver func(ctx context.Context, id int) (string, error)

func (f fnResolver) ResolveName(ctx context.Context, id int) (string, error) {
	return f(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNamePoolResolveAll(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		return fmt.Sprintf("Station %d", id), nil
	})
	pool := NewNamePool(resolver, 4, testLogger(), metrics)

	ids := []int{100, 200, 300}
	names := pool.ResolveAll(context.Background(), ids, NopObserver{})

	require.Len(t, names, 3)
	assert.Equal(t, "Station 100", names[100])
	assert.Equal(t, "Station 200", names[200])
	assert.Equal(t, "Station 300", names[300])
}

func TestNamePoolAssociationUnderRandomCompletionOrder(t *testing.T) {
	// Each lookup sleeps a random amount so completions interleave in an
	// order unrelated to submission order. Every name must still land on
	// its own id.
	metrics := observability.NewMetricsForTesting()

	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		return fmt.Sprintf("Station %d", id), nil
	})
	pool := NewNamePool(resolver, 16, testLogger(), metrics)

	ids := make([]int, 200)
	for i := range ids {
		ids[i] = i + 1
	}

	names := pool.ResolveAll(context.Background(), ids, NopObserver{})

	require.Len(t, names, len(ids))
	for _, id := range ids {
		assert.Equal(t, fmt.Sprintf("Station %d", id), names[id])
	}
}

func TestNamePoolAssociationUnderReverseCompletionOrder(t *testing.T) {
	// Earlier ids sleep longer, so lookups complete in roughly reverse
	// submission order.
	metrics := observability.NewMetricsForTesting()

	n := 20
	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		time.Sleep(time.Duration(n-id) * time.Millisecond)
		return fmt.Sprintf("Station %d", id), nil
	})
	pool := NewNamePool(resolver, n, testLogger(), metrics)

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}

	names := pool.ResolveAll(context.Background(), ids, NopObserver{})

	require.Len(t, names, n)
	for _, id := range ids {
		assert.Equal(t, fmt.Sprintf("Station %d", id), names[id])
	}
}

func TestNamePoolPartialFailure(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		if id%3 == 0 {
			return "", fmt.Errorf("lookup %d: boom", id)
		}
		return fmt.Sprintf("Station %d", id), nil
	})
	pool := NewNamePool(resolver, 8, testLogger(), metrics)

	ids := make([]int, 30)
	for i := range ids {
		ids[i] = i + 1
	}

	names := pool.ResolveAll(context.Background(), ids, NopObserver{})

	for _, id := range ids {
		if id%3 == 0 {
			_, ok := names[id]
			assert.False(t, ok, "id %d should be absent", id)
		} else {
			assert.Equal(t, fmt.Sprintf("Station %d", id), names[id])
		}
	}
}

func TestNamePoolEmptyNameIsAbsent(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		return "", nil
	})
	pool := NewNamePool(resolver, 2, testLogger(), metrics)

	names := pool.ResolveAll(context.Background(), []int{1, 2, 3}, NopObserver{})
	assert.Empty(t, names)
}

func TestNamePoolBoundsConcurrency(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	const workers = 5
	var inFlight, peak atomic.Int64
	var mu sync.Mutex

	resolver := fnResolver(func(_ context.Context, id int) (string, error) {
		cur := inFlight.Add(1)
		mu.Lock()
		if cur > peak.Load() {
			peak.Store(cur)
		}
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return "n", nil
	})
	pool := NewNamePool(resolver, workers, testLogger(), metrics)

	ids := make([]int, 60)
	for i := range ids {
		ids[i] = i + 1
	}
	pool.ResolveAll(context.Background(), ids, NopObserver{})

	assert.LessOrEqual(t, peak.Load(), int64(workers))
}

func TestNamePoolContextCancelled(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	started := make(chan struct{}, 1)
	block := make(chan struct{})
	resolver := fnResolver(func(ctx context.Context, id int) (string, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-block:
			return "n", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	pool := NewNamePool(resolver, 1, testLogger(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	ids := make([]int, 50)
	for i := range ids {
		ids[i] = i + 1
	}

	done := make(chan map[int]string, 1)
	go func() {
		done <- pool.ResolveAll(ctx, ids, NopObserver{})
	}()

	select {
	case names := <-done:
		assert.Empty(t, names)
	case <-time.After(5 * time.Second):
		t.Fatal("ResolveAll did not return after cancellation")
	}
	close(block)
}

func TestNamePoolDefaultsWorkerCount(t *testing.T) {
	pool := NewNamePool(fnResolver(func(context.Context, int) (string, error) {
		return "", nil
	}), 0, testLogger(), observability.NewMetricsForTesting())

	assert.Equal(t, DefaultWorkers, pool.workers)
}
