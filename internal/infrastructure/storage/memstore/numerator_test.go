package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/core/numerator"
)

func TestNumerator_SequentialReferences(t *testing.T) {
	n := NewNumerator()
	ctx := context.Background()
	cfg := numerator.DefaultConfig("DEV")
	period := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	first, err := n.NextReference(ctx, cfg, period)
	require.NoError(t, err)
	second, err := n.NextReference(ctx, cfg, period)
	require.NoError(t, err)

	assert.Equal(t, "DEV-2026-0001", first)
	assert.Equal(t, "DEV-2026-0002", second)
}

func TestNumerator_YearlyReset(t *testing.T) {
	n := NewNumerator()
	ctx := context.Background()
	cfg := numerator.DefaultConfig("DEV")

	_, err := n.NextReference(ctx, cfg, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	ref, err := n.NextReference(ctx, cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "DEV-2026-0001", ref)
}

func TestNumerator_IndependentPrefixes(t *testing.T) {
	n := NewNumerator()
	ctx := context.Background()
	period := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	_, err := n.NextReference(ctx, numerator.DefaultConfig("DEV"), period)
	require.NoError(t, err)

	ref, err := n.NextReference(ctx, numerator.DefaultConfig("FAC"), period)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-0001", ref)
}

func TestNumerator_ConcurrentCallsNeverCollide(t *testing.T) {
	n := NewNumerator()
	cfg := numerator.DefaultConfig("DEV")
	period := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	const workers = 20
	refs := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := n.NextReference(context.Background(), cfg, period)
			assert.NoError(t, err)
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, workers)
	for ref := range refs {
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
	assert.Len(t, seen, workers)
}
