package trace

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/hive/hive-core/model"
)

func TestWriterRoundTripAndRotation(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "ticks")
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }

	target := model.Position{X: 2, Y: 3}
	first := model.TickRecord{
		Tick:     1,
		Friendly: 1,
		Decisions: []model.Decision{
			{Unit: uuid.New(), Behavior: "expand", Target: &target, Tier: "taxicab", Distance: 12},
		},
	}
	require.NoError(t, w.RecordTick(first))
	require.NoError(t, w.RecordTick(model.TickRecord{Tick: 2}))

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, w.RecordTick(model.TickRecord{Tick: 3}))
	require.NoError(t, w.Close())

	files, err := filepath.Glob(filepath.Join(dir, "ticks-*.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, files, 2, "a new file per UTC hour")

	recs, err := ReadFile(filepath.Join(dir, "ticks-2026-03-01-10.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Tick)
	require.Len(t, recs[0].Decisions, 1)
	assert.Equal(t, "expand", recs[0].Decisions[0].Behavior)
	assert.Equal(t, target, *recs[0].Decisions[0].Target)

	recs, err = ReadFile(filepath.Join(dir, "ticks-2026-03-01-11.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].Tick)
}

func TestCloseWithoutWrites(t *testing.T) {
	w := NewWriter(t.TempDir(), "ticks")
	assert.NoError(t, w.Close())
}
