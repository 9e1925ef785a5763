package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/store"
)

func newSnapshots(t *testing.T) (*store.Snapshots, store.KV) {
	t.Helper()
	kv, err := store.OpenSQLite(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return store.NewSnapshots(kv, nil), kv
}

func TestSnapshots_ItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	snaps, _ := newSnapshots(t)

	// empty store yields the default, not an error
	items, err := snaps.LoadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	in := []entity.OrderItem{
		{
			ID:          "one",
			JobNumber:   "4787",
			Client:      "Acme",
			Kind:        constants.KindNew,
			IssueDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			WidthCm:     18,
			HeightCm:    24,
			Games:       4,
			PricePerCm2: 0.0798,
		},
	}
	require.NoError(t, snaps.SaveItems(ctx, in))

	out, err := snaps.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}

// Stored legacy shapes are migrated on load instead of being rejected.
func TestSnapshots_LoadItemsMigratesLegacyShapes(t *testing.T) {
	ctx := context.Background()
	snaps, kv := newSnapshots(t)

	legacy := `[{"number":"9001","width":"18.5","games":"abc"}]`
	require.NoError(t, kv.Put(ctx, store.KeyItems, []byte(legacy)))

	out, err := snaps.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "9001", out[0].JobNumber)
	assert.Equal(t, 18.5, out[0].WidthCm)
	assert.Equal(t, 1, out[0].Games)
	assert.NotEmpty(t, out[0].ID)
	assert.Equal(t, constants.DefaultPricePerCm2, out[0].PricePerCm2)
}

func TestSnapshots_CorruptItemsYieldDefault(t *testing.T) {
	ctx := context.Background()
	snaps, kv := newSnapshots(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"broken_json", `{"items": [`},
		{"wrong_shape", `{"not":"an array"}`},
		{"array_of_scalars", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, kv.Put(ctx, store.KeyItems, []byte(tt.raw)))
			out, err := snaps.LoadItems(ctx)
			require.NoError(t, err, "corrupt state is discarded, never surfaced")
			assert.Empty(t, out)
		})
	}
}

func TestSnapshots_HistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	snaps, _ := newSnapshots(t)

	in := []entity.HistoryBatch{
		{
			ID:         "batch-1",
			CreatedAt:  time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
			Items:      []entity.OrderItem{{ID: "one", Games: 1}},
			StockLevel: 42.5,
			Month:      time.August,
			Year:       2026,
		},
	}
	require.NoError(t, snaps.SaveHistory(ctx, in))

	out, err := snaps.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSnapshots_CorruptHistoryYieldDefault(t *testing.T) {
	ctx := context.Background()
	snaps, kv := newSnapshots(t)

	// missing required fields fails the schema, not the caller
	require.NoError(t, kv.Put(ctx, store.KeyHistory, []byte(`[{"stock_level": 1}]`)))
	out, err := snaps.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSnapshots_Stock(t *testing.T) {
	ctx := context.Background()
	snaps, kv := newSnapshots(t)

	v, err := snaps.LoadStock(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v, "absent stock returns the default")

	require.NoError(t, snaps.SaveStock(ctx, 55.5))
	v, err = snaps.LoadStock(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 55.5, v)

	require.NoError(t, kv.Put(ctx, store.KeyStock, []byte(`"not a number"`)))
	v, err = snaps.LoadStock(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v, "corrupt stock falls back to the default")
}
