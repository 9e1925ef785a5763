package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/entity"
)

// itemOfSize pads the client field until the item's serialized line costs
// exactly n bytes in a batch body.
func itemOfSize(t *testing.T, id string, n int) entity.OrderItem {
	t.Helper()
	item := entity.OrderItem{
		ID:        id,
		JobNumber: "1000",
		Kind:      constants.KindNew,
		WidthCm:   10,
		HeightCm:  10,
		Games:     1,
	}
	base := lineSize(item)
	require.GreaterOrEqual(t, n, base, "requested size smaller than minimal line")
	item.Client = strings.Repeat("c", n-base)
	require.Equal(t, n, lineSize(item))
	return item
}

func TestPartition_GreedySplit(t *testing.T) {
	items := []entity.OrderItem{
		itemOfSize(t, "a", 1000),
		itemOfSize(t, "b", 1000),
		itemOfSize(t, "c", 1000),
		itemOfSize(t, "d", 1500),
	}

	batches := Partition(items, 4000)

	// the 4th item would tip the first batch to 4500, so it opens a new one
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Items, 3)
	assert.Len(t, batches[1].Items, 1)
	assert.Equal(t, "d", batches[1].Items[0].ID)

	assert.Equal(t, 1, batches[0].BatchNumber)
	assert.Equal(t, 2, batches[1].BatchNumber)
	for _, b := range batches {
		assert.Equal(t, 2, b.TotalBatches)
	}
}

func TestPartition_ExactBudgetFits(t *testing.T) {
	items := []entity.OrderItem{
		itemOfSize(t, "a", 2000),
		itemOfSize(t, "b", 2000),
	}
	batches := Partition(items, 4000)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Items, 2)
}

func TestPartition_OversizeItemStillShips(t *testing.T) {
	items := []entity.OrderItem{
		itemOfSize(t, "small", 500),
		itemOfSize(t, "huge", 5000),
		itemOfSize(t, "after", 500),
	}
	batches := Partition(items, 4000)

	require.Len(t, batches, 3)
	assert.Equal(t, "small", batches[0].Items[0].ID)
	assert.Equal(t, "huge", batches[1].Items[0].ID)
	assert.Equal(t, "after", batches[2].Items[0].ID)
	for _, b := range batches {
		assert.NotEmpty(t, b.Items, "no empty batches")
		assert.Equal(t, 3, b.TotalBatches)
	}
}

func TestPartition_EmptyInput(t *testing.T) {
	assert.Empty(t, Partition(nil, 4000))
}

func TestPartition_DefaultBudget(t *testing.T) {
	items := []entity.OrderItem{itemOfSize(t, "a", 100)}
	batches := Partition(items, 0)
	require.Len(t, batches, 1)
	assert.Equal(t, 1, batches[0].TotalBatches)
}

func TestPartition_OrderPreserved(t *testing.T) {
	var items []entity.OrderItem
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, id := range ids {
		items = append(items, itemOfSize(t, id, 1500))
	}

	var got []string
	for _, b := range Partition(items, 4000) {
		for _, item := range b.Items {
			got = append(got, item.ID)
		}
	}
	assert.Equal(t, ids, got)
}

func TestFormatBody(t *testing.T) {
	b := entity.EmailBatch{
		Items: []entity.OrderItem{
			{JobNumber: "4787", Client: "Acme", WidthCm: 18, HeightCm: 24, Games: 4, Kind: constants.KindNew, ColorPlan: "CMYK"},
		},
		BatchNumber:  1,
		TotalBatches: 2,
	}
	body := FormatBody(b)
	assert.Contains(t, body, "Order batch 1 of 2 (1 items)")
	assert.Contains(t, body, "#4787 | Acme | 18.00x24.00 cm | x4 | New | CMYK")
}
