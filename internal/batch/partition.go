package batch

import (
	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/entity"
)

// Partition splits items, in order, into batches whose serialized size
// stays under budgetBytes. A single item larger than the whole budget is
// still placed alone in its own batch; nothing is ever dropped and no
// batch is ever empty. TotalBatches can only be known once the partition
// is complete, so it is back-filled in a second pass.
func Partition(items []entity.OrderItem, budgetBytes int) []entity.EmailBatch {
	if budgetBytes <= 0 {
		budgetBytes = constants.DefaultBatchBudgetBytes
	}

	var batches []entity.EmailBatch
	var current []entity.OrderItem
	size := 0

	for _, item := range items {
		cost := lineSize(item)
		if size+cost > budgetBytes && len(current) > 0 {
			batches = append(batches, entity.EmailBatch{
				Items:       current,
				BatchNumber: len(batches) + 1,
			})
			current = nil
			size = 0
		}
		current = append(current, item)
		size += cost
	}
	if len(current) > 0 {
		batches = append(batches, entity.EmailBatch{
			Items:       current,
			BatchNumber: len(batches) + 1,
		})
	}

	for i := range batches {
		batches[i].TotalBatches = len(batches)
	}
	return batches
}
