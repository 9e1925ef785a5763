package batch

import (
	"fmt"
	"strings"

	"github.com/printworks/platetrack/internal/entity"
)

// FormatLine renders one order item as the transmission line format. The
// partitioner sizes batches against exactly this serialization, so body
// building and size accounting can never drift apart.
func FormatLine(item entity.OrderItem) string {
	jobNumber := item.JobNumber
	if jobNumber == "" {
		jobNumber = "-"
	}
	line := fmt.Sprintf("#%s | %s | %.2fx%.2f cm | x%d | %s",
		jobNumber, item.Client, item.WidthCm, item.HeightCm, item.Games, item.Kind)
	if item.ColorPlan != "" {
		line += " | " + item.ColorPlan
	}
	return line
}

// FormatBody renders a full batch body, one line per item plus a header
// naming the batch position.
func FormatBody(b entity.EmailBatch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order batch %d of %d (%d items)\n\n", b.BatchNumber, b.TotalBatches, len(b.Items))
	for _, item := range b.Items {
		sb.WriteString(FormatLine(item))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// lineSize is the byte cost of one item in a batch body.
func lineSize(item entity.OrderItem) int {
	return len(FormatLine(item)) + 1 // trailing newline
}
