package constants

// Pricing and dimension policy for order items.
const (
	// DefaultPricePerCm2 is the fallback unit rate when a record carries
	// no usable price.
	DefaultPricePerCm2 = 0.0798

	// MaxDimensionCm caps plate width and height. Records above this are
	// rejected, not clamped.
	MaxDimensionCm = 500.0

	// DefaultMarginCm is added to both sides of each dimension when plate
	// size is estimated from page geometry.
	DefaultMarginCm = 1.0
)

// Outbound batching policy.
const (
	// DefaultBatchBudgetBytes bounds the serialized size of one email batch.
	DefaultBatchBudgetBytes = 4000

	// BytesPerItemEstimate is the advisory per-item size used for quick
	// capacity checks. The partitioner itself sizes the real serialization.
	BytesPerItemEstimate = 120
)
