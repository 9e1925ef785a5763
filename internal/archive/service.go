package archive

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/printworks/platetrack/internal/common"
	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/store"
)

var ErrEmptyWorkingSet = errors.New("working set is empty")

// Service manages history batches over the snapshot store.
type Service struct {
	snapshots *store.Snapshots
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(snapshots *store.Snapshots, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{snapshots: snapshots, logger: logger, now: time.Now}
}

// Archive moves the entire current working set into a new history batch
// and empties the live set. The batch's month/year label and stock level
// are fixed here and never recomputed. The history document is persisted
// before the working set is cleared, so a failure at any step leaves the
// working set intact.
func (s *Service) Archive(ctx context.Context, stockLevel float64) (entity.HistoryBatch, error) {
	items, err := s.snapshots.LoadItems(ctx)
	if err != nil {
		return entity.HistoryBatch{}, common.WrapError(err, "load working set")
	}
	if len(items) == 0 {
		return entity.HistoryBatch{}, ErrEmptyWorkingSet
	}

	now := s.now().UTC()
	batch := entity.HistoryBatch{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		Items:      items,
		StockLevel: stockLevel,
		Month:      now.Month(),
		Year:       now.Year(),
	}

	history, err := s.snapshots.LoadHistory(ctx)
	if err != nil {
		return entity.HistoryBatch{}, common.WrapError(err, "load history")
	}
	history = append(history, batch)
	if err := s.snapshots.SaveHistory(ctx, history); err != nil {
		return entity.HistoryBatch{}, common.WrapError(err, "save history")
	}
	if err := s.snapshots.SaveItems(ctx, []entity.OrderItem{}); err != nil {
		// The batch is already in history at this point. Name it so the
		// operator can clear the working set by hand instead of archiving
		// the same items twice.
		return entity.HistoryBatch{}, common.WrapError(err,
			"clear working set (history batch "+batch.ID+" is already saved; clear the working set before archiving again)")
	}

	s.logger.Info("archive.batch.created", "batch_id", batch.ID, "items", len(batch.Items), "stock", stockLevel)
	return batch, nil
}

// List returns all history batches, oldest first.
func (s *Service) List(ctx context.Context) ([]entity.HistoryBatch, error) {
	return s.snapshots.LoadHistory(ctx)
}

// UpdateBatch replaces the item list of one archived batch. Identity,
// timestamp, stock level and the month/year label are immutable.
func (s *Service) UpdateBatch(ctx context.Context, id string, items []entity.OrderItem) error {
	history, err := s.snapshots.LoadHistory(ctx)
	if err != nil {
		return common.WrapError(err, "load history")
	}
	for i := range history {
		if history[i].ID == id {
			history[i].Items = items
			if err := s.snapshots.SaveHistory(ctx, history); err != nil {
				return common.WrapError(err, "save history")
			}
			s.logger.Info("archive.batch.updated", "batch_id", id, "items", len(items))
			return nil
		}
	}
	return common.NewAppError("ARCHIVE_NOT_FOUND", "history batch "+id, common.ErrNotFound)
}

// DeleteBatch removes one archived batch by identifier.
func (s *Service) DeleteBatch(ctx context.Context, id string) error {
	history, err := s.snapshots.LoadHistory(ctx)
	if err != nil {
		return common.WrapError(err, "load history")
	}
	kept := history[:0]
	found := false
	for _, b := range history {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return common.NewAppError("ARCHIVE_NOT_FOUND", "history batch "+id, common.ErrNotFound)
	}
	if err := s.snapshots.SaveHistory(ctx, kept); err != nil {
		return common.WrapError(err, "save history")
	}
	s.logger.Info("archive.batch.deleted", "batch_id", id)
	return nil
}
