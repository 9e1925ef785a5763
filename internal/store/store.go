package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/migrate"
)

// Storage keys for the persisted documents.
const (
	KeyItems   = "order_items"
	KeyHistory = "history_batches"
	KeyStock   = "stock_level"
)

// KV is the raw key-value layer. Backends only move bytes; corruption
// policy lives in Snapshots.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Document shape checks applied on load. A persisted value that fails its
// schema is treated as corrupt, discarded and replaced by the default —
// never surfaced to the caller as an error.
const itemsSchemaJSON = `{
	"type": "array",
	"items": {"type": "object"}
}`

const historySchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "created_at", "items"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"created_at": {"type": "string"},
			"items": {"type": "array"},
			"stock_level": {"type": "number"}
		}
	}
}`

func mustCompile(name, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(err)
	}
	return c.MustCompile(name)
}

var (
	itemsSchema   = mustCompile("items.json", itemsSchemaJSON)
	historySchema = mustCompile("history.json", historySchemaJSON)
)

// Snapshots is the typed persistence facade over a KV backend. Loads are
// total: corrupt stored state logs a warning and yields the default.
type Snapshots struct {
	kv     KV
	logger *slog.Logger
}

func NewSnapshots(kv KV, logger *slog.Logger) *Snapshots {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshots{kv: kv, logger: logger}
}

// LoadItems returns the persisted working set, run through record
// migration so stale legacy shapes come back as canonical items.
func (s *Snapshots) LoadItems(ctx context.Context) ([]entity.OrderItem, error) {
	raw, ok, err := s.kv.Get(ctx, KeyItems)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.OrderItem{}, nil
	}

	var decoded []any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("store.items.corrupt", "error", err)
		return []entity.OrderItem{}, nil
	}
	var generic any = decoded
	if err := itemsSchema.Validate(generic); err != nil {
		s.logger.Warn("store.items.schema_violation", "error", err)
		return []entity.OrderItem{}, nil
	}
	return migrate.MigrateAll(decoded, s.logger), nil
}

func (s *Snapshots) SaveItems(ctx context.Context, items []entity.OrderItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, KeyItems, raw)
}

// LoadHistory returns all archived batches, oldest first.
func (s *Snapshots) LoadHistory(ctx context.Context) ([]entity.HistoryBatch, error) {
	raw, ok, err := s.kv.Get(ctx, KeyHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.HistoryBatch{}, nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		s.logger.Warn("store.history.corrupt", "error", err)
		return []entity.HistoryBatch{}, nil
	}
	if err := historySchema.Validate(generic); err != nil {
		s.logger.Warn("store.history.schema_violation", "error", err)
		return []entity.HistoryBatch{}, nil
	}

	var batches []entity.HistoryBatch
	if err := json.Unmarshal(raw, &batches); err != nil {
		s.logger.Warn("store.history.corrupt", "error", err)
		return []entity.HistoryBatch{}, nil
	}
	return batches, nil
}

func (s *Snapshots) SaveHistory(ctx context.Context, batches []entity.HistoryBatch) error {
	raw, err := json.Marshal(batches)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, KeyHistory, raw)
}

// LoadStock returns the persisted stock level, or def when absent or
// unreadable.
func (s *Snapshots) LoadStock(ctx context.Context, def float64) (float64, error) {
	raw, ok, err := s.kv.Get(ctx, KeyStock)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("store.stock.corrupt", "error", err)
		return def, nil
	}
	return v, nil
}

func (s *Snapshots) SaveStock(ctx context.Context, v float64) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, KeyStock, raw)
}
