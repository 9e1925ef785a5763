package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/printworks/platetrack/internal/archive"
	"github.com/printworks/platetrack/internal/common"
	"github.com/printworks/platetrack/internal/store"
)

func main() {
	var (
		list   = flag.Bool("list", false, "list history batches and exit")
		remove = flag.String("delete", "", "delete the history batch with this id and exit")
		stock  = flag.Float64("stock", -1, "stock level to snapshot (defaults to the stored level)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	var kv store.KV
	var err error
	if cfg.Store.DSN != "" {
		kv, err = store.OpenPostgres(ctx, cfg.Store, logger)
	} else {
		kv, err = store.OpenSQLite(ctx, cfg.Store.SQLitePath, logger)
	}
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	snapshots := store.NewSnapshots(kv, logger)
	svc := archive.NewService(snapshots, logger)

	switch {
	case *list:
		batches, err := svc.List(ctx)
		if err != nil {
			logger.Error("failed to load history", "error", err)
			os.Exit(1)
		}
		for _, b := range batches {
			fmt.Printf("%s  %04d-%02d  items=%d  stock=%.2f\n", b.ID, b.Year, int(b.Month), len(b.Items), b.StockLevel)
		}
		return

	case *remove != "":
		if err := svc.DeleteBatch(ctx, *remove); err != nil {
			logger.Error("failed to delete batch", "batch_id", *remove, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted batch %s\n", *remove)
		return
	}

	stockLevel := *stock
	if stockLevel < 0 {
		stockLevel, err = snapshots.LoadStock(ctx, 0)
		if err != nil {
			logger.Error("failed to load stock level", "error", err)
			os.Exit(1)
		}
	} else if err := snapshots.SaveStock(ctx, stockLevel); err != nil {
		logger.Error("failed to save stock level", "error", err)
		os.Exit(1)
	}

	batch, err := svc.Archive(ctx, stockLevel)
	if err != nil {
		logger.Error("archive failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Archive complete!\n")
	fmt.Printf("- Batch: %s\n", batch.ID)
	fmt.Printf("- Items: %d\n", len(batch.Items))
	fmt.Printf("- Period: %04d-%02d\n", batch.Year, int(batch.Month))
	fmt.Printf("- Stock: %.2f\n", batch.StockLevel)
}
