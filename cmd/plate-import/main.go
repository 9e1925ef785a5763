package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/calc"
	"github.com/printworks/platetrack/internal/common"
	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/export"
	"github.com/printworks/platetrack/internal/ingest"
	"github.com/printworks/platetrack/internal/pdf"
	"github.com/printworks/platetrack/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem = flag.Bool("inmem", false, "use an in-memory SQLite store")
		dir   = flag.String("dir", "", "directory to import order PDFs from (required)")
		out   = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		watch = flag.Bool("watch", false, "keep watching the directory for new files")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "orders.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	kv, err := openStore(ctx, cfg, *inmem, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	snapshots := store.NewSnapshots(kv, logger)

	svc := ingest.NewService(pdf.NewReader(), cfg.Import.MarginCm, logger)

	files, err := collectFiles(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}

	logger.Info("starting import", "dir", *dir, "files", len(files))
	items, summary := svc.ImportFiles(ctx, files)

	if err := appendToWorkingSet(ctx, snapshots, items); err != nil {
		logger.Error("failed to persist working set", "error", err)
		os.Exit(1)
	}

	working, err := snapshots.LoadItems(ctx)
	if err != nil {
		logger.Error("failed to reload working set", "error", err)
		os.Exit(1)
	}
	xlsxBytes, err := export.NewService(logger).ExportOrdersXLSX(calc.CalculateAll(working))
	if err != nil {
		logger.Error("failed to export orders", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("import complete",
		"items_created", summary.Created,
		"files_processed", summary.FilesProcessed,
		"files_failed", summary.FilesFailed,
		"errors", len(summary.Errors),
		"output_file", *out)

	fmt.Printf("Import complete!\n")
	fmt.Printf("- Items created: %d\n", summary.Created)
	fmt.Printf("- Files processed: %d\n", summary.FilesProcessed)
	fmt.Printf("- Files failed: %d\n", summary.FilesFailed)
	for _, e := range summary.Errors {
		fmt.Printf("  ! %s\n", e)
	}
	fmt.Printf("- Output: %s\n", *out)

	if *watch {
		runWatch(ctx, cfg, svc, snapshots, *dir, logger)
	}

	if !summary.Success {
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) (store.KV, error) {
	if inmem {
		return store.OpenSQLite(ctx, ":memory:", logger)
	}
	if cfg.Store.DSN != "" {
		return store.OpenPostgres(ctx, cfg.Store, logger)
	}
	return store.OpenSQLite(ctx, cfg.Store.SQLitePath, logger)
}

// collectFiles walks root and returns order files in lexical order.
func collectFiles(root string) ([]ingest.SourceFile, error) {
	var files []ingest.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		files = append(files, ingest.FSFile{Path: path})
		return nil
	})
	return files, err
}

func appendToWorkingSet(ctx context.Context, snapshots *store.Snapshots, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	working, err := snapshots.LoadItems(ctx)
	if err != nil {
		return err
	}
	working = append(working, items...)
	return snapshots.SaveItems(ctx, working)
}

// runWatch keeps importing files as they are dropped into dir until the
// process is interrupted.
func runWatch(ctx context.Context, cfg *common.Config, svc *ingest.Service, snapshots *store.Snapshots, dir string, logger *slog.Logger) {
	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    []string{dir},
		Debounce: cfg.Import.Debounce,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	logger.Info("watching for new files", "dir", dir)

	for {
		select {
		case path, ok := <-evCh:
			if !ok {
				return
			}
			items, summary := svc.ImportFiles(ctx, []ingest.SourceFile{ingest.FSFile{Path: path}})
			if err := appendToWorkingSet(ctx, snapshots, items); err != nil {
				logger.Error("failed to persist working set", "path", path, "error", err)
				continue
			}
			logger.Info("watch import", "path", path, "items_created", summary.Created, "errors", len(summary.Errors))
		case err, ok := <-errCh:
			if !ok {
				return
			}
			logger.Error("watch error", "error", err)
		}
	}
}
