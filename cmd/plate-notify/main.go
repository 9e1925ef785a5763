package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/batch"
	"github.com/printworks/platetrack/internal/common"
	"github.com/printworks/platetrack/internal/store"
	"github.com/printworks/platetrack/internal/validate"
)

// stdoutTransport prints batches instead of mailing them (dry runs).
type stdoutTransport struct{}

func (stdoutTransport) Send(_ context.Context, msg batch.Message) error {
	fmt.Printf("--- %s -> %s ---\n%s\n", msg.Subject, msg.To, msg.Body)
	return nil
}

func main() {
	var (
		subject = flag.String("subject", "Order notification", "subject prefix for outgoing mail")
		budget  = flag.Int("budget", 0, "per-batch payload budget in bytes (0 = configured default)")
		dryRun  = flag.Bool("dry-run", false, "print batches to stdout instead of sending")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	if !*dryRun {
		if err := cfg.ValidateMail(); err != nil {
			logger.Error("mail configuration invalid", "error", err)
			os.Exit(1)
		}
		if !validate.Email(cfg.SMTP.To) {
			logger.Error("invalid recipient address", "to", cfg.SMTP.To)
			os.Exit(1)
		}
	}

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
	items, err := snapshots.LoadItems(ctx)
	if err != nil {
		logger.Error("failed to load working set", "error", err)
		os.Exit(1)
	}
	if len(items) == 0 {
		logger.Info("nothing to send")
		return
	}

	budgetBytes := *budget
	if budgetBytes <= 0 {
		budgetBytes = cfg.Batch.BudgetBytes
	}

	// Advisory capacity check before the byte-accurate split.
	est := validate.EstimatePayloadBudget(len(items), budgetBytes, constants.BytesPerItemEstimate)
	if !est.Fits {
		logger.Info("items exceed single-batch estimate, partitioning",
			"items", len(items), "max_per_batch", est.MaxItems)
	}

	batches := batch.Partition(items, budgetBytes)
	logger.Info("partitioned working set", "items", len(items), "batches", len(batches), "budget_bytes", budgetBytes)

	var transport batch.Transport
	if *dryRun {
		transport = stdoutTransport{}
	} else {
		transport = batch.NewSMTPTransport(cfg.SMTP)
	}

	res := batch.NewSender(transport, logger).SendAll(ctx, batches, cfg.SMTP.To, *subject)

	fmt.Printf("Notification complete!\n")
	fmt.Printf("- Batches sent: %d\n", res.Sent)
	fmt.Printf("- Batches failed: %d\n", res.Failed)
	for _, e := range res.Errors {
		fmt.Printf("  ! %s\n", e)
	}

	if res.Failed > 0 {
		os.Exit(1)
	}
}
