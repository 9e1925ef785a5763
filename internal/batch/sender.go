package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/printworks/platetrack/internal/entity"
)

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport delivers a single message. Implementations live at the edge
// (SMTP in production, fakes in tests).
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SendResult aggregates a best-effort fan-out.
type SendResult struct {
	Sent   int
	Failed int
	Errors []string
}

// Sender drives sequential, best-effort delivery of partitioned batches.
type Sender struct {
	transport Transport
	logger    *slog.Logger
}

func NewSender(transport Transport, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{transport: transport, logger: logger}
}

// SendAll sends each batch in order. A failed batch is recorded and does
// not stop later batches; there is no retry and no rollback of batches
// already sent.
func (s *Sender) SendAll(ctx context.Context, batches []entity.EmailBatch, to, subject string) SendResult {
	var res SendResult
	for _, b := range batches {
		msg := Message{
			To:      to,
			Subject: fmt.Sprintf("%s (%d/%d)", subject, b.BatchNumber, b.TotalBatches),
			Body:    FormatBody(b),
		}
		if err := s.transport.Send(ctx, msg); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("batch %d/%d: %v", b.BatchNumber, b.TotalBatches, err))
			s.logger.Error("batch.send.failed", "batch", b.BatchNumber, "total", b.TotalBatches, "error", err)
			continue
		}
		res.Sent++
		s.logger.Info("batch.send.ok", "batch", b.BatchNumber, "total", b.TotalBatches, "items", len(b.Items))
	}
	return res
}
